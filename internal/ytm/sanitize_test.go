package ytm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeForTest(t *testing.T, raw string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	require.NoError(t, dec.Decode(&body))
	return body
}

func TestSanitizeQuery(t *testing.T) {
	q, err := sanitizeQuery(map[string]any{"query": "  daft punk \n"})
	require.NoError(t, err)
	assert.Equal(t, "daft punk", q)

	for name, body := range map[string]map[string]any{
		"missing":    {},
		"whitespace": {"query": "   "},
		"non-string": {"query": json.Number("5")},
		"null":       {"query": nil},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sanitizeQuery(body)
			assert.Equal(t, errQueryRequired, err)
		})
	}
}

func TestSanitizePlaylistMutationRequired(t *testing.T) {
	cases := map[string]string{
		"missing playlist": `{"videoIds": ["a"]}`,
		"blank playlist":   `{"playlistId": "  ", "videoIds": ["a"]}`,
		"numeric playlist": `{"playlistId": 7, "videoIds": ["a"]}`,
		"missing ids":      `{"playlistId": "PL1"}`,
		"empty ids":        `{"playlistId": "PL1", "videoIds": []}`,
		"ids not a list":   `{"playlistId": "PL1", "videoIds": "a,b"}`,
		"ids object":       `{"playlistId": "PL1", "videoIds": {"a": 1}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := sanitizePlaylistMutation(decodeForTest(t, raw))
			assert.Equal(t, errPlaylistRequired, err)
		})
	}
}

func TestSanitizePlaylistMutationCapsAndTruncates(t *testing.T) {
	ids := make([]any, 0, 51)
	for i := 0; i < 51; i++ {
		ids = append(ids, strings.Repeat("x", 40)+string(rune('A'+i%26))+strings.Repeat("y", 20))
	}

	m, err := sanitizePlaylistMutation(map[string]any{"playlistId": " PL1 ", "videoIds": ids})
	require.NoError(t, err)

	assert.Equal(t, "PL1", m.PlaylistID)
	require.Len(t, m.VideoIDs, 50)
	for i, id := range m.VideoIDs {
		assert.Len(t, id, 50)
		assert.Equal(t, ids[i].(string)[:50], id, "order is preserved")
	}
}

func TestSanitizePlaylistMutationCapBeforeFilter(t *testing.T) {
	ids := make([]any, 0, 65)
	for i := 0; i < 60; i++ {
		ids = append(ids, "")
	}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, id)
	}

	m, err := sanitizePlaylistMutation(map[string]any{"playlistId": "PL1", "videoIds": ids})
	require.NoError(t, err)
	assert.Empty(t, m.VideoIDs)
}

func TestSanitizePlaylistMutationCoercion(t *testing.T) {
	body := decodeForTest(t, `{
		"playlistId": "PL1",
		"videoIds": ["a", null, false, 0, "", [], {}, true, 42, 1.5, ["x"], {"k": "v"}, "b"]
	}`)

	m, err := sanitizePlaylistMutation(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "True", "42", "1.5", `["x"]`, `{"k":"v"}`, "b"}, m.VideoIDs)
}

func TestSanitizePlaylistMutationTruncatesCodePoints(t *testing.T) {
	long := strings.Repeat("é", 60)

	m, err := sanitizePlaylistMutation(map[string]any{"playlistId": "PL1", "videoIds": []any{long}})
	require.NoError(t, err)
	require.Len(t, m.VideoIDs, 1)
	assert.Equal(t, strings.Repeat("é", 50), m.VideoIDs[0])
}

func TestCoerceFloatFromToolArguments(t *testing.T) {
	assert.Equal(t, "5", coerceString(float64(5)))
	assert.True(t, isFalsy(float64(0)))
}

func TestCoerceNumberLiterals(t *testing.T) {
	for lit, want := range map[string]string{
		"42":     "42",
		"-7":     "-7",
		"1.5":    "1.5",
		"1E5":    "100000.0",
		"2.0":    "2.0",
		"1e-7":   "1e-07",
		"1.5e20": "1.5e+20",
	} {
		assert.Equal(t, want, coerceString(json.Number(lit)), lit)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "日本", truncate("日本語", 2))
	assert.Equal(t, "", truncate("abc", 0))
}
