package ytm

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	maxVideoIDs   = 50
	maxVideoIDLen = 50
)

var (
	errQueryRequired    = &inputError{msg: "query is required"}
	errPlaylistRequired = &inputError{msg: "playlistId and videoIds[] are required"}
)

// sanitizeQuery extracts the trimmed search query. Missing and non-string
// values count as empty.
func sanitizeQuery(body map[string]any) (string, error) {
	q, _ := body["query"].(string)
	q = strings.TrimSpace(q)
	if q == "" {
		return "", errQueryRequired
	}
	return q, nil
}

// sanitizePlaylistMutation validates a playlist-add payload. The 50 element
// cap is applied before falsy entries are dropped, so trailing valid ids past
// the cap are never considered.
func sanitizePlaylistMutation(body map[string]any) (PlaylistMutation, error) {
	pid, _ := body["playlistId"].(string)
	pid = strings.TrimSpace(pid)
	ids, ok := body["videoIds"].([]any)
	if pid == "" || !ok || len(ids) == 0 {
		return PlaylistMutation{}, errPlaylistRequired
	}

	if len(ids) > maxVideoIDs {
		ids = ids[:maxVideoIDs]
	}
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if isFalsy(v) {
			continue
		}
		out = append(out, truncate(coerceString(v), maxVideoIDLen))
	}
	return PlaylistMutation{PlaylistID: pid, VideoIDs: out}, nil
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case float64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case json.Number:
		return numberString(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// numberString keeps integer literals as written and renders fractional or
// exponent literals as a float: 1E5 is "100000.0", 1e-7 is "1e-07".
func numberString(n json.Number) string {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	f, err := n.Float64()
	if err != nil {
		return lit
	}
	if abs := math.Abs(f); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
