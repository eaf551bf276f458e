// Package ytmusic is a thin adapter over the YouTube Data API acting on the
// account described by a credential file. It covers only what the proxy
// endpoints need: searching music videos and appending items to a playlist.
package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	musicCategoryID = "10"
	maxSearchLimit  = 25
)

type Artist struct {
	Name string
	ID   string
}

// Track is a search hit. Fields the API did not return are left empty.
type Track struct {
	Title    string
	Artists  []Artist
	VideoID  string
	Duration string
	Category string
}

type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// HTTPClient is the transport underneath the OAuth layer; mostly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewFromFile loads the OAuth token stored at path and returns a client
// authorised as that account.
func NewFromFile(path string, opts Options) (*Client, error) {
	tok, err := loadToken(path)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	var ts oauth2.TokenSource
	if opts.ClientID != "" {
		conf := &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     googleEndpoint,
		}
		ts = conf.TokenSource(ctx, tok)
	} else {
		ts = oauth2.StaticTokenSource(tok)
	}

	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = 10 * time.Second

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/youtube/v3"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: baseURL, http: hc, logger: logger}, nil
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Snippet struct {
			CategoryID string `json:"categoryId"`
		} `json:"snippet"`
	} `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search returns at most limit music videos matching query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = 10
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "video")
	val.Set("videoCategoryId", musicCategoryID)
	val.Set("maxResults", strconv.Itoa(limit))
	val.Set("q", query)

	var body searchResponse
	if err := c.get(ctx, "/search", val, &body); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]Track, 0, len(body.Items))
	ids := make([]string, 0, len(body.Items))
	for _, it := range body.Items {
		t := Track{
			Title:   it.Snippet.Title,
			VideoID: it.ID.VideoID,
		}
		if it.Snippet.ChannelTitle != "" {
			t.Artists = []Artist{{
				Name: strings.TrimSuffix(it.Snippet.ChannelTitle, " - Topic"),
				ID:   it.Snippet.ChannelID,
			}}
		}
		out = append(out, t)
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}

	if len(ids) > 0 {
		details, err := c.fetchDetails(ctx, ids)
		if err != nil {
			// results are still useful without durations
			c.logger.Warn("ytmusic fetch video details failed", "err", err)
			return out, nil
		}
		for i := range out {
			if d, ok := details[out[i].VideoID]; ok {
				out[i].Duration = d.duration
				out[i].Category = d.category
			}
		}
	}

	return out, nil
}

type videoDetails struct {
	duration string
	category string
}

func (c *Client) fetchDetails(ctx context.Context, ids []string) (map[string]videoDetails, error) {
	val := url.Values{}
	val.Set("part", "contentDetails,snippet")
	val.Set("id", strings.Join(ids, ","))

	var body videosResponse
	if err := c.get(ctx, "/videos", val, &body); err != nil {
		return nil, err
	}

	details := make(map[string]videoDetails, len(body.Items))
	for _, item := range body.Items {
		category := "Videos"
		if item.Snippet.CategoryID == musicCategoryID {
			category = "Songs"
		}
		details[item.ID] = videoDetails{
			duration: formatDuration(parseISO8601Duration(item.ContentDetails.Duration)),
			category: category,
		}
	}
	return details, nil
}

// AddPlaylistItems appends videoIDs to the playlist in order. Items are
// inserted one request at a time; the first failure stops the batch.
func (c *Client) AddPlaylistItems(ctx context.Context, playlistID string, videoIDs []string) error {
	for i, id := range videoIDs {
		payload := map[string]any{
			"snippet": map[string]any{
				"playlistId": playlistID,
				"resourceId": map[string]string{
					"kind":    "youtube#video",
					"videoId": id,
				},
			},
		}
		if err := c.post(ctx, "/playlistItems", url.Values{"part": {"snippet"}}, payload); err != nil {
			return fmt.Errorf("add item %d (%s): %w", i, id, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+"?"+query.Encode(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var ae apiError
	if json.Unmarshal(raw, &ae) == nil && ae.Error.Message != "" {
		return fmt.Errorf("youtube status %d: %s", resp.StatusCode, ae.Error.Message)
	}
	return fmt.Errorf("youtube status %d", resp.StatusCode)
}
