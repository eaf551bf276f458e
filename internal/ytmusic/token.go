package ytmusic

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// Google's OAuth endpoints; refresh only works when a client ID is configured.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// tokenFile accepts both the ytmusicapi oauth.json layout (expires_at as unix
// seconds) and oauth2.Token's own JSON (expiry as RFC 3339).
type tokenFile struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    float64   `json:"expires_at"`
	Expiry       time.Time `json:"expiry"`
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	if tf.AccessToken == "" {
		return nil, errors.New("credential file has no access_token")
	}

	tok := &oauth2.Token{
		AccessToken:  tf.AccessToken,
		RefreshToken: tf.RefreshToken,
		TokenType:    tf.TokenType,
		Expiry:       tf.Expiry,
	}
	if tok.Expiry.IsZero() && tf.ExpiresAt > 0 {
		tok.Expiry = time.Unix(int64(tf.ExpiresAt), 0)
	}
	return tok, nil
}
