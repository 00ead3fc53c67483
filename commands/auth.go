package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// authorize returns an HTTP client for the Google APIs. The credentials file is either a
// service account key or an OAuth2 client secret, in which case the client uses the
// tokens previously saved to '<name>.sheets' in the same directory.
func authorize(ctx context.Context, credentials string, scope string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	var kind struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &kind); err != nil {
		return nil, fmt.Errorf("invalid credentials file %v (%w)", credentials, err)
	}

	if kind.Type == "service_account" {
		config, err := google.JWTConfigFromJSON(b, scope)
		if err != nil {
			return nil, err
		}

		return config.Client(ctx), nil
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, err
	}

	dir, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	tokens := filepath.Join(dir, fmt.Sprintf("%s.sheets", name))

	token, err := tokenFromFile(tokens)
	if err != nil {
		return nil, fmt.Errorf("missing or invalid OAuth2 tokens file %v (%w)", tokens, err)
	}

	return config.Client(ctx, token), nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
