// Package oauth implements the MyAnimeList OAuth2 authorization-code flow with PKCE,
// along with credential loading and token persistence.
package oauth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/malfix-cli/malfix/filesystem"
	"github.com/malfix-cli/malfix/key"
	"github.com/malfix-cli/malfix/where"
	"github.com/spf13/viper"
)

// ErrNoCredentials indicates that no client ID could be resolved from the
// configuration or the credentials file.
var ErrNoCredentials = errors.New("mal credentials not found: set mal.client_id or create credentials.json")

// Credentials holds the application-level client registration issued by MyAnimeList.
// Read-only for the process lifetime once loaded.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Validate reports whether the credentials are usable for the authorization flow.
// MAL issues public (ID-only) and confidential (ID+secret) clients; only the ID is mandatory.
func (c Credentials) Validate() error {
	if c.ClientID == "" {
		return ErrNoCredentials
	}
	return nil
}

// LoadCredentials resolves the client credentials, preferring the viper
// configuration (config file or MALFIX_MAL_CLIENT_ID / MALFIX_MAL_CLIENT_SECRET
// environment variables) and falling back to the credentials.json file in the
// config directory.
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		ClientID:     viper.GetString(key.MalClientID),
		ClientSecret: viper.GetString(key.MalClientSecret),
	}

	if creds.ClientID != "" {
		return creds, nil
	}

	path := where.Credentials()
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return Credentials{}, err
	}
	if !exists {
		return Credentials{}, ErrNoCredentials
	}

	raw, err := filesystem.API().ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("malformed credentials file %s: %w", path, err)
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}
