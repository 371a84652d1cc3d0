package oauth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/malfix-cli/malfix/constant"
	"github.com/malfix-cli/malfix/log"
	"github.com/malfix-cli/malfix/network"
)

// tokenEndpoint is a variable so tests can point the flow at a local server.
var tokenEndpoint = constant.MalTokenEndpoint

// Exchange trades the authorization code for a set of OAuth2 tokens.
func Exchange(creds Credentials, code, codeVerifier string, port int) (*Token, error) {
	values := url.Values{}
	values.Set("client_id", creds.ClientID)
	if creds.ClientSecret != "" {
		values.Set("client_secret", creds.ClientSecret)
	}
	values.Set("code", code)
	values.Set("code_verifier", codeVerifier)
	values.Set("grant_type", "authorization_code")
	values.Set("redirect_uri", RedirectURI(port))

	return requestToken(values)
}

// Refresh renews an expired access token using the stored refresh token.
func Refresh(creds Credentials, token *Token) (*Token, error) {
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("token record has no refresh token, run auth login again")
	}

	values := url.Values{}
	values.Set("client_id", creds.ClientID)
	if creds.ClientSecret != "" {
		values.Set("client_secret", creds.ClientSecret)
	}
	values.Set("grant_type", "refresh_token")
	values.Set("refresh_token", token.RefreshToken)

	log.Info("Refreshing MAL access token")
	return requestToken(values)
}

func requestToken(values url.Values) (*Token, error) {
	req, err := http.NewRequest(http.MethodPost, tokenEndpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := network.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("mal authentication failed: %s", strings.TrimSpace(string(body)))
	}

	var wire wireToken
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, err
	}

	if wire.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned an empty access token")
	}

	return wire.record(), nil
}
