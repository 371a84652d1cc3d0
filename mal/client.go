package mal

import (
	"fmt"
	"net/http"

	"github.com/malfix-cli/malfix/constant"
	"github.com/malfix-cli/malfix/log"
	"github.com/malfix-cli/malfix/network"
	"github.com/malfix-cli/malfix/oauth"
)

// Client performs authenticated requests against the MyAnimeList API on
// behalf of the token's owner.
type Client struct {
	httpClient *http.Client
	store      oauth.Store
	creds      oauth.Credentials
	apiBase    string
	siteBase   string
}

// New constructs a Client from the configured credentials and token backend.
func New() (*Client, error) {
	creds, err := oauth.LoadCredentials()
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: network.Client,
		store:      oauth.NewStore(),
		creds:      creds,
		apiBase:    constant.MalAPIBase,
		siteBase:   constant.MalSiteBase,
	}, nil
}

// ensureToken loads the persisted token record and renews it before use
// when it is expired or inside its refresh window. A record past expires_at
// is never returned as-is.
func (c *Client) ensureToken() (*oauth.Token, error) {
	token, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	if !token.NeedsRefresh() {
		return token, nil
	}

	renewed, err := oauth.Refresh(c.creds, token)
	if err != nil {
		if !token.Expired() {
			// Still valid for a few more minutes, keep going on the old record.
			log.Warnf("token refresh failed, reusing unexpired token: %v", err)
			return token, nil
		}
		return nil, fmt.Errorf("refresh mal token: %w", err)
	}

	if err := c.store.Save(renewed); err != nil {
		return nil, fmt.Errorf("persist refreshed token: %w", err)
	}

	log.Info("MAL access token refreshed")
	return renewed, nil
}

// do executes a request with bearer authorization and the application User-Agent.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	token, err := c.ensureToken()
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("User-Agent", constant.UserAgent)

	return c.httpClient.Do(req)
}
