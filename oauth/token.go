package oauth

import "time"

// refreshWindow is the margin before expiry within which a token is
// proactively refreshed rather than used as-is.
const refreshWindow = 5 * time.Minute

// Token is the persisted OAuth2 token record.
// The transient expires_in from the wire is converted to an absolute
// expires_at timestamp at creation time.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry timestamp.
func (t *Token) Expired() bool {
	return !time.Now().Before(t.ExpiresAt)
}

// NeedsRefresh reports whether the token is expired or close enough to
// expiry that it should be renewed before use.
func (t *Token) NeedsRefresh() bool {
	if t.AccessToken == "" {
		return true
	}
	return !time.Now().Add(refreshWindow).Before(t.ExpiresAt)
}

// wireToken mirrors the token endpoint response body.
type wireToken struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// record converts a wire response into a persisted token, anchoring the
// relative lifetime to the current clock.
func (w wireToken) record() *Token {
	return &Token{
		AccessToken:  w.AccessToken,
		TokenType:    w.TokenType,
		RefreshToken: w.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(w.ExpiresIn) * time.Second),
	}
}
