package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/malfix-cli/malfix/constant"
)

// GenerateCodeVerifier generates a cryptographically secure random string for the PKCE challenge.
func GenerateCodeVerifier() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RedirectURI constructs the localhost callback address for the given port.
// It must match the redirect URI registered with the MAL API client.
func RedirectURI(port int) string {
	return fmt.Sprintf("http://localhost:%d/callback", port)
}

// AuthURL constructs the authorization URI for the OAuth2 PKCE flow.
// MAL only supports the 'plain' challenge method, where the challenge equals the verifier.
func AuthURL(creds Credentials, codeVerifier string, port int) string {
	v := url.Values{}
	v.Set("response_type", "code")
	v.Set("client_id", creds.ClientID)
	v.Set("code_challenge", codeVerifier)
	v.Set("code_challenge_method", "plain")
	v.Set("redirect_uri", RedirectURI(port))

	return constant.MalAuthEndpoint + "?" + v.Encode()
}
