package httpclient

import "net/http"

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Token is sent as a bearer token. An empty token sends no credentials.
	Token string
}

// BearerAuth creates a bearer token auth config. It returns nil for an
// empty token so anonymous requests carry no Authorization header.
func BearerAuth(token string) *AuthConfig {
	if token == "" {
		return nil
	}
	return &AuthConfig{Token: token}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

