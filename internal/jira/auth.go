package jira

import (
	"fmt"
	"net/http"
)

// AuthFunc applies authentication to an outgoing request.
type AuthFunc func(*http.Request)

// NewBasicAuth returns an AuthFunc that sets basic auth from email + API token.
func NewBasicAuth(email, token string) AuthFunc {
	return func(r *http.Request) {
		r.SetBasicAuth(email, token)
	}
}

// NewBearerAuth returns an AuthFunc that sets a bearer token.
func NewBearerAuth(token string) AuthFunc {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// ResolveAuth returns the appropriate AuthFunc based on provided credentials.
// It supports either Bearer token or Basic (email + API token) authentication.
func ResolveAuth(bearerToken, email, token string) (auth AuthFunc, method string, err error) {
	switch {
	case bearerToken != "":
		return NewBearerAuth(bearerToken), "Bearer", nil
	case email != "" && token != "":
		return NewBasicAuth(email, token), "Basic", nil
	default:
		return nil, "", fmt.Errorf("no valid auth method configured: must provide either bearer token or email+token")
	}
}
