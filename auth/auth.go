package auth

import (
	"context"
	"time"
)

const (
	// ScopeCloudPlatform is the scope for full access to Google Cloud
	// resources.
	ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"
	// ScopeEmail is the scope for the email address of the authenticated
	// account.
	ScopeEmail = "https://www.googleapis.com/auth/userinfo.email"
	// ScopeIAM is the scope for the Google Identity and Access
	// Management API.
	ScopeIAM = "https://www.googleapis.com/auth/iam"
)

// Token contains the access token and when it expires.
type Token struct {
	ExpiresOn   time.Time
	AccessToken string
}

// Expired returns true if the token has expired. A token with no
// expiry set never expires on the client side.
func (t Token) Expired() bool {
	if t.ExpiresOn.IsZero() {
		return false
	}
	return !t.ExpiresOn.UTC().After(time.Now().UTC())
}

// TokenOptions contains options for a token request.
type TokenOptions struct {
	Scopes []string
}

// TokenOption is a function that sets options for a token request.
type TokenOption func(o *TokenOptions)

// Credential is the interface that wraps around method Token.
type Credential interface {
	Token(ctx context.Context, options ...TokenOption) (Token, error)
}

// WithScopes sets the scopes of the token request.
func WithScopes(scopes ...string) TokenOption {
	return func(o *TokenOptions) {
		o.Scopes = scopes
	}
}
