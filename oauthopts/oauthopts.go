// Package oauthopts provides options and helpers for using gcauth
// together with golang.org/x/oauth2.
package oauthopts

import (
	"context"
	"fmt"
	"sync"

	"github.com/KarlGW/gcauth"
	"github.com/KarlGW/gcauth/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// WithTokenSource is an option that sets the provided
// oauth2.TokenSource as the credential.
func WithTokenSource(ts oauth2.TokenSource) gcauth.CredentialOption {
	return gcauth.WithCredential(&credential{
		ts: ts,
	})
}

// WithGoogleCredentials is an option that sets the token source of
// the provided *google.Credentials as the credential.
func WithGoogleCredentials(creds *google.Credentials) gcauth.CredentialOption {
	return gcauth.WithCredential(&credential{
		ts: creds.TokenSource,
	})
}

// credential is a wrapper around an oauth2.TokenSource that satisfies
// the gcauth.Credential interface.
type credential struct {
	ts    oauth2.TokenSource
	token *auth.Token
	mu    sync.RWMutex
}

// Token wraps around the token source to satisfy the gcauth.Credential
// interface.
func (c *credential) Token(ctx context.Context, options ...auth.TokenOption) (auth.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && !c.token.Expired() {
		return *c.token, nil
	}
	t, err := c.ts.Token()
	if err != nil {
		return auth.Token{}, err
	}
	c.token = &auth.Token{
		AccessToken: t.AccessToken,
		ExpiresOn:   t.Expiry,
	}
	return *c.token, nil
}

// Refresh requests a token from the token source and stores it on the
// credential. The token source owns caching of its tokens.
func (c *credential) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.ts.Token()
	if err != nil {
		return err
	}
	c.token = &auth.Token{
		AccessToken: t.AccessToken,
		ExpiresOn:   t.Expiry,
	}
	return nil
}

// SerializationData returns ErrNotSupported. An external token source
// carries no secret that can be persisted.
func (c *credential) SerializationData() (map[string]any, error) {
	return nil, fmt.Errorf("%w: token source credentials cannot be serialized", gcauth.ErrNotSupported)
}

// TokenSource returns an oauth2.TokenSource backed by the provided
// credential.
func TokenSource(ctx context.Context, cred auth.Credential, options ...auth.TokenOption) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, tokenSource{
		ctx:     ctx,
		cred:    cred,
		options: options,
	})
}

// tokenSource wraps an auth.Credential to satisfy the
// oauth2.TokenSource interface.
type tokenSource struct {
	ctx     context.Context
	cred    auth.Credential
	options []auth.TokenOption
}

// Token satisfies the oauth2.TokenSource interface.
func (s tokenSource) Token() (*oauth2.Token, error) {
	t, err := s.cred.Token(s.ctx, s.options...)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: t.AccessToken,
		Expiry:      t.ExpiresOn,
	}, nil
}
