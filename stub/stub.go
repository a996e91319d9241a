package stub

import (
	"context"

	"github.com/KarlGW/gcauth/auth"
)

// Credential satisfies the credential interfaces of package gcauth
// and package auth. Purpose is to be used as a stub in tests of
// consumers of the module.
type Credential struct {
	token auth.Token
	err   error
}

// NewCredential creates a new *Credential. Argument token is the
// token that method calls should return. Argument error is to set
// if method calls should return an error.
func NewCredential(token auth.Token, err error) *Credential {
	return &Credential{
		token: token,
		err:   err,
	}
}

// Token returns the token set to the stub credential.
func (c *Credential) Token(ctx context.Context, options ...auth.TokenOption) (auth.Token, error) {
	if c.err != nil {
		return auth.Token{}, c.err
	}
	return c.token, nil
}

// Refresh returns the error set to the stub credential.
func (c *Credential) Refresh(ctx context.Context) error {
	return c.err
}

// SerializationData returns a document with the token set to the
// stub credential.
func (c *Credential) SerializationData() (map[string]any, error) {
	if c.err != nil {
		return nil, c.err
	}
	return map[string]any{
		"type":         "stub",
		"access_token": c.token.AccessToken,
	}, nil
}
