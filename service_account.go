package gcauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"github.com/KarlGW/gcauth/auth"
	"github.com/KarlGW/gcauth/internal/request"
	"github.com/KarlGW/gcauth/version"
)

// ServiceAccountCredential represents a service account key credential
// for authentication according to the JWT bearer grant. It contains
// all the necessary settings to perform token requests.
type ServiceAccountCredential struct {
	c             request.Client
	tokens        map[string]*auth.Token
	key           *rsa.PrivateKey
	endpoint      string
	userAgent     string
	clientEmail   string
	keyID         string
	scope         string
	assertionType string
	mu            sync.RWMutex
}

// NewServiceAccountCredential creates and returns a new
// *ServiceAccountCredential.
func NewServiceAccountCredential(clientEmail string, key *rsa.PrivateKey, options ...CredentialOption) (*ServiceAccountCredential, error) {
	if len(clientEmail) == 0 {
		return nil, ErrInvalidClientEmail
	}
	if key == nil {
		return nil, ErrInvalidPrivateKey
	}

	opts := CredentialOptions{}
	for _, option := range options {
		option(&opts)
	}

	return &ServiceAccountCredential{
		c:             newHTTPClient(opts),
		tokens:        make(map[string]*auth.Token),
		key:           key,
		endpoint:      coalesceString(opts.endpoint, googleTokenEndpoint),
		userAgent:     "gcauth/" + version.Version(),
		clientEmail:   clientEmail,
		keyID:         opts.keyID,
		scope:         strings.Join(opts.scopes, " "),
		assertionType: jwtBearerGrantType,
	}, nil
}

// Token returns an auth.Token for requests to Google Cloud APIs.
// The cached token for the requested scopes is returned if it exists
// and has not expired, otherwise a new token is requested. With no
// scopes on the request or the credential the cloud platform scope
// is used.
func (c *ServiceAccountCredential) Token(ctx context.Context, options ...auth.TokenOption) (auth.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := auth.TokenOptions{}
	for _, option := range options {
		option(&opts)
	}
	scope := coalesceString(strings.Join(opts.Scopes, " "), c.scope, auth.ScopeCloudPlatform)

	if c.tokens[scope] != nil && !c.tokens[scope].Expired() {
		return *c.tokens[scope], nil
	}
	token, err := c.tokenRequest(ctx, scope)
	if err != nil {
		return auth.Token{}, err
	}
	c.tokens[scope] = &token
	return *c.tokens[scope], nil
}

// Refresh requests a new token for the scopes of the credential and
// stores it on the credential.
func (c *ServiceAccountCredential) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	scope := coalesceString(c.scope, auth.ScopeCloudPlatform)
	token, err := c.tokenRequest(ctx, scope)
	if err != nil {
		return err
	}
	c.tokens[scope] = &token
	return nil
}

// Scoped returns a new *ServiceAccountCredential with the provided
// scopes. The new credential starts without tokens.
func (c *ServiceAccountCredential) Scoped(scopes ...string) (*ServiceAccountCredential, error) {
	return NewServiceAccountCredential(
		c.clientEmail,
		c.key,
		WithHTTPClient(c.c),
		WithKeyID(c.keyID),
		WithEndpoint(c.endpoint),
		WithScopes(scopes...),
	)
}

// ScopingRequired returns true when the credential has no scopes set.
func (c *ServiceAccountCredential) ScopingRequired() bool {
	return len(c.scope) == 0
}

// SerializationData returns the data needed to persist the credential.
func (c *ServiceAccountCredential) SerializationData() (map[string]any, error) {
	key, err := encodePrivateKeyPEM(c.key)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":           CredentialTypeServiceAccount,
		"client_email":   c.clientEmail,
		"private_key":    string(key),
		"private_key_id": c.keyID,
		"token_uri":      c.endpoint,
	}, nil
}

// MarshalJSON implements json.Marshaler.
func (c *ServiceAccountCredential) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, err := encodePrivateKeyPEM(c.key)
	if err != nil {
		return nil, err
	}
	doc := credentialDocument{
		Type:         CredentialTypeServiceAccount,
		Scope:        c.scope,
		ClientEmail:  c.clientEmail,
		PrivateKey:   string(key),
		PrivateKeyID: c.keyID,
		TokenURI:     c.endpoint,
	}
	if token := c.tokens[coalesceString(c.scope, auth.ScopeCloudPlatform)]; token != nil {
		doc.AccessToken = token.AccessToken
	}
	return json.Marshal(doc)
}

// tokenRequest requests a token with the JWT bearer grant after
// signing an assertion with the private key of the credential.
func (c *ServiceAccountCredential) tokenRequest(ctx context.Context, scope string) (auth.Token, error) {
	assertion, err := newJWTAssertion(c.endpoint, c.clientEmail, c.keyID, scope, c.key)
	if err != nil {
		return auth.Token{}, err
	}
	data := url.Values{
		"grant_type": {c.assertionType},
		"assertion":  {assertion.Encode()},
	}
	return tokenRequest(ctx, c.c, c.endpoint, c.userAgent, data)
}

// newServiceAccountCredentialFromJSON creates a
// *ServiceAccountCredential from a serialized credential document.
func newServiceAccountCredentialFromJSON(data []byte, options ...CredentialOption) (Credential, error) {
	var doc credentialDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	key, err := PrivateKeyFromPEM([]byte(doc.PrivateKey))
	if err != nil {
		return nil, err
	}

	if len(doc.PrivateKeyID) > 0 {
		options = append(options, WithKeyID(doc.PrivateKeyID))
	}
	if len(doc.TokenURI) > 0 {
		options = append(options, WithEndpoint(doc.TokenURI))
	}
	if len(doc.Scope) > 0 {
		options = append(options, WithScopes(strings.Split(doc.Scope, " ")...))
	}

	c, err := NewServiceAccountCredential(doc.ClientEmail, key, options...)
	if err != nil {
		return nil, err
	}
	if len(doc.AccessToken) > 0 {
		c.tokens[coalesceString(c.scope, auth.ScopeCloudPlatform)] = &auth.Token{AccessToken: doc.AccessToken}
	}
	return c, nil
}
