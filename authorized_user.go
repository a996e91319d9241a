package gcauth

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/KarlGW/gcauth/auth"
	"github.com/KarlGW/gcauth/internal/request"
	"github.com/KarlGW/gcauth/version"
)

// AuthorizedUserCredential represents a user credential with a
// refresh token, as written by gcloud when setting up application
// default credentials. It contains all the necessary settings to
// perform token requests.
type AuthorizedUserCredential struct {
	c            request.Client
	token        *auth.Token
	endpoint     string
	userAgent    string
	clientID     string
	clientSecret string
	refreshToken string
	mu           sync.RWMutex
}

// NewAuthorizedUserCredential creates and returns a new
// *AuthorizedUserCredential.
func NewAuthorizedUserCredential(clientID, clientSecret, refreshToken string, options ...CredentialOption) (*AuthorizedUserCredential, error) {
	if len(clientID) == 0 {
		return nil, ErrInvalidClientID
	}
	if len(clientSecret) == 0 {
		return nil, ErrInvalidClientSecret
	}
	if len(refreshToken) == 0 {
		return nil, ErrInvalidRefreshToken
	}

	opts := CredentialOptions{}
	for _, option := range options {
		option(&opts)
	}

	return &AuthorizedUserCredential{
		c:            newHTTPClient(opts),
		endpoint:     coalesceString(opts.endpoint, googleTokenEndpoint),
		userAgent:    "gcauth/" + version.Version(),
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
	}, nil
}

// Token returns an auth.Token for requests to Google Cloud APIs.
// The cached token is returned if it exists and has not expired,
// otherwise a new token is requested. The scopes of the token are
// fixed by the refresh token.
func (c *AuthorizedUserCredential) Token(ctx context.Context, options ...auth.TokenOption) (auth.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && !c.token.Expired() {
		return *c.token, nil
	}
	token, err := c.tokenRequest(ctx)
	if err != nil {
		return auth.Token{}, err
	}
	c.token = &token
	return *c.token, nil
}

// Refresh requests a new token and stores it on the credential.
func (c *AuthorizedUserCredential) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, err := c.tokenRequest(ctx)
	if err != nil {
		return err
	}
	c.token = &token
	return nil
}

// SerializationData returns the data needed to persist the credential.
func (c *AuthorizedUserCredential) SerializationData() (map[string]any, error) {
	return map[string]any{
		"type":          CredentialTypeAuthorizedUser,
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"refresh_token": c.refreshToken,
	}, nil
}

// MarshalJSON implements json.Marshaler.
func (c *AuthorizedUserCredential) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc := credentialDocument{
		Type:         CredentialTypeAuthorizedUser,
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RefreshToken: c.refreshToken,
	}
	if c.token != nil {
		doc.AccessToken = c.token.AccessToken
	}
	return json.Marshal(doc)
}

// tokenRequest requests a token with the refresh token grant.
func (c *AuthorizedUserCredential) tokenRequest(ctx context.Context) (auth.Token, error) {
	data := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}
	return tokenRequest(ctx, c.c, c.endpoint, c.userAgent, data)
}

// newAuthorizedUserCredentialFromJSON creates an
// *AuthorizedUserCredential from a serialized credential document.
func newAuthorizedUserCredentialFromJSON(data []byte, options ...CredentialOption) (Credential, error) {
	var doc credentialDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	c, err := NewAuthorizedUserCredential(doc.ClientID, doc.ClientSecret, doc.RefreshToken, options...)
	if err != nil {
		return nil, err
	}
	if len(doc.AccessToken) > 0 {
		c.token = &auth.Token{AccessToken: doc.AccessToken}
	}
	return c, nil
}
