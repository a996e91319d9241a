package gcauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/KarlGW/gcauth/auth"
	"github.com/KarlGW/gcauth/internal/request"
	"github.com/KarlGW/gcauth/version"
	"github.com/go-logr/logr"
)

const (
	// metadataHost is the default host of the compute metadata server.
	metadataHost = "metadata.google.internal"
	// metadataTokenPath is the path on the metadata server that serves
	// tokens for the default service account of the instance.
	metadataTokenPath = "/computeMetadata/v1/instance/service-accounts/default/token"
)

// ComputeCredential represents a credential backed by the metadata
// server of a compute instance. Tokens are minted by the metadata
// server for the service account attached to the instance.
type ComputeCredential struct {
	c        request.Client
	token    *auth.Token
	params   map[string]any
	header   http.Header
	logger   logr.Logger
	endpoint string
	scope    string
	// assertionType is always empty, the metadata server mints tokens
	// without an assertion. Kept for parity with the assertion based
	// credential types.
	assertionType string
	mu            sync.RWMutex
}

// NewComputeCredential creates and returns a new *ComputeCredential.
// No request is made to the metadata server until a token is needed.
func NewComputeCredential(options ...CredentialOption) *ComputeCredential {
	opts := CredentialOptions{
		logger: logr.Discard(),
	}
	for _, option := range options {
		option(&opts)
	}

	c := &ComputeCredential{
		c: &http.Client{},
		header: http.Header{
			"Metadata-Flavor": {"Google"},
			"User-Agent":      {"gcauth/" + version.Version()},
		},
		endpoint: "http://" + coalesceString(os.Getenv(gceMetadataHost), metadataHost) + metadataTokenPath,
		logger:   opts.logger,
		params:   opts.params,
	}
	if opts.httpClient != nil {
		c.c = opts.httpClient
	} else if opts.timeout > 0 {
		c.c = &http.Client{Timeout: opts.timeout}
	}

	if len(opts.scopes) > 0 {
		c.scope = strings.Join(opts.scopes, " ")
		c.logScopesIgnored(c.scope)
	}

	return c
}

// Token returns an auth.Token for requests to Google Cloud APIs.
// The cached token is returned if it exists and has not expired,
// otherwise a new token is requested from the metadata server.
// Provided scopes are ignored, the token carries the scopes assigned
// to the service account of the instance.
func (c *ComputeCredential) Token(ctx context.Context, options ...auth.TokenOption) (auth.Token, error) {
	opts := auth.TokenOptions{}
	for _, option := range options {
		option(&opts)
	}
	if len(opts.Scopes) > 0 {
		c.logScopesIgnored(strings.Join(opts.Scopes, " "))
	}

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

// Refresh requests a new token from the metadata server and stores it
// on the credential.
func (c *ComputeCredential) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, err := c.tokenRequest(ctx)
	if err != nil {
		return err
	}
	c.token = &token
	return nil
}

// Scoped returns a new *ComputeCredential with the provided scopes
// and the construction parameters of the original credential. The new
// credential starts without a token.
func (c *ComputeCredential) Scoped(scopes ...string) *ComputeCredential {
	return NewComputeCredential(
		WithHTTPClient(c.c),
		WithLogger(c.logger),
		WithParams(c.params),
		WithScopes(scopes...),
	)
}

// ScopingRequired returns false. Tokens from the metadata server
// always carry the scopes assigned to the instance and no scoping
// step is needed before use.
func (c *ComputeCredential) ScopingRequired() bool {
	if len(c.scope) > 0 {
		c.logScopesIgnored(c.scope)
	}
	return false
}

// SerializationData returns ErrNotSupported. The credential is bound
// to the instance it runs on and carries no secret that can be
// persisted.
func (c *ComputeCredential) SerializationData() (map[string]any, error) {
	return nil, fmt.Errorf("%w: compute credentials cannot be serialized", ErrNotSupported)
}

// MarshalJSON implements json.Marshaler.
func (c *ComputeCredential) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc := credentialDocument{
		Type:  CredentialTypeCompute,
		Scope: c.scope,
	}
	if c.token != nil {
		doc.AccessToken = c.token.AccessToken
	}
	return json.Marshal(doc)
}

// tokenRequest requests a token from the metadata server. The request
// is never retried, retry behaviour is owned by the provided client.
// The expiry of the token is not tracked, the metadata server manages
// the lifetime of the token it serves.
func (c *ComputeCredential) tokenRequest(ctx context.Context) (auth.Token, error) {
	resp, err := request.Do(ctx, c.c, c.header, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return auth.Token{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return auth.Token{}, RefreshError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var r struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body, &r); err != nil || len(r.AccessToken) == 0 {
		return auth.Token{}, RefreshError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return auth.Token{AccessToken: r.AccessToken}, nil
}

// logScopesIgnored emits an advisory that scopes have no effect on
// tokens from the metadata server.
func (c *ComputeCredential) logScopesIgnored(scope string) {
	c.logger.Info("scopes are ignored by compute credentials, tokens carry the scopes of the instance service account", "scope", scope)
}

// newComputeCredentialFromJSON creates a *ComputeCredential from a
// serialized credential document.
func newComputeCredentialFromJSON(data []byte, options ...CredentialOption) (Credential, error) {
	var doc credentialDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if len(doc.Scope) > 0 {
		options = append(options, WithScopes(strings.Split(doc.Scope, " ")...))
	}
	c := NewComputeCredential(options...)
	if len(doc.AccessToken) > 0 {
		c.token = &auth.Token{AccessToken: doc.AccessToken}
	}
	return c, nil
}
