package gcauth

import (
	"time"

	"github.com/KarlGW/gcauth/internal/httpr"
	"github.com/KarlGW/gcauth/internal/request"
	"github.com/go-logr/logr"
)

// CredentialOptions contains options for the various credential
// types.
type CredentialOptions struct {
	// httpClient is a user provided client to override the default client.
	httpClient request.Client
	// credential overrides credential resolution in NewDefaultCredentials.
	credential Credential
	// logger receives advisory diagnostics from the credentials.
	logger logr.Logger
	// params are opaque construction parameters, carried over to
	// rescoped copies of a credential.
	params map[string]any
	// endpoint overrides the token endpoint of the credential.
	endpoint string
	// keyID is the ID of the private key of a service account credential.
	keyID string
	// scopes to request for tokens.
	scopes []string
	// retryPolicy for the default HTTP client.
	retryPolicy RetryPolicy
	// timeout for the default HTTP client.
	timeout time.Duration
}

// CredentialOption is a function to set *CredentialOptions.
type CredentialOption func(o *CredentialOptions)

// WithCredential sets the provided credential. It overrides credential
// resolution in NewDefaultCredentials.
func WithCredential(cred Credential) CredentialOption {
	return func(o *CredentialOptions) {
		o.credential = cred
	}
}

// WithHTTPClient sets the HTTP client of the credential.
func WithHTTPClient(c request.Client) CredentialOption {
	return func(o *CredentialOptions) {
		o.httpClient = c
	}
}

// WithLogger sets the logger that receives advisory diagnostics from
// the credential.
func WithLogger(logger logr.Logger) CredentialOption {
	return func(o *CredentialOptions) {
		o.logger = logger
	}
}

// WithScopes sets the scopes of the credential.
func WithScopes(scopes ...string) CredentialOption {
	return func(o *CredentialOptions) {
		o.scopes = scopes
	}
}

// WithParams sets opaque construction parameters on the credential.
// They have no effect on token requests and are carried over to
// rescoped copies of the credential.
func WithParams(params map[string]any) CredentialOption {
	return func(o *CredentialOptions) {
		o.params = params
	}
}

// WithEndpoint sets the token endpoint of the credential.
func WithEndpoint(endpoint string) CredentialOption {
	return func(o *CredentialOptions) {
		o.endpoint = endpoint
	}
}

// WithKeyID sets the ID of the private key of a service account
// credential.
func WithKeyID(id string) CredentialOption {
	return func(o *CredentialOptions) {
		o.keyID = id
	}
}

// WithRetryPolicy sets the retry policy of the default HTTP client.
// It has no effect when a client is provided with WithHTTPClient.
func WithRetryPolicy(r RetryPolicy) CredentialOption {
	return func(o *CredentialOptions) {
		o.retryPolicy = r
	}
}

// WithTimeout sets the timeout of the default HTTP client. It has no
// effect when a client is provided with WithHTTPClient.
func WithTimeout(d time.Duration) CredentialOption {
	return func(o *CredentialOptions) {
		o.timeout = d
	}
}

// newHTTPClient creates an HTTP client based on the provided options.
func newHTTPClient(opts CredentialOptions) request.Client {
	if opts.httpClient != nil {
		return opts.httpClient
	}
	options := []httpr.Option{httpr.WithRetryPolicy(opts.retryPolicy)}
	if opts.timeout > 0 {
		options = append(options, httpr.WithTimeout(opts.timeout))
	}
	return httpr.NewClient(options...)
}
