package gcauth

import (
	"errors"
	"net/http"
)

var (
	// ErrNotSupported is returned when an operation is not supported
	// by the credential type.
	ErrNotSupported = errors.New("not supported")
	// ErrUnknownCredentialType is returned when a serialized credential
	// carries an unknown type.
	ErrUnknownCredentialType = errors.New("unknown credential type")
	// ErrCredentialTypeRegistered is returned when a credential type
	// is already registered.
	ErrCredentialTypeRegistered = errors.New("credential type already registered")
	// ErrNoCredentials is returned when no credentials could be found.
	ErrNoCredentials = errors.New("no credentials found")
	// ErrEmptyTokenResponse is returned when the response from a token
	// request contains no token.
	ErrEmptyTokenResponse = errors.New("empty token response")
	// ErrInvalidClientID is returned when an invalid client ID is provided.
	ErrInvalidClientID = errors.New("invalid client ID")
	// ErrInvalidClientSecret is returned when an invalid client secret
	// is provided.
	ErrInvalidClientSecret = errors.New("invalid client secret")
	// ErrInvalidRefreshToken is returned when an invalid refresh token
	// is provided.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrInvalidClientEmail is returned when an invalid client email
	// is provided.
	ErrInvalidClientEmail = errors.New("invalid client email")
	// ErrInvalidPrivateKey is returned when an invalid private key
	// is provided.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// noServiceAccountSuffix is appended to the message of a RefreshError
// when the metadata server responds with a 404.
const noServiceAccountSuffix = " This can occur if a VM was created with no service account or scopes."

// RefreshError represents an unusable response from a token endpoint.
type RefreshError struct {
	Body       string
	StatusCode int
}

// Error returns the body of the response that caused the error. A 404
// from the metadata server gets an explanatory suffix since it most
// likely means that the instance has no service account attached.
func (e RefreshError) Error() string {
	if e.StatusCode == http.StatusNotFound {
		return e.Body + noServiceAccountSuffix
	}
	return e.Body
}

// authError represents an error response from the Google OAuth2
// token endpoint.
type authError struct {
	Code             string `json:"error"`
	ErrorDescription string `json:"error_description"`
	StatusCode       int
}

// Error returns the ErrorDescription of authError.
func (e authError) Error() string {
	return e.ErrorDescription
}
