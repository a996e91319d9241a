package gcauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/KarlGW/gcauth/auth"
	"github.com/KarlGW/gcauth/internal/request"
	"github.com/KarlGW/gcauth/internal/retry"
)

const (
	// CredentialTypeAuthorizedUser is the type of a user credential
	// with a refresh token, as written by gcloud.
	CredentialTypeAuthorizedUser = "authorized_user"
	// CredentialTypeServiceAccount is the type of a service account
	// key credential.
	CredentialTypeServiceAccount = "service_account"
	// CredentialTypeCompute is the type of a credential backed by the
	// metadata server of a compute instance.
	CredentialTypeCompute = "compute"
)

// googleTokenEndpoint is the endpoint for Google OAuth2 token requests.
const googleTokenEndpoint = "https://oauth2.googleapis.com/token"

// CredentialFactory is a function that creates a credential from a
// serialized credential document.
type CredentialFactory func(data []byte, options ...CredentialOption) (Credential, error)

var (
	credentialFactories = map[string]CredentialFactory{
		CredentialTypeAuthorizedUser: newAuthorizedUserCredentialFromJSON,
		CredentialTypeServiceAccount: newServiceAccountCredentialFromJSON,
		CredentialTypeCompute:        newComputeCredentialFromJSON,
	}
	credentialFactoriesMu sync.RWMutex
)

// RegisterCredential registers a factory for the provided credential
// type. Registering a type that is already registered returns
// ErrCredentialTypeRegistered.
func RegisterCredential(credentialType string, factory CredentialFactory) error {
	if len(credentialType) == 0 {
		return errors.New("credential type invalid")
	}
	if factory == nil {
		return errors.New("credential factory invalid")
	}

	credentialFactoriesMu.Lock()
	defer credentialFactoriesMu.Unlock()
	if _, ok := credentialFactories[credentialType]; ok {
		return fmt.Errorf("%w: %s", ErrCredentialTypeRegistered, credentialType)
	}
	credentialFactories[credentialType] = factory
	return nil
}

// NewCredentialsFromJSON creates a credential from the provided
// serialized credential document. The concrete credential type is
// determined by the type field of the document.
func NewCredentialsFromJSON(data []byte, options ...CredentialOption) (Credential, error) {
	var doc struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	credentialFactoriesMu.RLock()
	factory, ok := credentialFactories[doc.Type]
	credentialFactoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCredentialType, doc.Type)
	}
	return factory(data, options...)
}

// credentialDocument is the generic serialized form of a credential.
type credentialDocument struct {
	Type         string `json:"type"`
	AccessToken  string `json:"access_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ClientEmail  string `json:"client_email,omitempty"`
	PrivateKey   string `json:"private_key,omitempty"`
	PrivateKeyID string `json:"private_key_id,omitempty"`
	TokenURI     string `json:"token_uri,omitempty"`
}

// authResult represents a token response from the Google OAuth2
// token endpoint.
type authResult struct {
	AccessToken string `json:"access_token"`
	// ExpiresIn is the amount of seconds until the token expires.
	ExpiresIn int `json:"expires_in"`
}

// tokenFromAuthResult returns an auth.Token from an authResult.
func tokenFromAuthResult(r authResult) auth.Token {
	t := auth.Token{
		AccessToken: r.AccessToken,
	}
	if r.ExpiresIn > 0 {
		t.ExpiresOn = time.Now().UTC().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return t
}

// tokenRequest performs a token request against the Google OAuth2
// token endpoint with the provided form data. Requests are retried
// on server error responses.
func tokenRequest(ctx context.Context, client request.Client, endpoint, userAgent string, data url.Values) (auth.Token, error) {
	headers := http.Header{
		"Content-Type": []string{"application/x-www-form-urlencoded"},
		"User-Agent":   []string{userAgent},
	}

	var r authResult
	if err := retry.Do(ctx, func() error {
		resp, err := request.Do(ctx, client, headers, http.MethodPost, endpoint, []byte(data.Encode()))
		if err != nil {
			return err
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode > http.StatusNoContent {
			var authErr authError
			if err := json.Unmarshal(resp.Body, &authErr); err != nil {
				return RefreshError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
			}
			authErr.StatusCode = resp.StatusCode
			return authErr
		}
		return json.Unmarshal(resp.Body, &r)
	}, func(o *retry.Policy) {
		o.Retry = shouldRetry
	}); err != nil {
		return auth.Token{}, err
	}

	if len(r.AccessToken) == 0 {
		return auth.Token{}, ErrEmptyTokenResponse
	}
	return tokenFromAuthResult(r), nil
}

// shouldRetry contains retry policy for token requests.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var authErr authError
	if errors.As(err, &authErr) {
		return authErr.StatusCode == 0 || authErr.StatusCode >= http.StatusInternalServerError
	}
	var refreshErr RefreshError
	if errors.As(err, &refreshErr) {
		return refreshErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}
