// Package gcauth provides credentials for aquiring access tokens for
// Google Cloud APIs, either from the metadata server of a compute
// instance or from application default credentials.
package gcauth

import (
	"context"

	"github.com/KarlGW/gcauth/auth"
	"github.com/KarlGW/gcauth/internal/httpr"
)

// RetryPolicy contains rules for retries.
type RetryPolicy = httpr.RetryPolicy

// Credential is the interface that groups the methods Token, Refresh
// and SerializationData. It is satisfied by all credential types of
// the module.
type Credential interface {
	auth.Credential
	// Refresh performs a token request and stores the resulting
	// token on the credential.
	Refresh(ctx context.Context) error
	// SerializationData returns the data needed to persist the
	// credential.
	SerializationData() (map[string]any, error)
}
