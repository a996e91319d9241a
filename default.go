package gcauth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"cloud.google.com/go/compute/metadata"
	"github.com/KarlGW/gcauth/internal/errs"
)

// wellKnownCredentialsFile is the name of the application default
// credentials file written by gcloud.
const wellKnownCredentialsFile = "application_default_credentials.json"

var (
	onGCE                = metadata.OnGCE
	newComputeCredential = func(options ...CredentialOption) Credential {
		return NewComputeCredential(options...)
	}
)

// NewDefaultCredentials creates and returns credentials based on the
// environment the application runs in. The following sources are
// tried in order: a credential provided with WithCredential, the file
// pointed to by GOOGLE_APPLICATION_CREDENTIALS, the application
// default credentials file written by gcloud and finally the metadata
// server when running on a compute instance. ErrNoCredentials is
// returned when no source provides a credential.
func NewDefaultCredentials(options ...CredentialOption) (Credential, error) {
	opts := CredentialOptions{}
	for _, option := range options {
		option(&opts)
	}
	if opts.credential != nil {
		return opts.credential, nil
	}

	var errors errs.Errors
	if path := os.Getenv(googleApplicationCredentials); len(path) > 0 {
		cred, err := LoadCredentialsFile(path, options...)
		if err == nil {
			return cred, nil
		}
		errors = append(errors, err)
	}

	if path, err := wellKnownFile(); err == nil {
		if _, err := os.Stat(path); err == nil {
			cred, err := LoadCredentialsFile(path, options...)
			if err == nil {
				return cred, nil
			}
			errors = append(errors, err)
		}
	}

	if onGCE() {
		return newComputeCredential(options...), nil
	}

	return nil, append(errors, ErrNoCredentials)
}

// LoadCredentialsFile creates a credential from the serialized
// credential document in the file at the provided path.
func LoadCredentialsFile(path string, options ...CredentialOption) (Credential, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCredentialsFromJSON(b, options...)
}

// WriteCredentialsFile persists the serialization data of the
// provided credential to the file at the provided path. Credential
// types that cannot be serialized return ErrNotSupported.
func WriteCredentialsFile(path string, cred Credential) error {
	data, err := cred.SerializationData()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// SaveToWellKnownFile persists the serialization data of the provided
// credential to the application default credentials file.
func SaveToWellKnownFile(cred Credential) error {
	path, err := wellKnownFile()
	if err != nil {
		return err
	}
	return WriteCredentialsFile(path, cred)
}

// wellKnownFile returns the path to the application default
// credentials file written by gcloud.
func wellKnownFile() (string, error) {
	if dir := os.Getenv(cloudSDKConfig); len(dir) > 0 {
		return filepath.Join(dir, wellKnownCredentialsFile), nil
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "gcloud", wellKnownCredentialsFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gcloud", wellKnownCredentialsFile), nil
}
