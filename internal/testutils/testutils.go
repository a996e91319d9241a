package testutils

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
)

// RSAKey contains an RSA private key and its PEM encoding.
type RSAKey struct {
	Key    *rsa.PrivateKey
	RawKey []byte
}

// CreateRSAKeyOptions contains options for creating an RSA key.
type CreateRSAKeyOptions struct {
	PKCS1 bool
	PKCS8 bool
}

// CreateRSAKeyOption is a function that sets options for creating an
// RSA key.
type CreateRSAKeyOption func(o *CreateRSAKeyOptions)

// CreateRSAKey creates a new RSA private key with a PEM encoding.
func CreateRSAKey(options ...CreateRSAKeyOption) (RSAKey, error) {
	opts := CreateRSAKeyOptions{
		PKCS8: true,
	}
	for _, option := range options {
		option(&opts)
	}
	if opts.PKCS1 {
		opts.PKCS8 = false
	}

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return RSAKey{}, err
	}

	var kb []byte
	var keyType string
	if opts.PKCS8 {
		kb, err = x509.MarshalPKCS8PrivateKey(pk)
		if err != nil {
			return RSAKey{}, err
		}
		keyType = "PRIVATE KEY"
	} else {
		kb = x509.MarshalPKCS1PrivateKey(pk)
		keyType = "RSA PRIVATE KEY"
	}

	var keyBuf bytes.Buffer
	if err := pem.Encode(&keyBuf, &pem.Block{Type: keyType, Bytes: kb}); err != nil {
		return RSAKey{}, err
	}

	return RSAKey{
		Key:    pk,
		RawKey: keyBuf.Bytes(),
	}, nil
}

// ServiceAccountJSON builds a serialized service account credential
// document with the provided client email and key.
func ServiceAccountJSON(clientEmail string, key RSAKey) []byte {
	b, _ := json.Marshal(map[string]string{
		"type":           "service_account",
		"client_email":   clientEmail,
		"private_key":    string(key.RawKey),
		"private_key_id": "1234567890",
	})
	return b
}

// AuthorizedUserJSON builds a serialized authorized user credential
// document with the provided client ID, client secret and refresh
// token.
func AuthorizedUserJSON(clientID, clientSecret, refreshToken string) []byte {
	b, _ := json.Marshal(map[string]string{
		"type":          "authorized_user",
		"client_id":     clientID,
		"client_secret": clientSecret,
		"refresh_token": refreshToken,
	})
	return b
}
