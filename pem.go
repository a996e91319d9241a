package gcauth

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	p "encoding/pem"
	"errors"
)

var (
	// ErrNoPrivateKey is returned when no private key is found in the PEM.
	ErrNoPrivateKey = errors.New("no private key found")
	// ErrMultiplePrivateKeys is returned when multiple private keys are
	// found in the PEM.
	ErrMultiplePrivateKeys = errors.New("multiple private keys found")
	// ErrKeyNotRSA is returned when the private key is not an RSA key.
	ErrKeyNotRSA = errors.New("private key is not an RSA key")
)

// PrivateKeyFromPEM extracts the RSA private key from the given PEM.
func PrivateKeyFromPEM(pem []byte) (*rsa.PrivateKey, error) {
	var privateKey *rsa.PrivateKey
	for {
		block, rest := p.Decode(pem)
		if block == nil {
			break
		}

		switch block.Type {
		case "RSA PRIVATE KEY":
			if privateKey != nil {
				return nil, ErrMultiplePrivateKeys
			}
			key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, err
			}
			privateKey = key

		case "PRIVATE KEY":
			if privateKey != nil {
				return nil, ErrMultiplePrivateKeys
			}
			key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, err
			}
			k, ok := key.(*rsa.PrivateKey)
			if !ok {
				return nil, ErrKeyNotRSA
			}
			privateKey = k
		}
		pem = rest
	}

	if privateKey == nil {
		return nil, ErrNoPrivateKey
	}

	return privateKey, nil
}

// encodePrivateKeyPEM encodes the provided RSA private key as a
// PKCS #8 PEM.
func encodePrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	b, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.Encode(&buf, &p.Block{Type: "PRIVATE KEY", Bytes: b}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
