package gcauth

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"
)

// jwtBearerGrantType is the grant type for token requests with a
// signed assertion.
const jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// newJWTAssertion creates a new signed assertion jwt for a service
// account credential.
func newJWTAssertion(endpoint, clientEmail, keyID, scope string, key *rsa.PrivateKey) (jwt, error) {
	now := time.Now()
	t := jwt{
		header: header{
			ALG: "RS256",
			TYP: "JWT",
			KID: keyID,
		},
		claims: claims{
			ISS:   clientEmail,
			Scope: scope,
			AUD:   endpoint,
			EXP:   now.Add(time.Hour).Unix(),
			IAT:   now.Unix(),
		},
	}

	if err := t.sign(key); err != nil {
		return jwt{}, err
	}
	return t, nil
}

// jwt is a JSON web token used as assertion in the JWT bearer grant.
type jwt struct {
	header    header
	signature signature
	claims    claims
}

// Encode returns the jwt as a string encoded for use in the request body.
func (t jwt) Encode() string {
	return t.header.Encode() + "." + t.claims.Encode() + "." + t.signature.Encode()
}

// sign the jwt with the private key.
func (t *jwt) sign(key *rsa.PrivateKey) error {
	data := []byte(t.header.Encode() + "." + t.claims.Encode())
	hashed := sha256.Sum256(data)
	signature, err := rsa.SignPKCS1v15(nil, key, crypto.SHA256, hashed[:])
	if err == nil {
		t.signature = signature
	}
	return err
}

// header is a JSON web token header.
type header struct {
	ALG string `json:"alg"`
	TYP string `json:"typ"`
	KID string `json:"kid,omitempty"`
}

// Encode the header as a base64 encoded string.
func (h header) Encode() string {
	b, _ := json.Marshal(h)
	return base64.RawURLEncoding.EncodeToString(b)
}

// claims is a JSON web token claims.
type claims struct {
	ISS   string `json:"iss"`
	Scope string `json:"scope"`
	AUD   string `json:"aud"`
	EXP   int64  `json:"exp"`
	IAT   int64  `json:"iat"`
}

// Encode the claims as a base64 encoded string.
func (c claims) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// signature is a JSON web token signature.
type signature []byte

// Encode the signature as a base64 encoded string.
func (s signature) Encode() string {
	return base64.RawURLEncoding.EncodeToString(s)
}
