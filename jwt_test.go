package gcauth

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/KarlGW/gcauth/internal/testutils"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewJWTAssertion(t *testing.T) {
	key, err := testutils.CreateRSAKey()
	if err != nil {
		t.Fatalf("error creating RSA key: %v", err)
	}

	got, err := newJWTAssertion(googleTokenEndpoint, _testClientEmail, "1234567890", "scope1 scope2", key.Key)
	if err != nil {
		t.Fatalf("newJWTAssertion() = unexpected error: %v\n", err)
	}

	parts := strings.Split(got.Encode(), ".")
	if len(parts) != 3 {
		t.Fatalf("Encode() = unexpected amount of parts, want: 3, got: %d\n", len(parts))
	}

	hb, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("error decoding header: %v", err)
	}
	var h header
	if err := json.Unmarshal(hb, &h); err != nil {
		t.Fatalf("error unmarshalling header: %v", err)
	}
	wantHeader := header{ALG: "RS256", TYP: "JWT", KID: "1234567890"}
	if diff := cmp.Diff(wantHeader, h); diff != "" {
		t.Errorf("newJWTAssertion() = unexpected header (-want +got)\n%s\n", diff)
	}

	cb, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("error decoding claims: %v", err)
	}
	var c claims
	if err := json.Unmarshal(cb, &c); err != nil {
		t.Fatalf("error unmarshalling claims: %v", err)
	}
	wantClaims := claims{
		ISS:   _testClientEmail,
		Scope: "scope1 scope2",
		AUD:   googleTokenEndpoint,
	}
	if diff := cmp.Diff(wantClaims, c, cmpopts.IgnoreFields(claims{}, "EXP", "IAT")); diff != "" {
		t.Errorf("newJWTAssertion() = unexpected claims (-want +got)\n%s\n", diff)
	}
	now := time.Now().Unix()
	if c.IAT < now-5 || c.IAT > now+5 {
		t.Errorf("newJWTAssertion() = unexpected iat claim, want: ~%d, got: %d\n", now, c.IAT)
	}
	if c.EXP-c.IAT != int64(time.Hour/time.Second) {
		t.Errorf("newJWTAssertion() = unexpected exp claim, want: iat + 3600, got: iat + %d\n", c.EXP-c.IAT)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("error decoding signature: %v", err)
	}
	hashed := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
	if err := rsa.VerifyPKCS1v15(&key.Key.PublicKey, crypto.SHA256, hashed[:], sig); err != nil {
		t.Errorf("newJWTAssertion() = signature does not verify: %v\n", err)
	}
}
