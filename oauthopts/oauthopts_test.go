package oauthopts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KarlGW/gcauth"
	"github.com/KarlGW/gcauth/auth"
	"github.com/KarlGW/gcauth/stub"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/oauth2"
)

func TestWithTokenSource(t *testing.T) {
	var tests = []struct {
		name      string
		input     *tokenSourceMock
		want      auth.Token
		wantCalls int
		wantErr   error
	}{
		{
			name: "token from token source",
			input: &tokenSourceMock{
				token: &oauth2.Token{
					AccessToken: "ey12345",
					Expiry:      time.Now().Add(time.Hour),
				},
			},
			want: auth.Token{
				AccessToken: "ey12345",
			},
			wantCalls: 1,
			wantErr:   nil,
		},
		{
			name: "error from token source",
			input: &tokenSourceMock{
				err: errors.New("token error"),
			},
			want:      auth.Token{},
			wantCalls: 2,
			wantErr:   cmpopts.AnyError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cred, err := gcauth.NewDefaultCredentials(WithTokenSource(test.input))
			if err != nil {
				t.Fatalf("error creating credentials: %v", err)
			}

			got, gotErr := cred.Token(context.Background())
			// A second call should be served from the cache when the
			// first call succeeded.
			_, _ = cred.Token(context.Background())

			if diff := cmp.Diff(test.want, got, cmpopts.IgnoreFields(auth.Token{}, "ExpiresOn")); diff != "" {
				t.Errorf("Token() = unexpected result (-want +got)\n%s\n", diff)
			}
			if diff := cmp.Diff(test.wantErr, gotErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Token() = unexpected error (-want +got)\n%s\n", diff)
			}
			if test.wantCalls != test.input.calls {
				t.Errorf("Token() = unexpected amount of calls to the token source, want: %d, got: %d\n", test.wantCalls, test.input.calls)
			}
		})
	}
}

func TestCredential_SerializationData(t *testing.T) {
	cred, err := gcauth.NewDefaultCredentials(WithTokenSource(&tokenSourceMock{}))
	if err != nil {
		t.Fatalf("error creating credentials: %v", err)
	}

	got, gotErr := cred.SerializationData()

	if got != nil {
		t.Errorf("SerializationData() = unexpected result, want: nil, got: %v\n", got)
	}
	if diff := cmp.Diff(error(gcauth.ErrNotSupported), gotErr, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("SerializationData() = unexpected error (-want +got)\n%s\n", diff)
	}
}

func TestTokenSource(t *testing.T) {
	var tests = []struct {
		name    string
		input   *stub.Credential
		want    *oauth2.Token
		wantErr error
	}{
		{
			name: "token from credential",
			input: stub.NewCredential(auth.Token{
				AccessToken: "ey12345",
				ExpiresOn:   time.Now().Add(time.Hour),
			}, nil),
			want: &oauth2.Token{
				AccessToken: "ey12345",
			},
			wantErr: nil,
		},
		{
			name:    "error from credential",
			input:   stub.NewCredential(auth.Token{}, errors.New("token error")),
			want:    nil,
			wantErr: cmpopts.AnyError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ts := TokenSource(context.Background(), test.input)

			got, gotErr := ts.Token()

			if diff := cmp.Diff(test.want, got, cmpopts.IgnoreFields(oauth2.Token{}, "Expiry"), cmpopts.IgnoreUnexported(oauth2.Token{})); diff != "" {
				t.Errorf("Token() = unexpected result (-want +got)\n%s\n", diff)
			}
			if diff := cmp.Diff(test.wantErr, gotErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Token() = unexpected error (-want +got)\n%s\n", diff)
			}
		})
	}
}

// tokenSourceMock counts the calls made to it and returns the
// configured token or error.
type tokenSourceMock struct {
	token *oauth2.Token
	err   error
	calls int
}

func (s *tokenSourceMock) Token() (*oauth2.Token, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}
