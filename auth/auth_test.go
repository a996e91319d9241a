package auth

import (
	"testing"
	"time"
)

func TestToken_Expired(t *testing.T) {
	var tests = []struct {
		name  string
		input Token
		want  bool
	}{
		{
			name: "no expiry",
			input: Token{
				AccessToken: "ey12345",
			},
			want: false,
		},
		{
			name: "not expired",
			input: Token{
				AccessToken: "ey12345",
				ExpiresOn:   time.Now().Add(time.Hour),
			},
			want: false,
		},
		{
			name: "expired",
			input: Token{
				AccessToken: "ey12345",
				ExpiresOn:   time.Now().Add(time.Hour * -1),
			},
			want: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.input.Expired()

			if test.want != got {
				t.Errorf("Expired() = unexpected result, want: %t, got: %t\n", test.want, got)
			}
		})
	}
}
