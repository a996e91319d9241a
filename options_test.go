package gcauth

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCredentialOptions(t *testing.T) {
	client := &mockClient{}
	cred := NewComputeCredential()

	var tests = []struct {
		name  string
		input CredentialOption
		want  CredentialOptions
	}{
		{
			name:  "WithCredential",
			input: WithCredential(cred),
			want: CredentialOptions{
				credential: cred,
			},
		},
		{
			name:  "WithHTTPClient",
			input: WithHTTPClient(client),
			want: CredentialOptions{
				httpClient: client,
			},
		},
		{
			name:  "WithScopes",
			input: WithScopes("scope1", "scope2"),
			want: CredentialOptions{
				scopes: []string{"scope1", "scope2"},
			},
		},
		{
			name:  "WithParams",
			input: WithParams(map[string]any{"key": "value"}),
			want: CredentialOptions{
				params: map[string]any{"key": "value"},
			},
		},
		{
			name:  "WithEndpoint",
			input: WithEndpoint("https://example.com/token"),
			want: CredentialOptions{
				endpoint: "https://example.com/token",
			},
		},
		{
			name:  "WithKeyID",
			input: WithKeyID("1234567890"),
			want: CredentialOptions{
				keyID: "1234567890",
			},
		},
		{
			name: "WithRetryPolicy",
			input: WithRetryPolicy(RetryPolicy{
				MaxRetries: 5,
			}),
			want: CredentialOptions{
				retryPolicy: RetryPolicy{
					MaxRetries: 5,
				},
			},
		},
		{
			name:  "WithTimeout",
			input: WithTimeout(time.Second * 10),
			want: CredentialOptions{
				timeout: time.Second * 10,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := CredentialOptions{}
			test.input(&got)

			opts := cmp.Options{
				cmp.AllowUnexported(CredentialOptions{}, ComputeCredential{}, mockClient{}),
				cmpopts.IgnoreFields(ComputeCredential{}, "c", "header", "logger", "mu"),
				cmpopts.IgnoreUnexported(http.Client{}),
				cmpopts.IgnoreFields(CredentialOptions{}, "logger", "retryPolicy"),
			}
			if diff := cmp.Diff(test.want, got, opts); diff != "" {
				t.Errorf("CredentialOption() = unexpected result (-want +got)\n%s\n", diff)
			}
			if test.name == "WithRetryPolicy" && got.retryPolicy.MaxRetries != 5 {
				t.Errorf("WithRetryPolicy() = unexpected max retries, want: 5, got: %d\n", got.retryPolicy.MaxRetries)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	logger, entries := testLogger()

	got := CredentialOptions{logger: logr.Discard()}
	WithLogger(logger)(&got)
	got.logger.Info("entry")

	if len(*entries) != 1 {
		t.Errorf("WithLogger() = expected the provided logger to be set\n")
	}
}
