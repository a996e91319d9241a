package httpr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Do(t *testing.T) {
	type input struct {
		options    []Option
		statusCode int
	}

	type want struct {
		statusCode int
		requests   int
	}

	var tests = []struct {
		name  string
		input input
		want  want
	}{
		{
			name: "successful request",
			input: input{
				statusCode: http.StatusOK,
			},
			want: want{
				statusCode: http.StatusOK,
				requests:   1,
			},
		},
		{
			name: "no retries on server errors by default",
			input: input{
				statusCode: http.StatusInternalServerError,
			},
			want: want{
				statusCode: http.StatusInternalServerError,
				requests:   1,
			},
		},
		{
			name: "retries on server errors with custom policy",
			input: input{
				options: []Option{
					WithRetryPolicy(RetryPolicy{
						Retry: func(r *http.Response, err error) bool {
							return err != nil || r.StatusCode >= http.StatusInternalServerError
						},
						Backoff:    exponentialBackoff,
						MinDelay:   time.Millisecond,
						MaxDelay:   time.Millisecond * 5,
						MaxRetries: 2,
					}),
				},
				statusCode: http.StatusInternalServerError,
			},
			want: want{
				statusCode: http.StatusInternalServerError,
				requests:   3,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var requests int
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				w.WriteHeader(test.input.statusCode)
			}))
			defer ts.Close()

			client := NewClient(test.input.options...)
			req, err := NewRequest(context.Background(), http.MethodGet, ts.URL, nil)
			if err != nil {
				t.Fatalf("error creating request: %v", err)
			}

			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("Do() = unexpected error: %v\n", err)
			}
			defer resp.Body.Close()

			if test.want.statusCode != resp.StatusCode {
				t.Errorf("Do() = unexpected status code, want: %d, got: %d\n", test.want.statusCode, resp.StatusCode)
			}
			if test.want.requests != requests {
				t.Errorf("Do() = unexpected amount of requests, want: %d, got: %d\n", test.want.requests, requests)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	t.Run("default client", func(t *testing.T) {
		client := NewClient()

		if client.timeout != defaultTimeout {
			t.Errorf("NewClient() = unexpected timeout, want: %v, got: %v\n", defaultTimeout, client.timeout)
		}
		if client.retryPolicy.IsZero() {
			t.Errorf("NewClient() = expected a default retry policy to be set\n")
		}
	})

	t.Run("with options", func(t *testing.T) {
		client := NewClient(WithTimeout(time.Second * 10))

		if client.timeout != time.Second*10 {
			t.Errorf("NewClient() = unexpected timeout, want: %v, got: %v\n", time.Second*10, client.timeout)
		}
	})
}
