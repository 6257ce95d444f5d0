package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docaura/backend/internal/config"
	"github.com/docaura/backend/internal/domain"
)

func testClient(url, key string, timeout time.Duration) *Client {
	return NewClient(&config.Config{
		AIGatewayURL: url,
		AIGatewayKey: key,
		AITimeout:    timeout,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCompleteSendsBearerAuthAndExtractsContent(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"the reply"}}]}`))
	}))
	defer server.Close()

	client := testClient(server.URL, "secret", 5*time.Second)
	reply, err := client.Complete(context.Background(), "some-model", "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != "the reply" {
		t.Errorf("reply = %q, want %q", reply, "the reply")
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestCompleteMalformedEnvelope(t *testing.T) {
	// A 2xx reply whose envelope is garbage yields empty content, not a
	// panic or a transport error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := testClient(server.URL, "secret", 5*time.Second)
	reply, err := client.Complete(context.Background(), "m", "s", "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty", reply)
	}
}

func TestCompleteMissingCredentialFailsClosed(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	client := testClient(server.URL, "", 5*time.Second)
	_, err := client.Complete(context.Background(), "m", "s", "u")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error is %T, want *domain.UpstreamError", err)
	}
	if upErr.Error() != "AI service not configured" {
		t.Errorf("message = %q", upErr.Error())
	}
	if called {
		t.Error("upstream must not be called without a credential")
	}
}

func TestCompleteTimeoutMapsToUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := testClient(server.URL, "secret", 50*time.Millisecond)
	_, err := client.Complete(context.Background(), "m", "s", "u")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error is %T, want *domain.UpstreamError", err)
	}
	if upErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", upErr.StatusCode())
	}
}
