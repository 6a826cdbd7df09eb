package account

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fantaleague/fantacalcio/internal/platform/resilience"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

func newIntrospectServer(t *testing.T, hits *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVerifyAccessToken(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := newIntrospectServer(t, &hits, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"u-42","email":"u42@example.com"}`))
	})

	client := NewClient(Config{BaseURL: server.URL, IntrospectPath: "/v1/introspect", CacheTTL: time.Minute}, nil)

	principal, err := client.VerifyAccessToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if principal.UserID != "u-42" || principal.Email != "u42@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	// A second verification of the same token is served from the cache.
	if _, err := client.VerifyAccessToken(context.Background(), "tok-abc"); err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("introspection endpoint hit %d times, want 1", got)
	}
}

func TestVerifyAccessToken_Denied(t *testing.T) {
	t.Parallel()

	server := newIntrospectServer(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := NewClient(Config{BaseURL: server.URL}, nil)

	if _, err := client.VerifyAccessToken(context.Background(), "tok-bad"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	server := newIntrospectServer(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":false}`))
	})
	client := NewClient(Config{BaseURL: server.URL}, nil)

	if _, err := client.VerifyAccessToken(context.Background(), "tok-stale"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_BreakerShedsAfterOutage(t *testing.T) {
	t.Parallel()

	server := newIntrospectServer(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	client := NewClient(Config{
		BaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:     true,
			MaxFailures: 2,
			Cooldown:    time.Minute,
			ProbeLimit:  1,
		},
	}, nil)

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "tok"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected dependency failure, got %v", err)
		}
	}

	// The breaker is open now; the endpoint must not be contacted again.
	server.Close()
	if _, err := client.VerifyAccessToken(context.Background(), "tok"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected shed request, got %v", err)
	}
}
