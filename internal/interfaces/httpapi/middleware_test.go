package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fantaleague/fantacalcio/internal/domain/user"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

type verifierFunc func(ctx context.Context, token string) (user.Principal, error)

func (f verifierFunc) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	return f(ctx, token)
}

func TestRequireAuth_PrincipalReachesHandler(t *testing.T) {
	t.Parallel()

	verifier := verifierFunc(func(_ context.Context, token string) (user.Principal, error) {
		if token != "tok-ok" {
			return user.Principal{}, fmt.Errorf("%w: bad token", usecase.ErrUnauthorized)
		}
		return user.Principal{UserID: "u-7"}, nil
	})

	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	req.Header.Set("Authorization", "Bearer tok-ok")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status = %d", recorder.Code)
	}
	if seen.UserID != "u-7" {
		t.Fatalf("principal = %+v", seen)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	t.Parallel()

	verifier := verifierFunc(func(context.Context, string) (user.Principal, error) {
		return user.Principal{}, fmt.Errorf("%w: bad token", usecase.ErrUnauthorized)
	})
	handler := RequireAuth(verifier, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, header := range []string{"", "tok-naked", "Basic dXNlcg==", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d", header, recorder.Code)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	handler := CORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("preflight must short-circuit")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/leagues", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status = %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		reason string
	}{
		{fmt.Errorf("%w: x", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{fmt.Errorf("%w: x", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{fmt.Errorf("%w: x", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{fmt.Errorf("%w: x", usecase.ErrConflict), http.StatusConflict, "conflict"},
		{fmt.Errorf("%w: x", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}
	for _, tc := range cases {
		mapped := mapError(tc.err)
		if mapped.HTTPStatus != tc.status || mapped.Reason != tc.reason {
			t.Fatalf("mapError(%v) = %+v", tc.err, mapped)
		}
	}
}
