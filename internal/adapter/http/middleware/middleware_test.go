package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
)

const secret = "s3cret"

func signed(t *testing.T, claims Claims, key string) string {
	t.Helper()
	tok, err := SignToken(claims, key)
	require.NoError(t, err)
	return tok
}

func walletEcho(w http.ResponseWriter, r *http.Request) {
	addr, _ := WalletAddress(r.Context())
	_, _ = w.Write([]byte(addr))
}

func TestJWTAuth(t *testing.T) {
	valid := signed(t, Claims{
		WalletAddress:    "0xabc",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}, secret)
	expired := signed(t, Claims{
		WalletAddress:    "0xabc",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	}, secret)
	wrongKey := signed(t, Claims{WalletAddress: "0xabc"}, "other")
	noWallet := signed(t, Claims{}, secret)

	tests := []struct {
		name     string
		header   string
		want     int
		wantBody string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, "0xabc"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "0xabc"},
		{"missing header", "", http.StatusUnauthorized, "not provided"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "format is invalid"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "expired"},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, "invalid"},
		{"no wallet claim", "Bearer " + noWallet, http.StatusUnauthorized, "invalid"},
	}

	h := JWTAuth(secret, logger.NewNopLogger())(http.HandlerFunc(walletEcho))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{WalletAddress: "0xabc"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(logger.NewNopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestTimeout(t *testing.T) {
	var deadline time.Time
	h := Timeout(50 * time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m := metrics.NewMetricsManager("test")
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/wearables/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/wearables/42", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `route="/api/wearables/{id}"`), body)
	assert.Contains(t, body, `status="418"`)
}

func TestWalletAddress_Empty(t *testing.T) {
	_, ok := WalletAddress(context.Background())
	assert.False(t, ok)
	_, ok = WalletAddress(context.WithValue(context.Background(), WalletAddressCtxKey, ""))
	assert.False(t, ok)
}

func TestLogger_PassesThrough(t *testing.T) {
	h := Logger(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
