package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func sessionEcho(w http.ResponseWriter, r *http.Request) {
	s, ok := SessionFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"user": s.UserID, "role": s.Role})
}

func TestJWTAuth(t *testing.T) {
	h := JWTAuth(testSecret)(http.HandlerFunc(sessionEcho))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"Valid", "Bearer " + signToken(t, testSecret, "u-1", "user", time.Hour), http.StatusOK},
		{"LowercaseScheme", "bearer " + signToken(t, testSecret, "u-1", "user", time.Hour), http.StatusOK},
		{"Missing", "", http.StatusUnauthorized},
		{"WrongScheme", "Basic abc", http.StatusUnauthorized},
		{"WrongSecret", "Bearer " + signToken(t, "other", "u-1", "user", time.Hour), http.StatusUnauthorized},
		{"Expired", "Bearer " + signToken(t, testSecret, "u-1", "user", -time.Minute), http.StatusUnauthorized},
		{"NoUserID", "Bearer " + signToken(t, testSecret, "", "user", time.Hour), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user":"u-1","role":"user"}`, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	_, err := ParseToken(signToken(t, testSecret, "u-1", "", -time.Minute), testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseToken_RejectsNonHMAC(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireAdmin(t *testing.T) {
	h := JWTAuth(testSecret)(RequireAdmin(http.HandlerFunc(sessionEcho)))

	for role, status := range map[string]int{"admin": http.StatusOK, "user": http.StatusForbidden, "": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u-9", role, time.Hour))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code, "role %q", role)
	}

	rec := httptest.NewRecorder()
	RequireAdmin(http.HandlerFunc(sessionEcho)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type MockHTTPRecorder struct {
	mock.Mock
}

func (m *MockHTTPRecorder) ObserveHTTP(route, method, status string, d time.Duration) {
	m.Called(route, method, status, d)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := new(MockHTTPRecorder)
	rec.On("ObserveHTTP", "/api/products/{slug}", http.MethodGet, "404", mock.AnythingOfType("time.Duration")).Once()

	r := chi.NewRouter()
	r.Use(Logger(logger.NewNop()))
	r.Use(Metrics(rec))
	r.Get("/api/products/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/missing", nil))
	rec.AssertExpectations(t)
}

func TestMetrics_DefaultStatus(t *testing.T) {
	rec := new(MockHTTPRecorder)
	rec.On("ObserveHTTP", "/ok", http.MethodGet, "200", mock.Anything).Once()

	r := chi.NewRouter()
	r.Use(Metrics(rec))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	rec.AssertExpectations(t)
}
