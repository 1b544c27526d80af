/* middleware_test.go
 * Contains unit tests for the access guard middlewares in middleware.go
 */

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"contest-beaters/api/api"
	"contest-beaters/api/auth"
	"contest-beaters/api/store"
	"contest-beaters/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server over a MockStore with a real token service
func newTestServer(t *testing.T) (*Server, *api.MockStore) {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)

	mock := api.NewMockStore()
	s := NewServer(Config{
		API:      &api.API{Store: mock},
		Tokens:   tokens,
		Payments: &payments.Stub{},
	})
	return s, mock
}

// issueToken signs a token for the given identity using the server's service
func issueToken(t *testing.T, s *Server, email string, role string) string {
	t.Helper()
	token, err := s.tokens.Issue(email, role)
	require.NoError(t, err)
	return token
}

// region VerifyUser tests

func TestVerifyUser_MissingHeader(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/contests", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestVerifyUser_InvalidToken(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/contests", nil)
	req.Header.Set("token", "not-a-real-token")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyUser_TokenFromOtherSecret(t *testing.T) {
	s, _ := newTestServer(t)

	foreign, err := auth.NewTokenService("different-secret")
	require.NoError(t, err)
	token, err := foreign.Issue("admin@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/contests", nil)
	req.Header.Set("token", token)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// endregion

// region VerifyAdmin tests

func TestVerifyAdmin_RejectsNonAdmin(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/contests", nil)
	req.Header.Set("token", issueToken(t, s, "alice@example.com", "user"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestVerifyAdmin_AllowsAdmin(t *testing.T) {
	s, mock := newTestServer(t)
	mock.SeedContest(store.Contest{Type: "Web"})

	req := httptest.NewRequest(http.MethodGet, "/contests", nil)
	req.Header.Set("token", issueToken(t, s, "admin@example.com", "admin"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyAdmin_WithoutPrincipalIsServerError(t *testing.T) {
	s, _ := newTestServer(t)

	// Simulate a route wired with VerifyAdmin but no VerifyUser
	handler := s.VerifyAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/miswired", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// endregion

// region RequireSelf tests

func TestRequireSelf_RejectsOtherEmail(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/contests/bob@example.com", nil)
	req.Header.Set("token", issueToken(t, s, "alice@example.com", "user"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSelf_AllowsOwner(t *testing.T) {
	s, mock := newTestServer(t)
	mock.SeedContest(store.Contest{Email: "alice@example.com", Type: "Web"})

	req := httptest.NewRequest(http.MethodGet, "/contests/alice@example.com", nil)
	req.Header.Set("token", issueToken(t, s, "alice@example.com", "user"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

// endregion

func TestPrincipalFromContext_Empty(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}

func TestHealthz_NotReadyWhenStoreDown(t *testing.T) {
	s, mock := newTestServer(t)
	mock.PingError = assert.AnError

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthz_Ready(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
