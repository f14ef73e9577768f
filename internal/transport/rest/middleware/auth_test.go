package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/config"
	"bookforge/internal/service"
)

func testMiddleware(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	authSvc := service.NewAuthService(&config.ServerConfig{
		AuthorUsername: "author",
		AuthorPassword: "pw",
		JWTSecret:      "test-secret",
	})
	resp, err := authSvc.Login("author", "pw")
	require.NoError(t, err)
	return NewAuthMiddleware(authSvc), resp.Token
}

func TestRequireAuthorPassesValidToken(t *testing.T) {
	mw, token := testMiddleware(t)

	var gotAuthorID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorID = GetAuthorID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.RequireAuthor(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotAuthorID)
}

func TestRequireAuthorRejectsMissingHeader(t *testing.T) {
	mw, _ := testMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	rec := httptest.NewRecorder()

	mw.RequireAuthor(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthorRejectsBadToken(t *testing.T) {
	mw, _ := testMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	mw.RequireAuthor(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", extractBearerToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", extractBearerToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", extractBearerToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Equal(t, "", extractBearerToken(req))
}
