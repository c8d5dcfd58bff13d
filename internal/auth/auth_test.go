package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
	"gamecatalog/backend/internal/repository/memory"
	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}
	digest, err := h.Hash("Password1")
	require.NoError(t, err)

	assert.NotEqual(t, "Password1", digest)
	assert.True(t, h.Verify(digest, "Password1"))
	assert.False(t, h.Verify(digest, "password1"))
	assert.False(t, h.Verify("not-a-digest", "Password1"))
}

func newRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	r.GET("/whoami", func(c *gin.Context) {
		username, ok := Username(c)
		c.JSON(http.StatusOK, gin.H{"username": username, "ok": ok})
	})
	return r
}

func request(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer := jwt.NewIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken("marklee")
	require.NoError(t, err)
	r := newRouter(AuthMiddleware(issuer))

	w := request(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"marklee","ok":true}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, request(t, r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(t, r, "garbage").Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	issuer := jwt.NewIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken("marklee")
	require.NoError(t, err)
	r := newRouter(OptionalAuthMiddleware(issuer))

	w := request(t, r, token)
	assert.JSONEq(t, `{"username":"marklee","ok":true}`, w.Body.String())

	w = request(t, r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"","ok":false}`, w.Body.String())
}

func TestRequireUser(t *testing.T) {
	issuer := jwt.NewIssuer("secret", time.Hour)
	repo := memory.New()
	require.NoError(t, repo.AddUser(context.Background(), &models.User{Username: "marklee", PasswordHash: "x"}))
	repoFor := func(*gin.Context) repository.Repository { return repo }
	r := newRouter(AuthMiddleware(issuer), RequireUser(repoFor))

	// Tokens carry the spelling used at login; the stored spelling wins.
	token, err := issuer.GenerateToken("MarkLee")
	require.NoError(t, err)
	w := request(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"marklee","ok":true}`, w.Body.String())

	token, err = issuer.GenerateToken("deleted")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, request(t, r, token).Code)
}
