package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/pkg/jwt"
)

func newAuthRouter(jwtManager *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{Auth(jwtManager)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := UserIDFromContext(c)
		role, _ := RoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": role})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret"))

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret"))

	for _, header := range []string{"garbage", "Basic abc123", "Bearer"} {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret"))

	w := doRequest(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthWrongSecret(t *testing.T) {
	token, err := jwt.NewManager("other-secret").Generate(uuid.New(), "user")
	require.NoError(t, err)

	router := newAuthRouter(jwt.NewManager("test-secret"))
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret")
	userID := uuid.New()
	token, err := jwtManager.Generate(userID, "user")
	require.NoError(t, err)

	router := newAuthRouter(jwtManager)
	w := doRequest(router, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret")
	token, err := jwtManager.Generate(uuid.New(), "user")
	require.NoError(t, err)

	router := newAuthRouter(jwtManager, RequireAdmin())
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret")
	token, err := jwtManager.Generate(uuid.New(), "admin")
	require.NoError(t, err)

	router := newAuthRouter(jwtManager, RequireAdmin())
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
