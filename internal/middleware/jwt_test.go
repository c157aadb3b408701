package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/internal/models"
	"github.com/noah-isme/course-registration-api/internal/service"
	"github.com/noah-isme/course-registration-api/internal/store"
)

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	doc := models.NewDocument()
	doc.Students = []models.Student{
		{ID: "6504001", Email: "ploy.s@university.ac.th", Password: "ploy1234", FirstName: "Ploy", LastName: "Srisuwan"},
	}
	payload, err := json.Marshal(doc)
	require.NoError(t, err)
	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, payload, 0o644))

	st := store.New(dataPath, "", nil)
	return service.NewAuthService(st, nil, nil, nil, nil, service.AuthTokenConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "course-registration-api",
	})
}

func jwtRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWT(auth))
	r.GET("/protected", func(c *gin.Context) {
		value, _ := c.Get(ContextStudentKey)
		claims := value.(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"student_id": claims.StudentID})
	})
	return r
}

func TestJWTAllowsValidToken(t *testing.T) {
	auth := newAuthService(t)
	resp, err := auth.Login(context.Background(), dto.LoginRequest{Identifier: "6504001", Password: "ploy1234"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	jwtRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "6504001")
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	auth := newAuthService(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	jwtRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	auth := newAuthService(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	jwtRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsInvalidToken(t *testing.T) {
	auth := newAuthService(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	jwtRouter(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
