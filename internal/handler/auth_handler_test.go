package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-registration-api/internal/dto"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

type stubAuthService struct {
	resp        *dto.LoginResponse
	err         error
	loginReq    dto.LoginRequest
	logoutCalls int
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	s.loginReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubAuthService) Logout(_ context.Context) {
	s.logoutCalls++
}

func TestAuthLogin(t *testing.T) {
	auth := &stubAuthService{resp: &dto.LoginResponse{
		AccessToken: "token",
		ExpiresIn:   3600,
		Student:     dto.StudentInfo{ID: "6504001", FullName: "Ploy Srisuwan"},
	}}
	h := NewAuthHandler(auth)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload, _ := json.Marshal(dto.LoginRequest{Identifier: "6504001", Password: "ploy1234"})
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6504001", auth.loginReq.Identifier)

	var envelope struct {
		Data dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "token", envelope.Data.AccessToken)
	assert.Equal(t, "Ploy Srisuwan", envelope.Data.Student.FullName)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: appErrors.ErrInvalidCredentials})

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload, _ := json.Marshal(dto.LoginRequest{Identifier: "6504001", Password: "wrong"})
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLoginMalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthLogout(t *testing.T) {
	auth := &stubAuthService{}
	h := NewAuthHandler(auth)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/auth/logout", h.Logout)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, auth.logoutCalls)
}
