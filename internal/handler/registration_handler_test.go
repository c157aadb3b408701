package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/internal/middleware"
	"github.com/noah-isme/course-registration-api/internal/models"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

type stubEnrollments struct {
	item *dto.RegisteredCourseItem
	err  error

	registeredStudent string
	registeredCourse  string
	withdrawnCourse   string
}

func (s *stubEnrollments) Register(_ context.Context, studentID, courseID string) (*dto.RegisteredCourseItem, error) {
	s.registeredStudent = studentID
	s.registeredCourse = courseID
	if s.err != nil {
		return nil, s.err
	}
	return s.item, nil
}

func (s *stubEnrollments) Withdraw(_ context.Context, studentID, courseID string) (*dto.RegisteredCourseItem, error) {
	s.withdrawnCourse = courseID
	if s.err != nil {
		return nil, s.err
	}
	return s.item, nil
}

type stubRegistrationCatalog struct {
	registered []dto.RegisteredCourseItem
	withdrawn  []dto.RegisteredCourseItem
	err        error
}

func (s *stubRegistrationCatalog) RegisteredCourses(_ context.Context, _ string) ([]dto.RegisteredCourseItem, error) {
	return s.registered, s.err
}

func (s *stubRegistrationCatalog) WithdrawnCourses(_ context.Context, _ string) ([]dto.RegisteredCourseItem, error) {
	return s.withdrawn, s.err
}

func authedContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextStudentKey, &models.JWTClaims{StudentID: "6504001", Email: "ploy.s@university.ac.th"})
	return c, rec
}

func sampleItem() *dto.RegisteredCourseItem {
	return &dto.RegisteredCourseItem{
		CourseItem:         dto.CourseItem{CourseID: "CS201", Name: "Data Structures"},
		RegistrationStatus: "registered",
		RegistrationDate:   time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestRegistrationCreate(t *testing.T) {
	enrollments := &stubEnrollments{item: sampleItem()}
	h := NewRegistrationHandler(enrollments, &stubRegistrationCatalog{})

	payload, _ := json.Marshal(dto.RegisterCourseRequest{CourseID: "CS201"})
	c, rec := authedContext(t, http.MethodPost, "/api/v1/registrations", payload)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "6504001", enrollments.registeredStudent)
	assert.Equal(t, "CS201", enrollments.registeredCourse)

	var envelope struct {
		Data dto.RegisteredCourseItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "CS201", envelope.Data.CourseID)
}

func TestRegistrationCreateInvalidPayload(t *testing.T) {
	h := NewRegistrationHandler(&stubEnrollments{}, &stubRegistrationCatalog{})

	c, rec := authedContext(t, http.MethodPost, "/api/v1/registrations", []byte(`{}`))

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationCreateConflict(t *testing.T) {
	enrollments := &stubEnrollments{err: appErrors.ErrDuplicateRegistration}
	h := NewRegistrationHandler(enrollments, &stubRegistrationCatalog{})

	payload, _ := json.Marshal(dto.RegisterCourseRequest{CourseID: "CS101"})
	c, rec := authedContext(t, http.MethodPost, "/api/v1/registrations", payload)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "DUPLICATE_REGISTRATION", envelope.Error.Code)
}

func TestRegistrationCreateRequiresClaims(t *testing.T) {
	h := NewRegistrationHandler(&stubEnrollments{}, &stubRegistrationCatalog{})

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/registrations", bytes.NewReader(nil))

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegistrationList(t *testing.T) {
	catalog := &stubRegistrationCatalog{registered: []dto.RegisteredCourseItem{*sampleItem()}}
	h := NewRegistrationHandler(&stubEnrollments{}, catalog)

	c, rec := authedContext(t, http.MethodGet, "/api/v1/registrations", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []dto.RegisteredCourseItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "CS201", envelope.Data[0].CourseID)
}

func TestRegistrationDelete(t *testing.T) {
	enrollments := &stubEnrollments{item: sampleItem()}
	h := NewRegistrationHandler(enrollments, &stubRegistrationCatalog{})

	c, rec := authedContext(t, http.MethodDelete, "/api/v1/registrations/CS201", nil)
	c.Params = gin.Params{{Key: "courseId", Value: "CS201"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CS201", enrollments.withdrawnCourse)
}

func TestRegistrationDeleteNotFound(t *testing.T) {
	enrollments := &stubEnrollments{err: appErrors.ErrNotFound}
	h := NewRegistrationHandler(enrollments, &stubRegistrationCatalog{})

	c, rec := authedContext(t, http.MethodDelete, "/api/v1/registrations/ZZ999", nil)
	c.Params = gin.Params{{Key: "courseId", Value: "ZZ999"}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
