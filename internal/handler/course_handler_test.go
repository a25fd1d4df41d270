package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leopardweb/registrar-api/internal/models"
	"github.com/leopardweb/registrar-api/internal/service"
)

type fakeCourseRepo struct {
	courses []models.Course
}

func (f *fakeCourseRepo) FindByCRN(ctx context.Context, crn int) (*models.Course, error) {
	for _, course := range f.courses {
		if course.CRN == crn {
			return &course, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	return nil, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	f.courses = append(f.courses, *course)
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, crn int) error {
	return nil
}

type fakeInstructorLookup struct{}

func (f *fakeInstructorLookup) FindInstructorIDByEmail(ctx context.Context, email string) (string, error) {
	return "", sql.ErrNoRows
}

func newCourseHandlerFixture() *CourseHandler {
	repo := &fakeCourseRepo{courses: []models.Course{{CRN: 33173, Title: "Physics I", Department: "BSAS"}}}
	courses := service.NewCourseService(repo, &fakeInstructorLookup{}, nil, validator.New(), zap.NewNop())
	return NewCourseHandler(courses, nil, nil)
}

func TestCourseHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, 33173, envelope.Data[0].CRN)
}

func TestCourseHandlerListRejectsFieldWithoutValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses?field=title", nil)

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseHandlerListRejectsValueWithoutField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses?value=Math", nil)

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseHandlerListRejectsUnknownField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses?field=password_hash&value=x", nil)

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
