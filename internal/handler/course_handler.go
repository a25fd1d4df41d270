package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leopardweb/registrar-api/internal/models"
	"github.com/leopardweb/registrar-api/internal/service"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
	"github.com/leopardweb/registrar-api/pkg/response"
)

// CourseHandler exposes catalog endpoints.
type CourseHandler struct {
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	exports     *service.ExportService
}

// NewCourseHandler creates a new handler. exports may be nil when the export
// feature is disabled.
func NewCourseHandler(courses *service.CourseService, enrollments *service.EnrollmentService, exports *service.ExportService) *CourseHandler {
	return &CourseHandler{courses: courses, enrollments: enrollments, exports: exports}
}

func crnParam(c *gin.Context) (int, bool) {
	crn, err := strconv.Atoi(c.Param("crn"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "crn must be an integer"))
		return 0, false
	}
	return crn, true
}

// List godoc
// @Summary List courses
// @Description List catalog courses, optionally filtered by field and value
// @Tags Courses
// @Produce json
// @Param field query string false "Filter field (crn, title, department, time, days, semester, year, credits)"
// @Param value query string false "Filter value, matched as a contains search"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter := models.CourseFilter{
		Field: c.Query("field"),
		Value: c.Query("value"),
	}
	if filter.Field != "" && filter.Value == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "value is required when field is set"))
		return
	}
	if filter.Field == "" && filter.Value != "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "field is required when value is set"))
		return
	}

	courses, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param crn path int true "Course CRN"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{crn} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	crn, ok := crnParam(c)
	if !ok {
		return
	}

	course, err := h.courses.Get(c.Request.Context(), crn)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Add course
// @Description Add a course to the catalog, resolving the instructor by email
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.courses.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Delete godoc
// @Summary Remove course
// @Description Remove a course and its registrations
// @Tags Courses
// @Produce json
// @Param crn path int true "Course CRN"
// @Success 204 {object} response.Envelope
// @Router /courses/{crn} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	crn, ok := crnParam(c)
	if !ok {
		return
	}

	if err := h.courses.Remove(c.Request.Context(), crn); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MyCourses godoc
// @Summary List my courses
// @Description List courses taught by the authenticated instructor
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /instructors/me/courses [get]
func (h *CourseHandler) MyCourses(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.courses.ListByInstructor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Roster godoc
// @Summary Course roster
// @Description List students registered for a course
// @Tags Courses
// @Produce json
// @Param crn path int true "Course CRN"
// @Success 200 {object} response.Envelope
// @Router /courses/{crn}/roster [get]
func (h *CourseHandler) Roster(c *gin.Context) {
	crn, ok := crnParam(c)
	if !ok {
		return
	}

	roster, err := h.enrollments.Roster(c.Request.Context(), crn)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// ExportRoster godoc
// @Summary Export course roster
// @Description Download the roster as CSV or PDF
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Param crn path int true "Course CRN"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /courses/{crn}/roster/export [get]
func (h *CourseHandler) ExportRoster(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exports are disabled"))
		return
	}
	crn, ok := crnParam(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", service.FormatCSV)
	result, err := h.exports.RenderRoster(c.Request.Context(), crn, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
