package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leopardweb/registrar-api/internal/service"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
	"github.com/leopardweb/registrar-api/pkg/response"
)

// EnrollmentHandler exposes student self-service and admin override
// registration endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	exports     *service.ExportService
}

// NewEnrollmentHandler creates a new handler. exports may be nil when the
// export feature is disabled.
func NewEnrollmentHandler(enrollments *service.EnrollmentService, exports *service.ExportService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, exports: exports}
}

type registerRequest struct {
	CRN int `json:"crn" binding:"required"`
}

type adminRegistrationRequest struct {
	Username string `json:"username" binding:"required"`
	CRN      int    `json:"crn" binding:"required"`
}

// Register godoc
// @Summary Register for a course
// @Description Register the authenticated student for a course by CRN
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/me/registrations [post]
func (h *EnrollmentHandler) Register(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	if err := h.enrollments.Register(c.Request.Context(), claims.Username, req.CRN); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"crn": req.CRN})
}

// Drop godoc
// @Summary Drop a course
// @Description Drop the authenticated student's registration for a CRN
// @Tags Registrations
// @Produce json
// @Param crn path int true "Course CRN"
// @Success 204 {object} response.Envelope
// @Router /students/me/registrations/{crn} [delete]
func (h *EnrollmentHandler) Drop(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	crn, err := strconv.Atoi(c.Param("crn"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "crn must be an integer"))
		return
	}

	if err := h.enrollments.Drop(c.Request.Context(), claims.Username, crn); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Schedule godoc
// @Summary My schedule
// @Description List the authenticated student's registered courses
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /students/me/schedule [get]
func (h *EnrollmentHandler) Schedule(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.enrollments.Schedule(c.Request.Context(), claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ExportSchedule godoc
// @Summary Export my schedule
// @Description Download the authenticated student's schedule as CSV or PDF
// @Tags Registrations
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /students/me/schedule/export [get]
func (h *EnrollmentHandler) ExportSchedule(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exports are disabled"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", service.FormatCSV)
	result, err := h.exports.RenderSchedule(c.Request.Context(), claims.Username, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// AdminRegister godoc
// @Summary Register a student (admin)
// @Description Register any student for a course by username and CRN
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body adminRegistrationRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /registrations [post]
func (h *EnrollmentHandler) AdminRegister(c *gin.Context) {
	var req adminRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	if err := h.enrollments.Register(c.Request.Context(), req.Username, req.CRN); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"username": req.Username, "crn": req.CRN})
}

// AdminDrop godoc
// @Summary Drop a student (admin)
// @Description Drop any student's registration by username and CRN
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body adminRegistrationRequest true "Registration payload"
// @Success 204 {object} response.Envelope
// @Router /registrations [delete]
func (h *EnrollmentHandler) AdminDrop(c *gin.Context) {
	var req adminRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	if err := h.enrollments.Drop(c.Request.Context(), req.Username, req.CRN); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
