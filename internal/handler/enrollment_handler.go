package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/service"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
	"github.com/learn-sphere/analytics-api/pkg/response"
)

// EnrollmentHandler wires HTTP endpoints to the enrollment service.
type EnrollmentHandler struct {
	service *service.EnrollmentService
}

// NewEnrollmentHandler creates a new handler.
func NewEnrollmentHandler(svc *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List enrollment records
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Record an enrollment; course details are copied onto the record
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.EnrollCourseRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}
	if req.CourseID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "course_id is required"))
		return
	}

	enrollment, err := h.service.Enroll(c.Request.Context(), req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Unenroll godoc
// @Summary Remove course enrollments
// @Description Drop every enrollment record for a course
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{courseId} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	removed, err := h.service.Unenroll(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": removed}, nil)
}
