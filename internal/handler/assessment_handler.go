package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/service"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
	"github.com/learn-sphere/analytics-api/pkg/response"
)

// AssessmentHandler wires HTTP endpoints to the assessment service.
type AssessmentHandler struct {
	service *service.AssessmentService
}

// NewAssessmentHandler creates a new handler.
func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: svc}
}

// Add godoc
// @Summary Record a graded submission
// @Description Append a graded submission for a (student, course) pair
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param courseId path string true "Course ID"
// @Param payload body dto.AddAssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/courses/{courseId}/assessments [post]
func (h *AssessmentHandler) Add(c *gin.Context) {
	var req dto.AddAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assessment payload"))
		return
	}

	sub, err := h.service.Add(c.Request.Context(), c.Param("studentId"), c.Param("courseId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}
