package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/service"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
	"github.com/learn-sphere/analytics-api/pkg/response"
)

// AttendanceHandler wires HTTP endpoints to the attendance service.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Sessions godoc
// @Summary List live sessions
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *AttendanceHandler) Sessions(c *gin.Context) {
	sessions, err := h.service.Sessions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}

// Enroll godoc
// @Summary Enroll a student in a live session
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param sessionId path string true "Session ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/sessions/{sessionId}/enrollment [post]
func (h *AttendanceHandler) Enroll(c *gin.Context) {
	rec, err := h.service.EnrollInSession(c.Request.Context(), c.Param("studentId"), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rec)
}

// Mark godoc
// @Summary Mark live-session attendance
// @Description Set or clear the attended flag for an enrolled student
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param sessionId path string true "Session ID"
// @Param payload body dto.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/sessions/{sessionId}/attendance [put]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	rec, err := h.service.Mark(c.Request.Context(), c.Param("studentId"), c.Param("sessionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, nil)
}
