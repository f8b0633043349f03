package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learn-sphere/analytics-api/internal/service"
	"github.com/learn-sphere/analytics-api/pkg/response"
)

// AnalyticsHandler exposes the aggregation reports over HTTP.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// StudentPerformance godoc
// @Summary Student performance report
// @Description Per-student rows with grades, completion status, compliance and attendance; optionally filtered to one course
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param courseId query string false "Restrict rows to one course"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /analytics/students [get]
func (h *AnalyticsHandler) StudentPerformance(c *gin.Context) {
	rows, cached, err := h.service.StudentPerformance(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"cached": cached})
}

// CoursePerformance godoc
// @Summary Course performance report
// @Description Per-course enrollment, pass/fail and live-session attendance totals
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /analytics/courses [get]
func (h *AnalyticsHandler) CoursePerformance(c *gin.Context) {
	rows, cached, err := h.service.CoursePerformance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"cached": cached})
}

// Summary godoc
// @Summary Platform summary statistics
// @Description Platform-wide course, enrollment and pass/fail counters
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	stats, cached, err := h.service.SummaryStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, map[string]interface{}{"cached": cached})
}
