package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	"github.com/learn-sphere/analytics-api/internal/repository/memstore"
	"github.com/learn-sphere/analytics-api/internal/service"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *envelopeError         `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newCourseHandler(t *testing.T) (*CourseHandler, *memstore.Store) {
	t.Helper()
	store := memstore.New(0)
	store.Seed()
	svc := service.NewCourseService(store, nil, nil, zap.NewNop())
	return NewCourseHandler(svc), store
}

func TestCourseHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses?status=published", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 3, envelope.Pagination.TotalItems)

	var courses []models.Course
	require.NoError(t, json.Unmarshal(envelope.Data, &courses))
	require.Len(t, courses, 3)
	assert.Equal(t, "react-basics", courses[0].Slug)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandler(t)

	body := bytes.NewBufferString(`{"title":"Go Concurrency","level":"advanced","lessons":9}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/courses", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var course models.Course
	require.NoError(t, json.Unmarshal(envelope.Data, &course))
	assert.Equal(t, "go-concurrency", course.Slug)
	assert.Equal(t, models.CourseStatusDraft, course.Status)
}

func TestCourseHandlerCreateSlugConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandler(t)

	body := bytes.NewBufferString(`{"title":"React Basics"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/courses", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCourseHandlerCreateRejectsBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/courses", bytes.NewBufferString("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, store := newCourseHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/courses/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	courses, err := store.ListCourses(c.Request.Context())
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}
