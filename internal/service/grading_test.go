package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/learn-sphere/analytics-api/internal/models"
)

func TestCalculateGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Grade
	}{
		{100, models.GradeA},
		{80, models.GradeA},
		{79.9, models.GradeB},
		{50, models.GradeB},
		{49.9, models.GradeC},
		{0, models.GradeC},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateGrade(tc.score), "score %v", tc.score)
	}
}

func TestGradePassing(t *testing.T) {
	assert.True(t, models.GradeA.Passing())
	assert.True(t, models.GradeB.Passing())
	assert.False(t, models.GradeC.Passing())
}

func TestResolveCourseType(t *testing.T) {
	sessions := []models.LiveSession{
		{ID: "ls-1", CourseID: "c1"},
	}

	t.Run("explicit type wins over sessions", func(t *testing.T) {
		course := models.Course{ID: "c1", Type: models.CourseTypeSelfPaced}
		assert.Equal(t, models.CourseTypeSelfPaced, ResolveCourseType(course, sessions))
	})

	t.Run("session reference makes course live", func(t *testing.T) {
		course := models.Course{ID: "c1"}
		assert.Equal(t, models.CourseTypeLive, ResolveCourseType(course, sessions))
	})

	t.Run("no sessions means self-paced", func(t *testing.T) {
		course := models.Course{ID: "c2"}
		assert.Equal(t, models.CourseTypeSelfPaced, ResolveCourseType(course, sessions))
	})
}

func TestEvaluateCompliance(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	t.Run("no submissions is vacuously compliant", func(t *testing.T) {
		subs := make(models.SubmissionSet)
		assert.Equal(t, models.Compliant, EvaluateCompliance("s1", "c1", subs, now))
	})

	t.Run("past due incomplete is non-compliant", func(t *testing.T) {
		subs := make(models.SubmissionSet)
		subs.Add(models.Submission{StudentID: "s1", CourseID: "c1", Score: 90, Completed: true, DueDate: past})
		subs.Add(models.Submission{StudentID: "s1", CourseID: "c1", Score: 0, Completed: false, DueDate: past})
		assert.Equal(t, models.NonCompliant, EvaluateCompliance("s1", "c1", subs, now))
	})

	t.Run("past due but completed is compliant", func(t *testing.T) {
		subs := make(models.SubmissionSet)
		subs.Add(models.Submission{StudentID: "s1", CourseID: "c1", Completed: true, DueDate: past})
		assert.Equal(t, models.Compliant, EvaluateCompliance("s1", "c1", subs, now))
	})

	t.Run("future due incomplete is compliant", func(t *testing.T) {
		subs := make(models.SubmissionSet)
		subs.Add(models.Submission{StudentID: "s1", CourseID: "c1", Completed: false, DueDate: future})
		assert.Equal(t, models.Compliant, EvaluateCompliance("s1", "c1", subs, now))
	})

	t.Run("zero due date is ignored", func(t *testing.T) {
		subs := make(models.SubmissionSet)
		subs.Add(models.Submission{StudentID: "s1", CourseID: "c1", Completed: false})
		assert.Equal(t, models.Compliant, EvaluateCompliance("s1", "c1", subs, now))
	})

	t.Run("other course does not leak", func(t *testing.T) {
		subs := make(models.SubmissionSet)
		subs.Add(models.Submission{StudentID: "s1", CourseID: "c2", Completed: false, DueDate: past})
		assert.Equal(t, models.Compliant, EvaluateCompliance("s1", "c1", subs, now))
	})
}

func TestCompletionStatusCombine(t *testing.T) {
	assert.Equal(t, models.StatusInProgress, models.StatusCompleted.Combine(models.StatusInProgress))
	assert.Equal(t, models.StatusEnrolled, models.StatusCompleted.Combine(models.StatusEnrolled))
	assert.Equal(t, models.StatusCompleted, models.StatusNotEnrolled.Combine(models.StatusCompleted))
	assert.Equal(t, models.StatusInProgress, models.StatusInProgress.Combine(models.StatusCompleted))
}
