package service

import (
	"time"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// CalculateGrade maps a numeric average score onto the three-band letter
// scale: >=80 is A, >=50 is B, everything below is C. The function is total
// over real inputs; callers must reject NaN before invoking it.
func CalculateGrade(score float64) models.Grade {
	switch {
	case score >= 80:
		return models.GradeA
	case score >= 50:
		return models.GradeB
	default:
		return models.GradeC
	}
}

// ResolveCourseType classifies a course as Live or Self-Paced. An explicit
// Type on the course record wins; otherwise the course is Live when any live
// session references it.
func ResolveCourseType(course models.Course, sessions []models.LiveSession) models.CourseType {
	if course.Type != "" {
		return course.Type
	}
	for _, s := range sessions {
		if s.CourseID == course.ID {
			return models.CourseTypeLive
		}
	}
	return models.CourseTypeSelfPaced
}

// EvaluateCompliance decides compliance for a (student, course) pair from the
// submission collection. A pair with no submissions is vacuously Compliant;
// any submission past its due date and not completed makes it Non-Compliant.
// This is an any-match predicate, so evaluation order never changes the
// result.
func EvaluateCompliance(studentID, courseID string, submissions models.SubmissionSet, now time.Time) models.Compliance {
	subs := submissions.For(studentID, courseID)
	if len(subs) == 0 {
		return models.Compliant
	}
	for _, sub := range subs {
		if !sub.DueDate.IsZero() && sub.DueDate.Before(now) && !sub.Completed {
			return models.NonCompliant
		}
	}
	return models.Compliant
}
