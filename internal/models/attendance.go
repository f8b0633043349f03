package models

import "time"

// AttendanceRecord tracks one student against one live session. Date is set
// only when the student actually attended.
type AttendanceRecord struct {
	StudentID string     `db:"student_id" json:"student_id"`
	SessionID string     `db:"session_id" json:"session_id"`
	Enrolled  bool       `db:"enrolled" json:"enrolled"`
	Attended  bool       `db:"attended" json:"attended"`
	Date      *time.Time `db:"date" json:"date,omitempty"`
}

// AttendanceSet indexes records by student id then session id.
type AttendanceSet map[string]map[string]AttendanceRecord

// ForStudent returns the per-session records of one student. Missing students
// yield an empty map.
func (a AttendanceSet) ForStudent(studentID string) map[string]AttendanceRecord {
	if bySession, ok := a[studentID]; ok {
		return bySession
	}
	return map[string]AttendanceRecord{}
}

// Put stores a record under its (student, session) key.
func (a AttendanceSet) Put(rec AttendanceRecord) {
	bySession, ok := a[rec.StudentID]
	if !ok {
		bySession = make(map[string]AttendanceRecord)
		a[rec.StudentID] = bySession
	}
	bySession[rec.SessionID] = rec
}
