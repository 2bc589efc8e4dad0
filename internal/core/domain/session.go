package domain

import "fmt"

// Join constraints. Student numbers are seat numbers within a single
// classroom, names are what the student typed at the door.
const (
	MinStudentNumber = 1
	MaxStudentNumber = 30
	MinStudentName   = 2
	MaxStudentName   = 10
)

// StudentSession is a student's classroom membership. It lives entirely in
// an opaque client cookie; the server holds no session row for it.
type StudentSession struct {
	ClassroomID   string `json:"classroomId"`
	ClassroomCode string `json:"classroomCode"`
	StudentNumber int    `json:"studentNumber"`
	StudentName   string `json:"studentName"`
}

// ValidStudentNumber reports whether n is an allowed seat number.
func ValidStudentNumber(n int) bool {
	return n >= MinStudentNumber && n <= MaxStudentNumber
}

// ValidateJoin checks the join input constraints. The code must already be
// normalized and format-checked by the caller; this covers the seat number
// range and the name length. Violations wrap ErrInvalidJoin so callers can
// classify them as client errors.
func ValidateJoin(studentNumber int, studentName string) error {
	if !ValidStudentNumber(studentNumber) {
		return fmt.Errorf("%w: student number must be between %d and %d", ErrInvalidJoin, MinStudentNumber, MaxStudentNumber)
	}
	if n := len([]rune(studentName)); n < MinStudentName || n > MaxStudentName {
		return fmt.Errorf("%w: student name must be %d-%d characters", ErrInvalidJoin, MinStudentName, MaxStudentName)
	}
	return nil
}
