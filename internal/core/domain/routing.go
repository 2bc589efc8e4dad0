package domain

// Canonical client-facing paths. Handlers return these as redirect hints so
// the role/path mapping lives in exactly one place.
const (
	PathHome             = "/"
	PathTeacherLogin     = "/login/teacher"
	PathStudentEnter     = "/enter"
	PathTeacherDashboard = "/teacher/dashboard"
	PathStudentDashboard = "/student/dashboard"
)

// DashboardPath maps a resolved role to its dashboard. This is a two-way
// split: students get the student dashboard, everything else (teacher,
// admin, any future non-student value) lands on the teacher dashboard.
// Callers must resolve the role first; an empty role is their bug to handle.
func DashboardPath(role Role) string {
	if role == RoleStudent {
		return PathStudentDashboard
	}
	return PathTeacherDashboard
}

// IsTeacherLike reports whether role is teacher or admin.
func IsTeacherLike(role Role) bool {
	return role == RoleTeacher || role == RoleAdmin
}

// IsStudentLike reports whether role is student.
func IsStudentLike(role Role) bool {
	return role == RoleStudent
}
