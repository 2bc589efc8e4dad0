package domain

import "time"

// Identity is an authenticatable account. Only teachers and admins hold
// identities; students enter through classroom codes without an account.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the role and display attributes for an identity.
// Exactly one profile per identity.
type Profile struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name,omitempty"`
	SchoolID    string `json:"school_id,omitempty"`
}

// Classroom is a teacher's single classroom, joined by students via Code.
type Classroom struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Seat is an occupied student slot in a classroom.
type Seat struct {
	StudentNumber int    `json:"student_number"`
	StudentName   string `json:"student_name"`
}
