package ports

import (
	"context"
	"time"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

// IdentityRepository persists authenticatable accounts.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ProfileRepository persists the role/display row attached to an identity.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateRole(ctx context.Context, userID, role string) error
}

// TeacherRepository ensures the teacher row behind a classroom exists.
// Ensure treats duplicate-key as success so repeated bootstrap runs are
// no-ops.
type TeacherRepository interface {
	Ensure(ctx context.Context, userID, email string) error
}

// ClassroomRepository persists classrooms. Insert maps a duplicate-key on
// teacher_id to domain-level "already exists" so concurrent first logins
// converge on a single row.
type ClassroomRepository interface {
	Insert(ctx context.Context, classroom *domain.Classroom) error
	FindByTeacher(ctx context.Context, teacherID string) (*domain.Classroom, error)
	FindByCode(ctx context.Context, code string) (*domain.Classroom, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// SeatRepository tracks which student numbers are occupied in a classroom.
// Reservations expire with the student session TTL.
type SeatRepository interface {
	Reserve(ctx context.Context, classroomID string, studentNumber int, studentName string, ttl time.Duration) error
	Release(ctx context.Context, classroomID string, studentNumber int) error
	List(ctx context.Context, classroomID string) ([]domain.Seat, error)
}

// TodoRepository persists todos and per-seat completion status.
type TodoRepository interface {
	Insert(ctx context.Context, todo *domain.Todo) error
	Get(ctx context.Context, id string) (*domain.Todo, error)
	ListByClassroom(ctx context.Context, classroomID string) ([]domain.Todo, error)
	SetStatus(ctx context.Context, status *domain.TodoStatus) error
	StatusesFor(ctx context.Context, classroomID string, studentNumber int) (map[string]domain.TodoStatus, error)
}

// NoticeRepository persists notices and per-seat read marks.
type NoticeRepository interface {
	Insert(ctx context.Context, notice *domain.Notice) error
	Get(ctx context.Context, id string) (*domain.Notice, error)
	ListPublished(ctx context.Context, classroomID string, now time.Time) ([]domain.Notice, error)
	ListByClassroom(ctx context.Context, classroomID string) ([]domain.Notice, error)
	MarkRead(ctx context.Context, read *domain.NoticeRead) error
	ReadsFor(ctx context.Context, classroomID string, studentNumber int) (map[string]time.Time, error)
}
