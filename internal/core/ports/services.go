package ports

import (
	"context"
	"time"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

// SignupInput is the validated teacher signup request.
type SignupInput struct {
	Email      string
	Password   string
	InviteCode string
}

// LoginResult is a successful teacher authentication. ProfileSaved is false
// when the classroom bootstrap failed; the login itself still succeeded and
// the bootstrap retries on the next authentication event.
type LoginResult struct {
	Token        string
	UserID       string
	Role         domain.Role
	RedirectPath string
	ProfileSaved bool
}

type AuthService interface {
	SignupTeacher(ctx context.Context, input SignupInput) (*LoginResult, error)
	LoginTeacher(ctx context.Context, email, password string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type RoleService interface {
	ResolveByID(ctx context.Context, userID string) (domain.Role, error)
	ResolveCurrent(ctx context.Context) (domain.Role, error)
}

// BootstrapResult tags which step failed, if any.
type BootstrapResult struct {
	Classroom *domain.Classroom
	Step      string
	Err       error
}

// OK reports whether every step completed.
func (r BootstrapResult) OK() bool { return r.Err == nil }

type BootstrapService interface {
	EnsureTeacherAndClassroom(ctx context.Context, userID, email string) BootstrapResult
	CorrectRole(ctx context.Context, userID string, role domain.Role) error
}

type JoinService interface {
	Join(ctx context.Context, classroomCode string, studentNumber int, studentName string) (*domain.StudentSession, error)
	Leave(ctx context.Context, session domain.StudentSession) error
	SessionTTL() time.Duration
}

// StudentTodo is a todo paired with one seat's completion state.
type StudentTodo struct {
	Todo   domain.Todo
	Done   bool
	DoneAt *time.Time
}

// CreateTodoInput is the validated teacher todo-assignment request.
type CreateTodoInput struct {
	Title          string
	Description    string
	DueDate        *time.Time
	StudentNumbers []int
}

type TodoService interface {
	Create(ctx context.Context, teacherID string, input CreateTodoInput) (*domain.Todo, error)
	ListForTeacher(ctx context.Context, teacherID string) ([]domain.Todo, error)
	ListForStudent(ctx context.Context, session domain.StudentSession) ([]StudentTodo, float64, error)
	SetDone(ctx context.Context, session domain.StudentSession, todoID string, done bool) error
	CompletionRate(ctx context.Context, classroomID string, studentNumber int) (float64, error)
}

// StudentNotice is a notice paired with one seat's read state.
type StudentNotice struct {
	Notice domain.Notice
	Read   bool
	ReadAt *time.Time
}

// CreateNoticeInput is the validated teacher notice request.
type CreateNoticeInput struct {
	Title     string
	Body      string
	Pinned    bool
	PublishAt *time.Time
}

type NoticeService interface {
	Create(ctx context.Context, teacherID string, input CreateNoticeInput) (*domain.Notice, error)
	ListForTeacher(ctx context.Context, teacherID string) ([]domain.Notice, error)
	ListForStudent(ctx context.Context, session domain.StudentSession) ([]StudentNotice, error)
	MarkRead(ctx context.Context, session domain.StudentSession, noticeID string) error
}

// ClassroomService is the teacher-facing view over their classroom.
type ClassroomService interface {
	ClassroomFor(ctx context.Context, teacherID, email string) (*domain.Classroom, error)
	Students(ctx context.Context, teacherID string) ([]domain.Seat, error)
}
