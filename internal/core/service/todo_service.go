package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// TodoService handles todo assignment and per-seat completion tracking.
// Students are scoped by their session's classroom; teachers by classroom
// ownership.
type TodoService struct {
	todos      ports.TodoRepository
	classrooms ports.ClassroomRepository
	logger     zerolog.Logger
}

func NewTodoService(todos ports.TodoRepository, classrooms ports.ClassroomRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{todos: todos, classrooms: classrooms, logger: logger}
}

// Create assigns a todo to the teacher's classroom, optionally targeting
// specific seats.
func (s *TodoService) Create(ctx context.Context, teacherID string, input ports.CreateTodoInput) (*domain.Todo, error) {
	classroom, err := s.classrooms.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	for _, n := range input.StudentNumbers {
		if !domain.ValidStudentNumber(n) {
			return nil, fmt.Errorf("%w: student number %d out of range", domain.ErrInvalidJoin, n)
		}
	}

	todo := &domain.Todo{
		ID:             uuid.NewString(),
		ClassroomID:    classroom.ID,
		Title:          input.Title,
		Description:    input.Description,
		DueDate:        input.DueDate,
		StudentNumbers: input.StudentNumbers,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.todos.Insert(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info().Str("todo_id", todo.ID).Str("classroom_id", classroom.ID).Msg("todo assigned")
	return todo, nil
}

// ListForTeacher returns every todo in the teacher's classroom.
func (s *TodoService) ListForTeacher(ctx context.Context, teacherID string) ([]domain.Todo, error) {
	classroom, err := s.classrooms.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.todos.ListByClassroom(ctx, classroom.ID)
}

// ListForStudent returns the session seat's todos with completion state and
// the overall completion rate (done/total over applicable todos; 0 when the
// classroom has none).
func (s *TodoService) ListForStudent(ctx context.Context, session domain.StudentSession) ([]ports.StudentTodo, float64, error) {
	todos, err := s.todos.ListByClassroom(ctx, session.ClassroomID)
	if err != nil {
		return nil, 0, err
	}
	statuses, err := s.todos.StatusesFor(ctx, session.ClassroomID, session.StudentNumber)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ports.StudentTodo, 0, len(todos))
	done := 0
	for _, todo := range todos {
		if !todo.AppliesTo(session.StudentNumber) {
			continue
		}
		st := ports.StudentTodo{Todo: todo}
		if status, ok := statuses[todo.ID]; ok && status.Done {
			st.Done = true
			st.DoneAt = status.DoneAt
			done++
		}
		out = append(out, st)
	}

	rate := 0.0
	if len(out) > 0 {
		rate = float64(done) / float64(len(out))
	}
	return out, rate, nil
}

// SetDone records the session seat's completion state for a todo. The todo
// must belong to the session's classroom and target the seat.
func (s *TodoService) SetDone(ctx context.Context, session domain.StudentSession, todoID string, done bool) error {
	todo, err := s.todos.Get(ctx, todoID)
	if err != nil {
		return err
	}
	if todo.ClassroomID != session.ClassroomID || !todo.AppliesTo(session.StudentNumber) {
		return domain.ErrForbidden
	}

	status := &domain.TodoStatus{
		TodoID:        todoID,
		ClassroomID:   session.ClassroomID,
		StudentNumber: session.StudentNumber,
		Done:          done,
	}
	if done {
		now := time.Now().UTC()
		status.DoneAt = &now
	}
	return s.todos.SetStatus(ctx, status)
}

// CompletionRate computes one seat's completion rate, for the teacher's
// student roster view.
func (s *TodoService) CompletionRate(ctx context.Context, classroomID string, studentNumber int) (float64, error) {
	session := domain.StudentSession{ClassroomID: classroomID, StudentNumber: studentNumber}
	_, rate, err := s.ListForStudent(ctx, session)
	return rate, err
}
