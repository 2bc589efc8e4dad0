package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// ClassroomService is the teacher-facing view over their classroom and its
// occupied seats.
type ClassroomService struct {
	classrooms ports.ClassroomRepository
	seats      ports.SeatRepository
	bootstrap  ports.BootstrapService
	logger     zerolog.Logger
}

func NewClassroomService(classrooms ports.ClassroomRepository, seats ports.SeatRepository, bootstrap ports.BootstrapService, logger zerolog.Logger) *ClassroomService {
	return &ClassroomService{classrooms: classrooms, seats: seats, bootstrap: bootstrap, logger: logger}
}

// ClassroomFor returns the teacher's classroom. A missing classroom means an
// earlier bootstrap was deferred, so re-run it here; that retry is the
// self-healing path for partial bootstrap failures.
func (s *ClassroomService) ClassroomFor(ctx context.Context, teacherID, email string) (*domain.Classroom, error) {
	classroom, err := s.classrooms.FindByTeacher(ctx, teacherID)
	if err == nil {
		return classroom, nil
	}
	if !errors.Is(err, domain.ErrClassroomNotFound) {
		return nil, err
	}

	result := s.bootstrap.EnsureTeacherAndClassroom(ctx, teacherID, email)
	if !result.OK() {
		return nil, result.Err
	}
	return result.Classroom, nil
}

// Students lists the occupied seats of the teacher's classroom.
func (s *ClassroomService) Students(ctx context.Context, teacherID string) ([]domain.Seat, error) {
	classroom, err := s.classrooms.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.seats.List(ctx, classroom.ID)
}
