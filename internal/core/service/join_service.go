package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/api/metrics"
	"github.com/mvclass/classroom-api/internal/core/classcode"
	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// JoinService validates student join requests and turns them into classroom
// memberships. Membership itself lives in the client cookie; the only
// server-side state is the seat reservation, which expires with the session.
type JoinService struct {
	classrooms ports.ClassroomRepository
	seats      ports.SeatRepository
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewJoinService(classrooms ports.ClassroomRepository, seats ports.SeatRepository, sessionTTL time.Duration, logger zerolog.Logger) *JoinService {
	if sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	return &JoinService{classrooms: classrooms, seats: seats, sessionTTL: sessionTTL, logger: logger}
}

// Join validates the input, resolves the classroom, and reserves the seat.
// All constraint violations are client errors; only store failures are
// server errors.
func (s *JoinService) Join(ctx context.Context, classroomCode string, studentNumber int, studentName string) (*domain.StudentSession, error) {
	code := classcode.Normalize(classroomCode)
	name := strings.TrimSpace(studentName)

	if !classcode.IsValid(code) {
		return nil, domain.ErrInvalidClassroomCode
	}
	if err := domain.ValidateJoin(studentNumber, name); err != nil {
		return nil, err
	}

	classroom, err := s.classrooms.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrClassroomNotFound) {
			metrics.JoinsTotal.WithLabelValues("classroom_not_found").Inc()
		}
		return nil, err
	}

	if err := s.seats.Reserve(ctx, classroom.ID, studentNumber, name, s.sessionTTL); err != nil {
		if errors.Is(err, domain.ErrSeatTaken) {
			metrics.JoinsTotal.WithLabelValues("seat_taken").Inc()
		}
		return nil, err
	}

	metrics.JoinsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("classroom_id", classroom.ID).Int("student_number", studentNumber).Msg("student joined")

	return &domain.StudentSession{
		ClassroomID:   classroom.ID,
		ClassroomCode: classroom.Code,
		StudentNumber: studentNumber,
		StudentName:   name,
	}, nil
}

// Leave releases the seat held by the session. A missing reservation is not
// an error; the cookie is cleared either way.
func (s *JoinService) Leave(ctx context.Context, session domain.StudentSession) error {
	if err := s.seats.Release(ctx, session.ClassroomID, session.StudentNumber); err != nil {
		s.logger.Warn().Err(err).Str("classroom_id", session.ClassroomID).Int("student_number", session.StudentNumber).Msg("seat release failed")
		return err
	}
	return nil
}

// SessionTTL is the cookie max-age the API layer applies.
func (s *JoinService) SessionTTL() time.Duration {
	return s.sessionTTL
}
