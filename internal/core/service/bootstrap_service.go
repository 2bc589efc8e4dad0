package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/api/metrics"
	"github.com/mvclass/classroom-api/internal/core/classcode"
	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// Bootstrap step tags. Callers surface these in soft warnings and metrics;
// they never escalate a failed step into a failed authentication.
const (
	StepUpsertTeacher   = "db_upsert_teacher"
	StepSelectClassroom = "db_select_classroom"
	StepInsertClassroom = "db_insert_classroom"
)

// BootstrapService guarantees a teacher's supporting rows exist: profile
// role corrected to teacher, teacher row present, classroom row present with
// a unique join code. Every step is idempotent; re-running after a partial
// failure is how the system self-heals.
type BootstrapService struct {
	profiles   ports.ProfileRepository
	teachers   ports.TeacherRepository
	classrooms ports.ClassroomRepository
	logger     zerolog.Logger
}

func NewBootstrapService(
	profiles ports.ProfileRepository,
	teachers ports.TeacherRepository,
	classrooms ports.ClassroomRepository,
	logger zerolog.Logger,
) *BootstrapService {
	return &BootstrapService{
		profiles:   profiles,
		teachers:   teachers,
		classrooms: classrooms,
		logger:     logger,
	}
}

// EnsureTeacherAndClassroom runs the bootstrap sequence for an
// authenticated teacher. Calling it twice in a row never creates a second
// classroom and never errors because of the first call's side effects.
func (s *BootstrapService) EnsureTeacherAndClassroom(ctx context.Context, userID, email string) ports.BootstrapResult {
	// Step 1: best-effort role correction. A signup trigger may have
	// defaulted the profile to student; fix it, but a failure here is
	// logged, not fatal; the role gate at login reports it more precisely.
	if err := s.profiles.UpdateRole(ctx, userID, string(domain.RoleTeacher)); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("bootstrap: profile role correction failed")
	}

	// Step 2: ensure the teacher row exists. Duplicate-key is success.
	if err := s.teachers.Ensure(ctx, userID, email); err != nil {
		return s.fail(StepUpsertTeacher, userID, err)
	}

	// Step 3: select-or-create the classroom.
	classroom, err := s.classrooms.FindByTeacher(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrClassroomNotFound) {
		return s.fail(StepSelectClassroom, userID, err)
	}
	if classroom != nil {
		return ports.BootstrapResult{Classroom: classroom}
	}

	code, err := classcode.GenerateUnique(ctx, s.classrooms.CodeExists, classcode.DefaultMaxAttempts)
	if err != nil {
		if errors.Is(err, classcode.ErrExhaustedAttempts) {
			metrics.CodeGenerationExhaustedTotal.Inc()
		}
		return s.fail(StepInsertClassroom, userID, err)
	}

	classroom = &domain.Classroom{TeacherID: userID, Code: classcode.Normalize(code)}
	if err := s.classrooms.Insert(ctx, classroom); err != nil {
		// Concurrent first login: someone else inserted between our select
		// and insert. The unique index on teacher_id turns that into a
		// re-select, not a second classroom.
		if errors.Is(err, domain.ErrClassroomExists) {
			existing, selErr := s.classrooms.FindByTeacher(ctx, userID)
			if selErr != nil {
				return s.fail(StepSelectClassroom, userID, selErr)
			}
			return ports.BootstrapResult{Classroom: existing}
		}
		return s.fail(StepInsertClassroom, userID, err)
	}

	s.logger.Info().Str("user_id", userID).Str("code", classroom.Code).Msg("bootstrap: classroom created")
	return ports.BootstrapResult{Classroom: classroom}
}

// CorrectRole is the administrative role-repair operation. It routes
// through the same profile store as the signup flow instead of ad hoc
// scripts, and for teachers it finishes the full bootstrap.
func (s *BootstrapService) CorrectRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return err
	}
	if err := s.profiles.UpdateRole(ctx, userID, string(role)); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Msg("role corrected")
	return nil
}

func (s *BootstrapService) fail(step, userID string, err error) ports.BootstrapResult {
	metrics.BootstrapFailuresTotal.WithLabelValues(step).Inc()
	s.logger.Error().Err(err).Str("step", step).Str("user_id", userID).Msg("bootstrap step failed")
	return ports.BootstrapResult{Step: step, Err: err}
}
