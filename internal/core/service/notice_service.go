package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// NoticeService handles classroom announcements and per-seat read marks.
type NoticeService struct {
	notices    ports.NoticeRepository
	classrooms ports.ClassroomRepository
	logger     zerolog.Logger
}

func NewNoticeService(notices ports.NoticeRepository, classrooms ports.ClassroomRepository, logger zerolog.Logger) *NoticeService {
	return &NoticeService{notices: notices, classrooms: classrooms, logger: logger}
}

// Create publishes a notice to the teacher's classroom. PublishAt defaults
// to now; a future value schedules the notice.
func (s *NoticeService) Create(ctx context.Context, teacherID string, input ports.CreateNoticeInput) (*domain.Notice, error) {
	classroom, err := s.classrooms.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	publishAt := now
	if input.PublishAt != nil {
		publishAt = input.PublishAt.UTC()
	}

	notice := &domain.Notice{
		ID:          uuid.NewString(),
		ClassroomID: classroom.ID,
		Title:       input.Title,
		Body:        input.Body,
		Pinned:      input.Pinned,
		PublishAt:   publishAt,
		CreatedAt:   now,
	}
	if err := s.notices.Insert(ctx, notice); err != nil {
		return nil, err
	}

	s.logger.Info().Str("notice_id", notice.ID).Str("classroom_id", classroom.ID).Msg("notice published")
	return notice, nil
}

// ListForTeacher returns every notice in the teacher's classroom, including
// unpublished ones.
func (s *NoticeService) ListForTeacher(ctx context.Context, teacherID string) ([]domain.Notice, error) {
	classroom, err := s.classrooms.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.notices.ListByClassroom(ctx, classroom.ID)
}

// ListForStudent returns published notices for the session's classroom with
// the seat's read flags. Ordering (pinned first, newest publish first) is
// the repository's contract.
func (s *NoticeService) ListForStudent(ctx context.Context, session domain.StudentSession) ([]ports.StudentNotice, error) {
	notices, err := s.notices.ListPublished(ctx, session.ClassroomID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	reads, err := s.notices.ReadsFor(ctx, session.ClassroomID, session.StudentNumber)
	if err != nil {
		return nil, err
	}

	out := make([]ports.StudentNotice, 0, len(notices))
	for _, notice := range notices {
		sn := ports.StudentNotice{Notice: notice}
		if readAt, ok := reads[notice.ID]; ok {
			at := readAt
			sn.Read = true
			sn.ReadAt = &at
		}
		out = append(out, sn)
	}
	return out, nil
}

// MarkRead records that the session seat read a notice. Marking twice is a
// no-op.
func (s *NoticeService) MarkRead(ctx context.Context, session domain.StudentSession, noticeID string) error {
	notice, err := s.notices.Get(ctx, noticeID)
	if err != nil {
		return err
	}
	if notice.ClassroomID != session.ClassroomID {
		return domain.ErrForbidden
	}

	return s.notices.MarkRead(ctx, &domain.NoticeRead{
		NoticeID:      noticeID,
		ClassroomID:   session.ClassroomID,
		StudentNumber: session.StudentNumber,
		ReadAt:        time.Now().UTC(),
	})
}
