package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

// In-memory fakes shared across the service tests. They behave like the
// mongo/redis repositories, duplicate-key mapping included.

type stubIdentityRepo struct {
	mu    sync.Mutex
	seq   int
	byID  map[string]*domain.Identity
	byEml map[string]string
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity), byEml: make(map[string]string)}
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEml[identity.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	r.seq++
	clone := *identity
	clone.ID = "user-" + strconv.Itoa(r.seq)
	r.byID[clone.ID] = &clone
	r.byEml[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEml[email]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *identity
	return &clone, nil
}

func (r *stubIdentityRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.byID[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	identity.PasswordHash = passwordHash
	return nil
}

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	// updateRoleErr forces UpdateRole failures to exercise the best-effort path.
	updateRoleErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *stubProfileRepo) UpdateRole(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateRoleErr != nil {
		return r.updateRoleErr
	}
	profile, ok := r.profiles[userID]
	if !ok {
		profile = &domain.Profile{UserID: userID}
		r.profiles[userID] = profile
	}
	profile.Role = role
	return nil
}

type stubTeacherRepo struct {
	mu      sync.Mutex
	rows    map[string]string
	ensures int
	err     error
}

func newStubTeacherRepo() *stubTeacherRepo {
	return &stubTeacherRepo{rows: make(map[string]string)}
}

func (r *stubTeacherRepo) Ensure(_ context.Context, userID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensures++
	if r.err != nil {
		return r.err
	}
	r.rows[userID] = email
	return nil
}

type stubClassroomRepo struct {
	mu        sync.Mutex
	seq       int
	byTeacher map[string]*domain.Classroom
	byCode    map[string]*domain.Classroom
	insertErr error
	selectErr error
	// selectMisses forces the first N FindByTeacher calls to report
	// not-found, to open the select/insert race window in tests.
	selectMisses int
}

func newStubClassroomRepo() *stubClassroomRepo {
	return &stubClassroomRepo{byTeacher: make(map[string]*domain.Classroom), byCode: make(map[string]*domain.Classroom)}
}

func (r *stubClassroomRepo) Insert(_ context.Context, classroom *domain.Classroom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.byTeacher[classroom.TeacherID]; exists {
		return domain.ErrClassroomExists
	}
	r.seq++
	if classroom.ID == "" {
		classroom.ID = fmt.Sprintf("classroom-%d", r.seq)
	}
	clone := *classroom
	r.byTeacher[clone.TeacherID] = &clone
	r.byCode[clone.Code] = &clone
	return nil
}

func (r *stubClassroomRepo) FindByTeacher(_ context.Context, teacherID string) (*domain.Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selectErr != nil {
		return nil, r.selectErr
	}
	if r.selectMisses > 0 {
		r.selectMisses--
		return nil, domain.ErrClassroomNotFound
	}
	classroom, ok := r.byTeacher[teacherID]
	if !ok {
		return nil, domain.ErrClassroomNotFound
	}
	clone := *classroom
	return &clone, nil
}

func (r *stubClassroomRepo) FindByCode(_ context.Context, code string) (*domain.Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	classroom, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrClassroomNotFound
	}
	clone := *classroom
	return &clone, nil
}

func (r *stubClassroomRepo) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byCode[code]
	return ok, nil
}

type seatKey struct {
	classroomID string
	number      int
}

type stubSeatRepo struct {
	mu    sync.Mutex
	seats map[seatKey]string
}

func newStubSeatRepo() *stubSeatRepo {
	return &stubSeatRepo{seats: make(map[seatKey]string)}
}

func (r *stubSeatRepo) Reserve(_ context.Context, classroomID string, studentNumber int, studentName string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := seatKey{classroomID, studentNumber}
	if _, taken := r.seats[key]; taken {
		return domain.ErrSeatTaken
	}
	r.seats[key] = studentName
	return nil
}

func (r *stubSeatRepo) Release(_ context.Context, classroomID string, studentNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seats, seatKey{classroomID, studentNumber})
	return nil
}

func (r *stubSeatRepo) List(_ context.Context, classroomID string) ([]domain.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Seat
	for key, name := range r.seats {
		if key.classroomID == classroomID {
			out = append(out, domain.Seat{StudentNumber: key.number, StudentName: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentNumber < out[j].StudentNumber })
	return out, nil
}

type statusKey struct {
	todoID string
	number int
}

type stubTodoRepo struct {
	mu       sync.Mutex
	todos    map[string]*domain.Todo
	order    []string
	statuses map[statusKey]*domain.TodoStatus
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[string]*domain.Todo), statuses: make(map[statusKey]*domain.TodoStatus)}
}

func (r *stubTodoRepo) Insert(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *todo
	r.todos[todo.ID] = &clone
	r.order = append(r.order, todo.ID)
	return nil
}

func (r *stubTodoRepo) Get(_ context.Context, id string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := *todo
	return &clone, nil
}

func (r *stubTodoRepo) ListByClassroom(_ context.Context, classroomID string) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Todo
	for _, id := range r.order {
		if r.todos[id].ClassroomID == classroomID {
			out = append(out, *r.todos[id])
		}
	}
	return out, nil
}

func (r *stubTodoRepo) SetStatus(_ context.Context, status *domain.TodoStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *status
	r.statuses[statusKey{status.TodoID, status.StudentNumber}] = &clone
	return nil
}

func (r *stubTodoRepo) StatusesFor(_ context.Context, classroomID string, studentNumber int) (map[string]domain.TodoStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.TodoStatus)
	for key, status := range r.statuses {
		if key.number == studentNumber && status.ClassroomID == classroomID {
			out[key.todoID] = *status
		}
	}
	return out, nil
}

type readKey struct {
	noticeID string
	number   int
}

type stubNoticeRepo struct {
	mu      sync.Mutex
	notices map[string]*domain.Notice
	order   []string
	reads   map[readKey]time.Time
}

func newStubNoticeRepo() *stubNoticeRepo {
	return &stubNoticeRepo{notices: make(map[string]*domain.Notice), reads: make(map[readKey]time.Time)}
}

func (r *stubNoticeRepo) Insert(_ context.Context, notice *domain.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *notice
	r.notices[notice.ID] = &clone
	r.order = append(r.order, notice.ID)
	return nil
}

func (r *stubNoticeRepo) Get(_ context.Context, id string) (*domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notice, ok := r.notices[id]
	if !ok {
		return nil, domain.ErrNoticeNotFound
	}
	clone := *notice
	return &clone, nil
}

func (r *stubNoticeRepo) ListPublished(_ context.Context, classroomID string, now time.Time) ([]domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notice
	for _, id := range r.order {
		notice := r.notices[id]
		if notice.ClassroomID == classroomID && !notice.PublishAt.After(now) {
			out = append(out, *notice)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].PublishAt.After(out[j].PublishAt)
	})
	return out, nil
}

func (r *stubNoticeRepo) ListByClassroom(_ context.Context, classroomID string) ([]domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notice
	for _, id := range r.order {
		if r.notices[id].ClassroomID == classroomID {
			out = append(out, *r.notices[id])
		}
	}
	return out, nil
}

func (r *stubNoticeRepo) MarkRead(_ context.Context, read *domain.NoticeRead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := readKey{read.NoticeID, read.StudentNumber}
	if _, ok := r.reads[key]; !ok {
		r.reads[key] = read.ReadAt
	}
	return nil
}

func (r *stubNoticeRepo) ReadsFor(_ context.Context, classroomID string, studentNumber int) (map[string]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Time)
	for key, readAt := range r.reads {
		if key.number != studentNumber {
			continue
		}
		if notice, ok := r.notices[key.noticeID]; ok && notice.ClassroomID == classroomID {
			out[key.noticeID] = readAt
		}
	}
	return out, nil
}
