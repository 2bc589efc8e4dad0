package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
	"github.com/mvclass/classroom-api/internal/core/session"
)

// StudentHandler handles the cookie-session student surface. Students hold
// no identity; everything routes through the session cookie.
type StudentHandler struct {
	joinService   ports.JoinService
	todoService   ports.TodoService
	noticeService ports.NoticeService
}

func NewStudentHandler(joinService ports.JoinService, todoService ports.TodoService, noticeService ports.NoticeService) *StudentHandler {
	return &StudentHandler{
		joinService:   joinService,
		todoService:   todoService,
		noticeService: noticeService,
	}
}

// sessionFromCookie reads and decodes the session cookie. A missing cookie
// and an undecodable cookie are the same no-session state.
func sessionFromCookie(c echo.Context) *domain.StudentSession {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return nil
	}
	return session.Decode(cookie.Value)
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Join handles POST /student/join.
func (h *StudentHandler) Join(c echo.Context) error {
	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess, err := h.joinService.Join(c.Request().Context(), req.ClassroomCode, req.StudentNumber, req.StudentName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidClassroomCode), errors.Is(err, domain.ErrInvalidJoin):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrClassroomNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		case errors.Is(err, domain.ErrSeatTaken):
			return c.JSON(http.StatusConflict, map[string]string{"error": "student number already taken"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.SetCookie(sessionCookie(session.Encode(*sess), int(h.joinService.SessionTTL().Seconds())))
	return c.JSON(http.StatusOK, joinResponse{Success: true, RedirectPath: domain.PathStudentDashboard})
}

// Leave handles POST /student/leave. Clearing the cookie succeeds even when
// the seat release fails; the reservation expires with its TTL anyway.
func (h *StudentHandler) Leave(c echo.Context) error {
	if sess := sessionFromCookie(c); sess != nil {
		_ = h.joinService.Leave(c.Request().Context(), *sess)
	}
	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, joinResponse{Success: true, RedirectPath: domain.PathStudentEnter})
}

// Session handles GET /student/session. A garbage cookie is reported the
// same as no cookie, never as an error.
func (h *StudentHandler) Session(c echo.Context) error {
	sess := sessionFromCookie(c)
	if sess == nil {
		return c.JSON(http.StatusOK, sessionResponse{Session: nil})
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: &sessionPayload{
		ClassroomID:   sess.ClassroomID,
		ClassroomCode: sess.ClassroomCode,
		StudentNumber: sess.StudentNumber,
		StudentName:   sess.StudentName,
	}})
}

// Todos handles GET /student/todos. The optional date query keeps only
// todos due on that day (YYYY-MM-DD).
func (h *StudentHandler) Todos(c echo.Context) error {
	sess := sessionFromCookie(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not in a classroom"})
	}

	todos, rate, err := h.todoService.ListForStudent(c.Request().Context(), *sess)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	var dueOn *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		}
		dueOn = &day
	}

	items := make([]studentTodoItem, 0, len(todos))
	for _, st := range todos {
		if dueOn != nil {
			if st.Todo.DueDate == nil {
				continue
			}
			y1, m1, d1 := st.Todo.DueDate.UTC().Date()
			y2, m2, d2 := dueOn.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		items = append(items, studentTodoItem{
			ID:          st.Todo.ID,
			Title:       st.Todo.Title,
			Description: st.Todo.Description,
			DueDate:     formatTimePtr(st.Todo.DueDate),
			Done:        st.Done,
			DoneAt:      formatTimePtr(st.DoneAt),
		})
	}

	return c.JSON(http.StatusOK, studentTodosResponse{Todos: items, CompletionRate: rate})
}

// SetTodoDone handles POST /student/todos/:id/done.
func (h *StudentHandler) SetTodoDone(c echo.Context) error {
	sess := sessionFromCookie(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not in a classroom"})
	}

	var req setDoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	err := h.todoService.SetDone(c.Request().Context(), *sess, c.Param("id"), req.Done)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTodoNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "todo not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Notices handles GET /student/notices.
func (h *StudentHandler) Notices(c echo.Context) error {
	sess := sessionFromCookie(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not in a classroom"})
	}

	notices, err := h.noticeService.ListForStudent(c.Request().Context(), *sess)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	items := make([]studentNoticeItem, 0, len(notices))
	for _, sn := range notices {
		items = append(items, studentNoticeItem{
			ID:        sn.Notice.ID,
			Title:     sn.Notice.Title,
			Body:      sn.Notice.Body,
			Pinned:    sn.Notice.Pinned,
			PublishAt: sn.Notice.PublishAt.UTC().Format(time.RFC3339),
			Read:      sn.Read,
			ReadAt:    formatTimePtr(sn.ReadAt),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"notices": items})
}

// MarkNoticeRead handles POST /student/notices/:id/read.
func (h *StudentHandler) MarkNoticeRead(c echo.Context) error {
	sess := sessionFromCookie(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not in a classroom"})
	}

	err := h.noticeService.MarkRead(c.Request().Context(), *sess, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoticeNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "notice not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
