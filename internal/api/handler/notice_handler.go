package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// NoticeHandler handles the teacher side of classroom announcements.
type NoticeHandler struct {
	noticeService ports.NoticeService
}

func NewNoticeHandler(noticeService ports.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

type createNoticeRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=100"`
	Body      string `json:"body" validate:"max=2000"`
	Pinned    bool   `json:"pinned"`
	PublishAt string `json:"publishAt"`
}

type noticeItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Pinned    bool   `json:"pinned"`
	PublishAt string `json:"publishAt"`
	CreatedAt string `json:"createdAt"`
}

// Create handles POST /teacher/notices.
func (h *NoticeHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createNoticeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var publishAt *time.Time
	if req.PublishAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.PublishAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "publishAt must be RFC3339"})
		}
		publishAt = &parsed
	}

	notice, err := h.noticeService.Create(c.Request().Context(), userID, ports.CreateNoticeInput{
		Title:     req.Title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		PublishAt: publishAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClassroomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, toNoticeItem(notice))
}

// List handles GET /teacher/notices.
func (h *NoticeHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notices, err := h.noticeService.ListForTeacher(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrClassroomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	items := make([]noticeItem, 0, len(notices))
	for i := range notices {
		items = append(items, toNoticeItem(&notices[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"notices": items})
}

func toNoticeItem(n *domain.Notice) noticeItem {
	return noticeItem{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Pinned:    n.Pinned,
		PublishAt: n.PublishAt.UTC().Format(time.RFC3339),
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
