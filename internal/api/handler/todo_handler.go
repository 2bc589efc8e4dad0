package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// TodoHandler handles the teacher side of todo assignment.
type TodoHandler struct {
	todoService ports.TodoService
}

func NewTodoHandler(todoService ports.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

type createTodoRequest struct {
	Title          string `json:"title" validate:"required,min=1,max=100"`
	Description    string `json:"description" validate:"max=500"`
	DueDate        string `json:"dueDate"`
	StudentNumbers []int  `json:"studentNumbers" validate:"dive,gte=1,lte=30"`
}

type todoItem struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	DueDate        *string `json:"dueDate,omitempty"`
	StudentNumbers []int   `json:"studentNumbers,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// Create handles POST /teacher/todos.
func (h *TodoHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			day, dayErr := time.Parse("2006-01-02", req.DueDate)
			if dayErr != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "dueDate must be RFC3339 or YYYY-MM-DD"})
			}
			parsed = day
		}
		dueDate = &parsed
	}

	todo, err := h.todoService.Create(c.Request().Context(), userID, ports.CreateTodoInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        dueDate,
		StudentNumbers: req.StudentNumbers,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClassroomNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		case errors.Is(err, domain.ErrInvalidJoin):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, toTodoItem(todo))
}

// List handles GET /teacher/todos.
func (h *TodoHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListForTeacher(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrClassroomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	items := make([]todoItem, 0, len(todos))
	for i := range todos {
		items = append(items, toTodoItem(&todos[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"todos": items})
}

func toTodoItem(t *domain.Todo) todoItem {
	return todoItem{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		DueDate:        formatTimePtr(t.DueDate),
		StudentNumbers: t.StudentNumbers,
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
