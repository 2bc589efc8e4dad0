package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// ClassroomHandler handles the teacher's view over their classroom.
type ClassroomHandler struct {
	classroomService ports.ClassroomService
	todoService      ports.TodoService
}

func NewClassroomHandler(classroomService ports.ClassroomService, todoService ports.TodoService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService, todoService: todoService}
}

type classroomResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	CreatedAt string `json:"createdAt"`
}

type studentRow struct {
	StudentNumber  int     `json:"studentNumber"`
	StudentName    string  `json:"studentName"`
	CompletionRate float64 `json:"completionRate"`
}

// Classroom handles GET /teacher/classroom. A missing classroom is repaired
// inside the service, so a 404 here means repair itself failed.
func (h *ClassroomHandler) Classroom(c echo.Context) error {
	userID, email, err := ctxClaims(c)
	if err != nil {
		return err
	}

	classroom, err := h.classroomService.ClassroomFor(c.Request().Context(), userID, email)
	if err != nil {
		if errors.Is(err, domain.ErrClassroomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, classroomResponse{
		ID:        classroom.ID,
		Code:      classroom.Code,
		CreatedAt: classroom.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Students handles GET /teacher/students. Completion rates are best effort;
// a rate that cannot be computed reports as zero rather than failing the
// roster.
func (h *ClassroomHandler) Students(c echo.Context) error {
	userID, email, err := ctxClaims(c)
	if err != nil {
		return err
	}

	classroom, err := h.classroomService.ClassroomFor(c.Request().Context(), userID, email)
	if err != nil {
		if errors.Is(err, domain.ErrClassroomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "classroom not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	seats, err := h.classroomService.Students(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	rows := make([]studentRow, 0, len(seats))
	for _, seat := range seats {
		rate, err := h.todoService.CompletionRate(c.Request().Context(), classroom.ID, seat.StudentNumber)
		if err != nil {
			rate = 0
		}
		rows = append(rows, studentRow{
			StudentNumber:  seat.StudentNumber,
			StudentName:    seat.StudentName,
			CompletionRate: rate,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"students": rows})
}
