package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// AdminHandler handles operational corrections that used to be ad hoc
// scripts against the database.
type AdminHandler struct {
	bootstrapService ports.BootstrapService
}

func NewAdminHandler(bootstrapService ports.BootstrapService) *AdminHandler {
	return &AdminHandler{bootstrapService: bootstrapService}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student teacher admin"`
}

// SetRole handles POST /admin/users/:id/role. The change goes through the
// same service path the signup bootstrap uses, so repairs and first-time
// writes cannot drift apart.
func (h *AdminHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.bootstrapService.CorrectRole(c.Request().Context(), c.Param("id"), role); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
