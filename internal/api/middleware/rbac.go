package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

// RBAC enforces role-based access control over the role claim the Auth
// middleware injected. A missing or unknown role is forbidden; gating
// never falls back to a default role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, err := domain.ParseRole(raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// TeacherOnly gates a route to teacher-like roles (teacher or admin).
func TeacherOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleTeacher, domain.RoleAdmin)
}
