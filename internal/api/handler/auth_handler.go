package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// bootstrapWarning is returned when authentication succeeded but the
// classroom setup behind it did not. The client still proceeds; setup
// retries on the next authentication event.
const bootstrapWarning = "signed in, but classroom setup is incomplete and will retry on your next sign-in"

// AuthHandler handles the teacher authentication surface.
type AuthHandler struct {
	authService ports.AuthService
	profiles    ports.ProfileRepository
}

func NewAuthHandler(authService ports.AuthService, profiles ports.ProfileRepository) *AuthHandler {
	return &AuthHandler{authService: authService, profiles: profiles}
}

// Signup handles POST /auth/teacher/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.authService.SignupTeacher(c.Request().Context(), ports.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInviteCode):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invite_code_invalid"})
		case errors.Is(err, domain.ErrEmailExists):
			return c.JSON(http.StatusConflict, map[string]string{"error": "email_exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, loginToResponse(result))
}

// Login handles POST /auth/teacher/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.authService.LoginTeacher(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_credentials"})
		case errors.Is(err, domain.ErrWrongRole):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "invalid_role"})
		case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrProfileNotFound):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "role_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, loginToResponse(result))
}

// RequestReset handles POST /auth/teacher/reset-password. The response is
// identical for known and unknown emails.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if _, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// ConfirmReset handles POST /auth/teacher/reset-password/confirm.
func (h *AuthHandler) ConfirmReset(c echo.Context) error {
	var req resetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.authService.ConfirmPasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, email, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.FindByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, meResponse{
		ID:          userID,
		Email:       email,
		Role:        profile.Role,
		DisplayName: profile.DisplayName,
		SchoolID:    profile.SchoolID,
	})
}

func loginToResponse(result *ports.LoginResult) authResponse {
	resp := authResponse{
		OK:           true,
		Token:        result.Token,
		Role:         string(result.Role),
		ProfileSaved: result.ProfileSaved,
		RedirectPath: result.RedirectPath,
	}
	if !result.ProfileSaved {
		resp.Message = bootstrapWarning
	}
	return resp
}
