package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error)
	loginFn   func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	requestFn func(ctx context.Context, email string) (string, error)
	confirmFn func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) SignupTeacher(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) LoginTeacher(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return s.requestFn(ctx, email)
}

func (s *stubAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return s.confirmFn(ctx, token, newPassword)
}

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (s *stubProfileRepo) Create(ctx context.Context, profile *domain.Profile) error { return nil }

func (s *stubProfileRepo) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *stubProfileRepo) UpdateRole(ctx context.Context, userID, role string) error { return nil }

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error) {
			if input.Email != "t@school.kr" || input.InviteCode != "5050" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.LoginResult{
				Token:        "token123",
				UserID:       "user-1",
				Role:         domain.RoleTeacher,
				RedirectPath: domain.PathTeacherDashboard,
				ProfileSaved: true,
			}, nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	body := `{"email":"t@school.kr","password":"password1","confirmPassword":"password1","inviteCode":"5050","acceptTerms":true,"acceptPrivacy":true}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/signup", body)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["redirectPath"] != domain.PathTeacherDashboard {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["message"] != nil {
		t.Fatalf("expected no warning message, got %v", resp["message"])
	}
}

func TestAuthHandler_Signup_PasswordMismatch(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	body := `{"email":"t@school.kr","password":"password1","confirmPassword":"different1","inviteCode":"5050","acceptTerms":true,"acceptPrivacy":true}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/signup", body)

	_ = h.Signup(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_InviteCodeInvalid(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidInviteCode
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	body := `{"email":"t@school.kr","password":"password1","confirmPassword":"password1","inviteCode":"0000","acceptTerms":true,"acceptPrivacy":true}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/signup", body)

	_ = h.Signup(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invite_code_invalid") {
		t.Fatalf("expected invite_code_invalid, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_EmailExists(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error) {
			return nil, domain.ErrEmailExists
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	body := `{"email":"t@school.kr","password":"password1","confirmPassword":"password1","inviteCode":"5050","acceptTerms":true,"acceptPrivacy":true}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/signup", body)

	_ = h.Signup(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:        "token123",
				UserID:       "user-1",
				Role:         domain.RoleTeacher,
				RedirectPath: domain.PathTeacherDashboard,
				ProfileSaved: true,
			}, nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/login", `{"email":"t@school.kr","password":"password1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login_BootstrapWarning(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:        "token123",
				Role:         domain.RoleTeacher,
				RedirectPath: domain.PathTeacherDashboard,
				ProfileSaved: false,
			}, nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/login", `{"email":"t@school.kr","password":"password1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["profileSaved"] != false {
		t.Fatalf("expected profileSaved false, got %v", resp["profileSaved"])
	}
	if msg, _ := resp["message"].(string); msg == "" {
		t.Fatalf("expected a warning message")
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"student on teacher entry", domain.ErrWrongRole, http.StatusForbidden, "invalid_role"},
		{"unknown stored role", domain.ErrInvalidRole, http.StatusForbidden, "role_not_found"},
		{"missing profile", domain.ErrProfileNotFound, http.StatusForbidden, "role_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
					return nil, tc.err
				},
			}
			h := NewAuthHandler(stub, &stubProfileRepo{})

			c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/login", `{"email":"t@school.kr","password":"password1"}`)

			_ = h.Login(c)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantCode) {
				t.Fatalf("expected %s in body, got %s", tc.wantCode, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_RequestReset_AlwaysOK(t *testing.T) {
	stub := &stubAuthService{
		requestFn: func(ctx context.Context, email string) (string, error) {
			return "", nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileRepo{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/teacher/reset-password", `{"email":"unknown@school.kr"}`)

	if err := h.RequestReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("expected ok response, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Me(t *testing.T) {
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{
		"user-1": {UserID: "user-1", Role: "teacher", DisplayName: "Kim"},
	}}
	h := NewAuthHandler(&stubAuthService{}, profiles)

	c, rec := newAuthTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "user-1")
	c.Set("email", "t@school.kr")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "user-1" || resp.Role != "teacher" || resp.DisplayName != "Kim" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubProfileRepo{})

	c, _ := newAuthTestContext(t, http.MethodGet, "/auth/me", "")

	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
