package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvclass/classroom-api/internal/api/metrics"
	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

const resetTokenTTL = 30 * time.Minute

// AuthService implements teacher signup, login, and password reset.
//
// Authentication success and bootstrap success are independent outcomes:
// a teacher whose classroom rows failed to materialize still gets a valid
// session, with the bootstrap deferred to the next login.
type AuthService struct {
	identities ports.IdentityRepository
	profiles   ports.ProfileRepository
	roles      ports.RoleService
	bootstrap  ports.BootstrapService
	jwtSecret  string
	inviteCode string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	identities ports.IdentityRepository,
	profiles ports.ProfileRepository,
	roles ports.RoleService,
	bootstrap ports.BootstrapService,
	jwtSecret, inviteCode string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		identities: identities,
		profiles:   profiles,
		roles:      roles,
		bootstrap:  bootstrap,
		jwtSecret:  jwtSecret,
		inviteCode: inviteCode,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// SignupTeacher creates the identity and teacher profile, then runs the
// classroom bootstrap. The invite code is a shared secret compared verbatim;
// a mismatch is a validation failure, not an authentication failure.
func (s *AuthService) SignupTeacher(ctx context.Context, input ports.SignupInput) (*ports.LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(input.InviteCode) != s.inviteCode {
		metrics.SignupsTotal.WithLabelValues("invite_code_invalid").Inc()
		return nil, domain.ErrInvalidInviteCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity, err := s.identities.Create(ctx, &domain.Identity{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			metrics.SignupsTotal.WithLabelValues("email_exists").Inc()
		}
		return nil, err
	}

	if err := s.profiles.Create(ctx, &domain.Profile{
		UserID: identity.ID,
		Role:   string(domain.RoleTeacher),
	}); err != nil {
		// The bootstrap corrects the role on the next step and on every
		// later login; signup does not fail over this.
		s.logger.Warn().Err(err).Str("user_id", identity.ID).Msg("signup: profile create failed")
	}

	result := s.bootstrap.EnsureTeacherAndClassroom(ctx, identity.ID, email)
	if !result.OK() {
		s.logger.Warn().Str("step", result.Step).Str("user_id", identity.ID).Msg("signup: bootstrap deferred to next login")
	}

	token, err := s.generateToken(identity.ID, email, domain.RoleTeacher)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{
		Token:        token,
		UserID:       identity.ID,
		Role:         domain.RoleTeacher,
		RedirectPath: domain.DashboardPath(domain.RoleTeacher),
		ProfileSaved: result.OK(),
	}, nil
}

// LoginTeacher authenticates against the teacher entry point. Students are
// rejected with ErrWrongRole since this surface is teacher-only, and a
// profile whose role cannot be resolved fails closed instead of defaulting.
func (s *AuthService) LoginTeacher(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	role, err := s.roles.ResolveByID(ctx, identity.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("role_not_found").Inc()
		return nil, err
	}
	if domain.IsStudentLike(role) {
		metrics.LoginsTotal.WithLabelValues("invalid_role").Inc()
		return nil, domain.ErrWrongRole
	}

	result := s.bootstrap.EnsureTeacherAndClassroom(ctx, identity.ID, email)
	if !result.OK() {
		s.logger.Warn().Str("step", result.Step).Str("user_id", identity.ID).Msg("login: bootstrap deferred to next login")
	}

	token, err := s.generateToken(identity.ID, email, role)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{
		Token:        token,
		UserID:       identity.ID,
		Role:         role,
		RedirectPath: domain.DashboardPath(role),
		ProfileSaved: result.OK(),
	}, nil
}

// RequestPasswordReset issues a short-lived reset token for teacher-like
// accounts. Unknown emails and student accounts get a nil error with an
// empty token so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return "", nil
		}
		return "", err
	}

	role, err := s.roles.ResolveByID(ctx, identity.ID)
	if err != nil || !domain.IsTeacherLike(role) {
		return "", nil
	}

	claims := jwt.MapClaims{
		"sub":     identity.ID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", identity.ID).Msg("password reset token issued")
	return token, nil
}

// ConfirmPasswordReset verifies a reset token and stores the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidCredentials
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return domain.ErrInvalidCredentials
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.identities.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

func (s *AuthService) generateToken(userID, email string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}
