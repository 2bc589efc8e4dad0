package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/ports"
)

// RoleService is the single source of truth for role lookups. It fails
// closed: a missing profile or an unrecognized stored value yields an error,
// never a default role.
type RoleService struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewRoleService(profiles ports.ProfileRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{profiles: profiles, logger: logger}
}

// ResolveByID looks up the profile for userID and validates its role
// against the closed set.
func (s *RoleService) ResolveByID(ctx context.Context, userID string) (domain.Role, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	role, err := domain.ParseRole(profile.Role)
	if err != nil {
		// Integrity problem, not user error. Log the stored value here; the
		// API layer keeps it out of the response body.
		s.logger.Error().Str("user_id", userID).Str("stored_role", profile.Role).Msg("profile carries role outside closed set")
		return "", err
	}
	return role, nil
}

// ResolveCurrent resolves the role of the identity carried by ctx.
func (s *RoleService) ResolveCurrent(ctx context.Context) (domain.Role, error) {
	userID, ok := domain.UserIDFromContext(ctx)
	if !ok {
		return "", domain.ErrNotAuthenticated
	}
	return s.ResolveByID(ctx, userID)
}
