package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

func TestRoleService_ResolveByID_ValidRoles(t *testing.T) {
	profiles := newStubProfileRepo()
	svc := NewRoleService(profiles, zerolog.Nop())

	for _, want := range []domain.Role{domain.RoleStudent, domain.RoleTeacher, domain.RoleAdmin} {
		_ = profiles.Create(context.Background(), &domain.Profile{UserID: "u-" + string(want), Role: string(want)})
		role, err := svc.ResolveByID(context.Background(), "u-"+string(want))
		if err != nil {
			t.Fatalf("ResolveByID(%s) error: %v", want, err)
		}
		if role != want {
			t.Fatalf("expected %s, got %s", want, role)
		}
	}
}

func TestRoleService_ResolveByID_UnrecognizedRole(t *testing.T) {
	profiles := newStubProfileRepo()
	_ = profiles.Create(context.Background(), &domain.Profile{UserID: "u1", Role: "guardian"})
	svc := NewRoleService(profiles, zerolog.Nop())

	role, err := svc.ResolveByID(context.Background(), "u1")
	if role != "" {
		t.Fatalf("expected empty role, got %q", role)
	}
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err.Error() != "invalid role: guardian" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestRoleService_ResolveByID_MissingProfile(t *testing.T) {
	svc := NewRoleService(newStubProfileRepo(), zerolog.Nop())

	_, err := svc.ResolveByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestRoleService_ResolveCurrent(t *testing.T) {
	profiles := newStubProfileRepo()
	_ = profiles.Create(context.Background(), &domain.Profile{UserID: "u1", Role: "teacher"})
	svc := NewRoleService(profiles, zerolog.Nop())

	if _, err := svc.ResolveCurrent(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated without identity, got %v", err)
	}

	ctx := domain.ContextWithUserID(context.Background(), "u1")
	role, err := svc.ResolveCurrent(ctx)
	if err != nil {
		t.Fatalf("ResolveCurrent error: %v", err)
	}
	if role != domain.RoleTeacher {
		t.Fatalf("expected teacher, got %s", role)
	}
}
