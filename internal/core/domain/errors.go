package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrEmailExists        = errors.New("email already registered")
	ErrIdentityNotFound   = errors.New("account not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWrongRole          = errors.New("wrong role for this entry point")
	ErrForbidden          = errors.New("access forbidden")

	ErrInvalidClassroomCode = errors.New("classroom code format is invalid")
	ErrInvalidJoin          = errors.New("invalid join request")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrClassroomExists      = errors.New("classroom already exists")
	ErrSeatTaken            = errors.New("student number already taken")

	ErrTodoNotFound   = errors.New("todo not found")
	ErrNoticeNotFound = errors.New("notice not found")
)
