package handler

type signupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	InviteCode      string `json:"inviteCode" validate:"required"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"required"`
	AcceptPrivacy   bool   `json:"acceptPrivacy" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// authResponse is the shared success shape for signup and login. Message is
// a soft warning when the classroom bootstrap did not complete; the client
// proceeds to the dashboard either way.
type authResponse struct {
	OK           bool   `json:"ok"`
	Token        string `json:"token,omitempty"`
	Role         string `json:"role,omitempty"`
	ProfileSaved bool   `json:"profileSaved"`
	Message      string `json:"message,omitempty"`
	RedirectPath string `json:"redirectPath,omitempty"`
}

type meResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
	SchoolID    string `json:"schoolId,omitempty"`
}
