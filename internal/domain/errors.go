// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooWeak    = errors.New("password too weak")
	ErrUnauthorized       = errors.New("unauthorized")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSlugAlreadyExists    = errors.New("slug already exists")
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberAlreadyExists  = errors.New("member already exists")
	ErrInvalidRole          = errors.New("invalid role")

	// Invitation-related errors
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationPending  = errors.New("an invitation is already pending for this email")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrInvitationClosed   = errors.New("invitation is no longer open")

	// Agent and conversation errors
	ErrAgentNotFound        = errors.New("agent not found")
	ErrAgentInactive        = errors.New("agent is inactive")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")

	// Project-related errors
	ErrProjectNotFound   = errors.New("project not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrTimeEntryNotFound = errors.New("time entry not found")

	// Upstream capability errors
	ErrUpstreamFailure = errors.New("upstream capability failure")
)
