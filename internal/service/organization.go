// internal/service/organization.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dangerclosesec/atrium/internal/config"
	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/email"
	"github.com/dangerclosesec/atrium/internal/email/mailer"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type OrganizationService struct {
	orgRepo      repository.OrganizationRepositoryIface
	invRepo      repository.InvitationRepositoryIface
	userRepo     repository.UserRepositoryIface
	perms        *PermissionService
	emailService *email.Service
	config       *config.Config
	validate     *validator.Validate
}

func NewOrganizationService(
	orgRepo repository.OrganizationRepositoryIface,
	invRepo repository.InvitationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	perms *PermissionService,
	emailService *email.Service,
	config *config.Config,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:      orgRepo,
		invRepo:      invRepo,
		userRepo:     userRepo,
		perms:        perms,
		emailService: emailService,
		config:       config,
		validate:     validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name     string                 `json:"name" validate:"required"`
	Slug     string                 `json:"slug"`
	Settings map[string]interface{} `json:"settings"`
}

// CreateOrganization creates the organization and an active owner member
// row for the creator. Ownership itself lives on the organization and is
// never changed through membership APIs.
func (s *OrganizationService) CreateOrganization(ctx context.Context, ownerID uuid.UUID, input CreateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", domain.ErrInvalidInput)
	}

	org := &model.Organization{
		Name:     input.Name,
		Slug:     slug,
		OwnerID:  ownerID,
		Settings: input.Settings,
		IsActive: true,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	member := &model.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         ownerID,
		Role:           model.RoleOwner,
		Status:         model.MemberActive,
		JoinedAt:       time.Now().UTC(),
	}
	if err := s.orgRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	return org, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.Organization, error) {
	if err := s.perms.Require(ctx, orgID, userID, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.orgRepo.FindByID(ctx, orgID)
}

func (s *OrganizationService) ListOrganizations(ctx context.Context, userID uuid.UUID) ([]model.Organization, error) {
	return s.orgRepo.FindByUser(ctx, userID)
}

type UpdateOrganizationInput struct {
	Name     *string                `json:"name"`
	Settings map[string]interface{} `json:"settings"`
	IsActive *bool                  `json:"is_active"`
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, userID, orgID uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	if err := s.perms.Require(ctx, orgID, userID, model.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		org.Name = name
	}
	if input.Settings != nil {
		org.Settings = input.Settings
	}
	if input.IsActive != nil {
		org.IsActive = *input.IsActive
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, userID, orgID uuid.UUID) error {
	if err := s.perms.Require(ctx, orgID, userID, model.RoleOwner); err != nil {
		return err
	}
	return s.orgRepo.Delete(ctx, orgID)
}

func (s *OrganizationService) ListMembers(ctx context.Context, userID, orgID uuid.UUID) ([]*model.OrganizationMember, error) {
	if err := s.perms.Require(ctx, orgID, userID, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.orgRepo.ListMembers(ctx, orgID)
}

// UpdateMemberRole changes a member's role. The owner role is assigned at
// creation only; granting it here is rejected, and the organization owner's
// implicit privilege is untouchable regardless of their member row.
func (s *OrganizationService) UpdateMemberRole(ctx context.Context, callerID, orgID, memberUserID uuid.UUID, role model.OrgRole) (*model.OrganizationMember, error) {
	if role == model.RoleOwner || !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRole, role)
	}

	if err := s.perms.Require(ctx, orgID, callerID, model.RoleAdmin); err != nil {
		return nil, err
	}

	member, err := s.orgRepo.FindMember(ctx, orgID, memberUserID)
	if err != nil {
		return nil, err
	}

	member.Role = role
	if err := s.orgRepo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// RemoveMember marks the member removed. The row is kept so a later
// re-invite restores history; a removed member is denied exactly like a
// stranger. The organization owner cannot be removed.
func (s *OrganizationService) RemoveMember(ctx context.Context, callerID, orgID, memberUserID uuid.UUID) error {
	if err := s.perms.Require(ctx, orgID, callerID, model.RoleAdmin); err != nil {
		return err
	}

	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID == memberUserID {
		return domain.ErrForbidden
	}

	member, err := s.orgRepo.FindMember(ctx, orgID, memberUserID)
	if err != nil {
		return err
	}

	member.Status = model.MemberRemoved
	return s.orgRepo.UpdateMember(ctx, member)
}

type InviteMemberInput struct {
	Email string        `json:"email" validate:"required,email"`
	Role  model.OrgRole `json:"role" validate:"required"`
}

// InviteMember creates a pending invitation and emails the invitee. At most
// one pending invitation may exist per (organization, email); a stale
// pending invitation discovered here is lazily expired and replaced. The
// email send is fire-and-forget.
func (s *OrganizationService) InviteMember(ctx context.Context, callerID, orgID uuid.UUID, input InviteMemberInput) (*model.OrganizationInvitation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.Role == model.RoleOwner || !model.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRole, input.Role)
	}

	if err := s.perms.Require(ctx, orgID, callerID, model.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing, err := s.invRepo.FindPending(ctx, orgID, input.Email)
	if err != nil && !errors.Is(err, domain.ErrInvitationNotFound) {
		return nil, err
	}
	if existing != nil {
		if !existing.Expired(now) {
			return nil, domain.ErrInvitationPending
		}
		existing.Status = model.InvitationExpired
		if err := s.invRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	inv := &model.OrganizationInvitation{
		OrganizationID: orgID,
		Email:          input.Email,
		Role:           input.Role,
		InvitedByID:    callerID,
		Token:          token,
		Status:         model.InvitationPending,
		ExpiresAt:      now.Add(model.InvitationTTL),
	}

	if err := s.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.sendInvitationEmail(ctx, org, inv, callerID)

	return inv, nil
}

func (s *OrganizationService) ListInvitations(ctx context.Context, callerID, orgID uuid.UUID) ([]*model.OrganizationInvitation, error) {
	if err := s.perms.Require(ctx, orgID, callerID, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.invRepo.ListByOrganization(ctx, orgID)
}

func (s *OrganizationService) CancelInvitation(ctx context.Context, callerID, orgID, invID uuid.UUID) error {
	if err := s.perms.Require(ctx, orgID, callerID, model.RoleAdmin); err != nil {
		return err
	}

	inv, err := s.invRepo.FindByID(ctx, invID)
	if err != nil {
		return err
	}
	if inv.OrganizationID != orgID {
		return domain.ErrInvitationNotFound
	}
	if inv.Status != model.InvitationPending {
		return domain.ErrInvitationClosed
	}

	inv.Status = model.InvitationCancelled
	return s.invRepo.Update(ctx, inv)
}

// AcceptInvitation redeems an invitation token for the authenticated user.
// Expiry is applied lazily here: a pending-but-stale invitation flips to
// expired on this access, and the acceptance fails.
func (s *OrganizationService) AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*model.OrganizationMember, error) {
	inv, err := s.invRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != model.InvitationPending {
		return nil, domain.ErrInvitationClosed
	}

	now := time.Now().UTC()
	if inv.Expired(now) {
		inv.Status = model.InvitationExpired
		if err := s.invRepo.Update(ctx, inv); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvitationExpired
	}

	// One member row per (org, user): revive an existing row rather than
	// inserting a duplicate.
	member, err := s.orgRepo.FindMember(ctx, inv.OrganizationID, userID)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	if member == nil {
		member = &model.OrganizationMember{
			OrganizationID: inv.OrganizationID,
			UserID:         userID,
			Role:           inv.Role,
			Status:         model.MemberActive,
			JoinedAt:       now,
		}
		if err := s.orgRepo.CreateMember(ctx, member); err != nil {
			return nil, err
		}
	} else {
		member.Role = inv.Role
		member.Status = model.MemberActive
		member.JoinedAt = now
		if err := s.orgRepo.UpdateMember(ctx, member); err != nil {
			return nil, err
		}
	}

	inv.Status = model.InvitationAccepted
	if err := s.invRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *OrganizationService) DeclineInvitation(ctx context.Context, token string) error {
	inv, err := s.invRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if inv.Status != model.InvitationPending {
		return domain.ErrInvitationClosed
	}

	inv.Status = model.InvitationDeclined
	return s.invRepo.Update(ctx, inv)
}

// sendInvitationEmail delivers the invite out of band. A failed send is
// logged and swallowed; it must never fail the enclosing request.
func (s *OrganizationService) sendInvitationEmail(ctx context.Context, org *model.Organization, inv *model.OrganizationInvitation, inviterID uuid.UUID) {
	if s.emailService == nil {
		return
	}

	inviterName := "A teammate"
	if inviter, err := s.userRepo.FindByID(ctx, inviterID); err == nil {
		inviterName = strings.TrimSpace(inviter.FirstName + " " + inviter.LastName)
	}

	data := mailer.InvitationTemplateData{
		OrganizationName: org.Name,
		InviterName:      inviterName,
		Role:             string(inv.Role),
		AcceptLink:       fmt.Sprintf("%s/invitations/accept?token=%s", s.config.BaseURL, inv.Token),
		ExpiresAt:        inv.ExpiresAt.Format("January 2, 2006"),
	}

	go func() {
		if err := mailer.SendInvitationEmail(s.emailService, inv.Email, data); err != nil {
			slog.Warn("sending invitation email", "error", err, "invitation", inv.ID)
		}
	}()
}

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// generateInviteToken creates an unguessable acceptance token.
func generateInviteToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating invitation token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
