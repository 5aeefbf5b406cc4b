// internal/repository/invitation.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepositoryIface interface {
	Create(ctx context.Context, inv *model.OrganizationInvitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrganizationInvitation, error)
	FindByToken(ctx context.Context, token string) (*model.OrganizationInvitation, error)
	FindPending(ctx context.Context, orgID uuid.UUID, email string) (*model.OrganizationInvitation, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.OrganizationInvitation, error)
	Update(ctx context.Context, inv *model.OrganizationInvitation) error
}

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *model.OrganizationInvitation) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("creating invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.OrganizationInvitation, error) {
	var inv model.OrganizationInvitation
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("finding invitation: %w", err)
	}
	return &inv, nil
}

func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*model.OrganizationInvitation, error) {
	var inv model.OrganizationInvitation
	if err := r.db.WithContext(ctx).First(&inv, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("finding invitation by token: %w", err)
	}
	return &inv, nil
}

// FindPending returns the open invitation for (org, email), if any. The
// pending-uniqueness invariant is enforced at the service layer against
// this lookup.
func (r *InvitationRepository) FindPending(ctx context.Context, orgID uuid.UUID, email string) (*model.OrganizationInvitation, error) {
	var inv model.OrganizationInvitation
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND email = ? AND status = ?", orgID, email, model.InvitationPending).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("finding pending invitation: %w", err)
	}
	return &inv, nil
}

func (r *InvitationRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.OrganizationInvitation, error) {
	var invs []*model.OrganizationInvitation
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&invs).Error; err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invs, nil
}

func (r *InvitationRepository) Update(ctx context.Context, inv *model.OrganizationInvitation) error {
	if err := r.db.WithContext(ctx).Save(inv).Error; err != nil {
		return fmt.Errorf("updating invitation: %w", err)
	}
	return nil
}
