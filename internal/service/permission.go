// internal/service/permission.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/repository"
	"github.com/google/uuid"
)

// PermissionService decides whether a user may act within an organization.
// Every check is a fresh point-in-time read; there is no caching, so role
// changes take effect on the very next request.
type PermissionService struct {
	orgRepo repository.OrganizationRepositoryIface
}

func NewPermissionService(orgRepo repository.OrganizationRepositoryIface) *PermissionService {
	return &PermissionService{orgRepo: orgRepo}
}

// HasPermission reports whether userID holds at least requiredRole in the
// organization. The organization owner is granted unconditionally, whatever
// the membership table says: an owner can never be locked out by a missing
// or demoted member row.
//
// A missing organization is not an error; the check falls through to the
// membership lookup and denies, so callers cannot distinguish "no such org"
// from "no access" without a separate existence check.
func (s *PermissionService) HasPermission(ctx context.Context, orgID, userID uuid.UUID, requiredRole model.OrgRole) (bool, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil && !errors.Is(err, domain.ErrOrganizationNotFound) {
		return false, fmt.Errorf("loading organization: %w", err)
	}

	if org != nil && org.OwnerID == userID {
		return true, nil
	}

	member, err := s.orgRepo.FindMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading membership: %w", err)
	}

	// A removed or merely-invited member is no different from a stranger.
	if member.Status != model.MemberActive {
		return false, nil
	}

	return model.RoleLevel(member.Role) >= model.RoleLevel(requiredRole), nil
}

// Require is HasPermission folded into the error taxonomy: denied checks
// come back as domain.ErrForbidden for handlers to map onto 403.
func (s *PermissionService) Require(ctx context.Context, orgID, userID uuid.UUID, requiredRole model.OrgRole) error {
	ok, err := s.HasPermission(ctx, orgID, userID, requiredRole)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
