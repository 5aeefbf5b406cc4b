package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/mocks"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHasPermissionOwnerOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	orgID := uuid.New()
	org := &model.Organization{ID: orgID, OwnerID: ownerID}

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	svc := service.NewPermissionService(orgRepo)

	// The owner passes every role check without a membership lookup, even
	// with no member row at all.
	orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(4)

	for _, role := range []model.OrgRole{model.RoleGuest, model.RoleMember, model.RoleAdmin, model.RoleOwner} {
		ok, err := svc.HasPermission(context.Background(), orgID, ownerID, role)
		assert.NoError(t, err)
		assert.True(t, ok, "owner should hold %s", role)
	}
}

func TestHasPermissionRoleHierarchy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	ownerID := uuid.New()
	org := &model.Organization{ID: orgID, OwnerID: ownerID}

	cases := []struct {
		name     string
		held     model.OrgRole
		required model.OrgRole
		want     bool
	}{
		{"admin holds member", model.RoleAdmin, model.RoleMember, true},
		{"admin holds admin", model.RoleAdmin, model.RoleAdmin, true},
		{"admin lacks owner", model.RoleAdmin, model.RoleOwner, false},
		{"member holds guest", model.RoleMember, model.RoleGuest, true},
		{"member lacks admin", model.RoleMember, model.RoleAdmin, false},
		{"guest holds guest", model.RoleGuest, model.RoleGuest, true},
		{"guest lacks member", model.RoleGuest, model.RoleMember, false},
		{"unknown role holds nothing", model.OrgRole("superuser"), model.RoleGuest, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID := uuid.New()
			orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
			orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)
			orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
				OrganizationID: orgID,
				UserID:         userID,
				Role:           tc.held,
				Status:         model.MemberActive,
			}, nil)

			svc := service.NewPermissionService(orgRepo)
			ok, err := svc.HasPermission(context.Background(), orgID, userID, tc.required)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestHasPermissionDeniesInactiveMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	org := &model.Organization{ID: orgID, OwnerID: uuid.New()}

	for _, status := range []model.MemberStatus{model.MemberInvited, model.MemberRemoved} {
		userID := uuid.New()
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)
		orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleAdmin,
			Status:         status,
		}, nil)

		svc := service.NewPermissionService(orgRepo)
		ok, err := svc.HasPermission(context.Background(), orgID, userID, model.RoleGuest)
		assert.NoError(t, err)
		assert.False(t, ok, "%s member should be denied", status)
	}
}

func TestHasPermissionDeniesStranger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID, OwnerID: uuid.New()}, nil)
	orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)

	svc := service.NewPermissionService(orgRepo)
	ok, err := svc.HasPermission(context.Background(), orgID, userID, model.RoleGuest)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionMissingOrganizationDenies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()

	// A missing organization is not an error: the check falls through to
	// the membership lookup and denies.
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	gomock.InOrder(
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(nil, domain.ErrOrganizationNotFound),
		orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound),
	)

	svc := service.NewPermissionService(orgRepo)
	ok, err := svc.HasPermission(context.Background(), orgID, userID, model.RoleGuest)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRequireMapsDenialToForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID, OwnerID: uuid.New()}, nil)
	orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)

	svc := service.NewPermissionService(orgRepo)
	err := svc.Require(context.Background(), orgID, userID, model.RoleMember)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
