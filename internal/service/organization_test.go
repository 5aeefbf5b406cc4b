package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/mocks"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// newOrgService wires an OrganizationService with no email delivery; invite
// tests only care about the persistence side effects.
func newOrgService(orgRepo *mocks.MockOrganizationRepositoryIface, invRepo *mocks.MockInvitationRepositoryIface, userRepo *mocks.MockUserRepositoryIface) *service.OrganizationService {
	return service.NewOrganizationService(orgRepo, invRepo, userRepo, service.NewPermissionService(orgRepo), nil, nil)
}

func TestInviteMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	ownerID := uuid.New()
	org := &model.Organization{ID: orgID, OwnerID: ownerID}

	t.Run("creates a pending invitation", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		// Once through the permission check, once in the service body.
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(2)
		invRepo.EXPECT().FindPending(gomock.Any(), orgID, "new@example.com").Return(nil, domain.ErrInvitationNotFound)
		invRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *model.OrganizationInvitation) error {
				assert.Equal(t, model.InvitationPending, inv.Status)
				assert.Equal(t, model.RoleMember, inv.Role)
				assert.Equal(t, ownerID, inv.InvitedByID)
				assert.NotEmpty(t, inv.Token)
				assert.WithinDuration(t, time.Now().UTC().Add(model.InvitationTTL), inv.ExpiresAt, time.Minute)
				return nil
			})

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		inv, err := svc.InviteMember(context.Background(), ownerID, orgID, service.InviteMemberInput{
			Email: "new@example.com",
			Role:  model.RoleMember,
		})
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", inv.Email)
	})

	t.Run("rejects duplicate pending invitation", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(2)
		invRepo.EXPECT().FindPending(gomock.Any(), orgID, "dup@example.com").Return(&model.OrganizationInvitation{
			OrganizationID: orgID,
			Email:          "dup@example.com",
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().UTC().Add(24 * time.Hour),
		}, nil)

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		_, err := svc.InviteMember(context.Background(), ownerID, orgID, service.InviteMemberInput{
			Email: "dup@example.com",
			Role:  model.RoleMember,
		})
		assert.ErrorIs(t, err, domain.ErrInvitationPending)
	})

	t.Run("expires a stale pending invitation and replaces it", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		stale := &model.OrganizationInvitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Email:          "stale@example.com",
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().UTC().Add(-time.Hour),
		}

		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(2)
		gomock.InOrder(
			invRepo.EXPECT().FindPending(gomock.Any(), orgID, "stale@example.com").Return(stale, nil),
			invRepo.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv *model.OrganizationInvitation) error {
					assert.Equal(t, model.InvitationExpired, inv.Status)
					return nil
				}),
			invRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv *model.OrganizationInvitation) error {
					assert.Equal(t, model.InvitationPending, inv.Status)
					assert.NotEqual(t, stale.Token, inv.Token)
					return nil
				}),
		)

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		_, err := svc.InviteMember(context.Background(), ownerID, orgID, service.InviteMemberInput{
			Email: "stale@example.com",
			Role:  model.RoleAdmin,
		})
		assert.NoError(t, err)
	})

	t.Run("owner role cannot be granted by invitation", func(t *testing.T) {
		svc := newOrgService(
			mocks.NewMockOrganizationRepositoryIface(ctrl),
			mocks.NewMockInvitationRepositoryIface(ctrl),
			mocks.NewMockUserRepositoryIface(ctrl),
		)
		_, err := svc.InviteMember(context.Background(), ownerID, orgID, service.InviteMemberInput{
			Email: "boss@example.com",
			Role:  model.RoleOwner,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("joins a new member as active", func(t *testing.T) {
		userID := uuid.New()
		inv := &model.OrganizationInvitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Email:          "join@example.com",
			Role:           model.RoleMember,
			Token:          "tok-join",
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().UTC().Add(24 * time.Hour),
		}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		gomock.InOrder(
			invRepo.EXPECT().FindByToken(gomock.Any(), "tok-join").Return(inv, nil),
			orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound),
			orgRepo.EXPECT().
				CreateMember(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, m *model.OrganizationMember) error {
					assert.Equal(t, model.MemberActive, m.Status)
					assert.Equal(t, model.RoleMember, m.Role)
					assert.Equal(t, userID, m.UserID)
					return nil
				}),
			invRepo.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, got *model.OrganizationInvitation) error {
					assert.Equal(t, model.InvitationAccepted, got.Status)
					return nil
				}),
		)

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		member, err := svc.AcceptInvitation(context.Background(), userID, "tok-join")
		assert.NoError(t, err)
		assert.Equal(t, model.MemberActive, member.Status)
	})

	t.Run("revives a removed member instead of duplicating", func(t *testing.T) {
		userID := uuid.New()
		inv := &model.OrganizationInvitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Role:           model.RoleAdmin,
			Token:          "tok-revive",
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().UTC().Add(24 * time.Hour),
		}
		removed := &model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleMember,
			Status:         model.MemberRemoved,
		}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		gomock.InOrder(
			invRepo.EXPECT().FindByToken(gomock.Any(), "tok-revive").Return(inv, nil),
			orgRepo.EXPECT().FindMember(gomock.Any(), orgID, userID).Return(removed, nil),
			orgRepo.EXPECT().
				UpdateMember(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, m *model.OrganizationMember) error {
					assert.Equal(t, model.MemberActive, m.Status)
					assert.Equal(t, model.RoleAdmin, m.Role)
					return nil
				}),
			invRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
		)

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		member, err := svc.AcceptInvitation(context.Background(), userID, "tok-revive")
		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, member.Role)
	})

	t.Run("stale invitation expires on access", func(t *testing.T) {
		inv := &model.OrganizationInvitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Token:          "tok-stale",
			Status:         model.InvitationPending,
			ExpiresAt:      time.Now().UTC().Add(-time.Hour),
		}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)

		gomock.InOrder(
			invRepo.EXPECT().FindByToken(gomock.Any(), "tok-stale").Return(inv, nil),
			invRepo.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, got *model.OrganizationInvitation) error {
					assert.Equal(t, model.InvitationExpired, got.Status)
					return nil
				}),
		)

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		_, err := svc.AcceptInvitation(context.Background(), uuid.New(), "tok-stale")
		assert.ErrorIs(t, err, domain.ErrInvitationExpired)
	})

	t.Run("closed invitation cannot be accepted", func(t *testing.T) {
		inv := &model.OrganizationInvitation{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Token:          "tok-done",
			Status:         model.InvitationAccepted,
			ExpiresAt:      time.Now().UTC().Add(24 * time.Hour),
		}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)
		invRepo.EXPECT().FindByToken(gomock.Any(), "tok-done").Return(inv, nil)

		svc := newOrgService(orgRepo, invRepo, mocks.NewMockUserRepositoryIface(ctrl))
		_, err := svc.AcceptInvitation(context.Background(), uuid.New(), "tok-done")
		assert.ErrorIs(t, err, domain.ErrInvitationClosed)
	})
}

func TestDeclineInvitation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := &model.OrganizationInvitation{
		ID:        uuid.New(),
		Token:     "tok-no",
		Status:    model.InvitationPending,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}

	invRepo := mocks.NewMockInvitationRepositoryIface(ctrl)
	gomock.InOrder(
		invRepo.EXPECT().FindByToken(gomock.Any(), "tok-no").Return(inv, nil),
		invRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *model.OrganizationInvitation) error {
				assert.Equal(t, model.InvitationDeclined, got.Status)
				return nil
			}),
	)

	svc := newOrgService(mocks.NewMockOrganizationRepositoryIface(ctrl), invRepo, mocks.NewMockUserRepositoryIface(ctrl))
	assert.NoError(t, svc.DeclineInvitation(context.Background(), "tok-no"))
}
