package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/atrium/internal/auth"
	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/mocks"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newUserService(t *testing.T, ctrl *gomock.Controller) (*service.UserService, *mocks.MockUserRepositoryIface, *mocks.MockOrganizationRepositoryIface) {
	t.Helper()

	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	orgSvc := service.NewOrganizationService(orgRepo, mocks.NewMockInvitationRepositoryIface(ctrl), userRepo, service.NewPermissionService(orgRepo), nil, nil)

	svc := service.NewUserService(
		userRepo,
		orgSvc,
		auth.NewPasswordHasher(),
		auth.NewTokenManager("test-secret", time.Hour),
		nil,
		nil,
	)
	return svc, userRepo, orgRepo
}

func TestSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("creates user with personal organization", func(t *testing.T) {
		svc, userRepo, orgRepo := newUserService(t, ctrl)

		tx := mocks.NewMockTransaction(ctrl)
		userID := uuid.New()

		gomock.InOrder(
			userRepo.EXPECT().Begin(gomock.Any()).Return(tx, nil),
			userRepo.EXPECT().FindByEmail(gomock.Any(), "new@example.com").Return(nil, domain.ErrUserNotFound),
			userRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, u *model.User) error {
					assert.Equal(t, model.StatusActive, u.Status)
					assert.NotEqual(t, "password123", u.PasswordHash)
					u.ID = userID
					return nil
				}),
			orgRepo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, org *model.Organization) error {
					assert.Equal(t, userID, org.OwnerID)
					assert.Equal(t, "Personal", org.Name)
					org.ID = uuid.New()
					return nil
				}),
			orgRepo.EXPECT().
				CreateMember(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, m *model.OrganizationMember) error {
					assert.Equal(t, model.RoleOwner, m.Role)
					assert.Equal(t, model.MemberActive, m.Status)
					return nil
				}),
			tx.EXPECT().Commit().Return(nil),
		)
		tx.EXPECT().Rollback().Return(nil).AnyTimes()

		out, err := svc.Signup(context.Background(), service.SignupInput{
			Email:     "new@example.com",
			FirstName: "Ada",
			Password:  "password123",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "new@example.com", out.User.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, userRepo, _ := newUserService(t, ctrl)

		tx := mocks.NewMockTransaction(ctrl)
		userRepo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		userRepo.EXPECT().FindByEmail(gomock.Any(), "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
		tx.EXPECT().Rollback().Return(nil).AnyTimes()

		_, err := svc.Signup(context.Background(), service.SignupInput{
			Email:     "taken@example.com",
			FirstName: "Ada",
			Password:  "password123",
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _, _ := newUserService(t, ctrl)

		_, err := svc.Signup(context.Background(), service.SignupInput{
			Email:     "ada@example.com",
			FirstName: "Ada",
			Password:  "short",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("correct horse battery")
	assert.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		svc, userRepo, _ := newUserService(t, ctrl)
		userRepo.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(&model.User{
			ID:           uuid.New(),
			Email:        "ada@example.com",
			PasswordHash: hash,
			Status:       model.StatusActive,
		}, nil)

		out, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "ada@example.com",
			Password: "correct horse battery",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, _ := newUserService(t, ctrl)
		userRepo.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(&model.User{
			Email:        "ada@example.com",
			PasswordHash: hash,
			Status:       model.StatusActive,
		}, nil)

		_, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email reads as bad credentials", func(t *testing.T) {
		svc, userRepo, _ := newUserService(t, ctrl)
		userRepo.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("suspended user cannot log in", func(t *testing.T) {
		svc, userRepo, _ := newUserService(t, ctrl)
		userRepo.EXPECT().FindByEmail(gomock.Any(), "frozen@example.com").Return(&model.User{
			Email:        "frozen@example.com",
			PasswordHash: hash,
			Status:       model.StatusSuspended,
		}, nil)

		_, err := svc.Authenticate(context.Background(), service.LoginInput{
			Email:    "frozen@example.com",
			Password: "correct horse battery",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
