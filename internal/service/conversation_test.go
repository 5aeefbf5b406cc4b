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

func personalScope(userID uuid.UUID) service.Scope {
	return service.Scope{UserID: userID}
}

func TestCreateConversationSetsProvisionalTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	agentID := uuid.New()
	agent := &model.Agent{ID: agentID, UserID: &userID, IsActive: true}

	convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
	agentRepo := mocks.NewMockAgentRepositoryIface(ctrl)

	agentRepo.EXPECT().FindByID(gomock.Any(), agentID).Return(agent, nil)
	convRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conv *model.Conversation, first *model.Message) error {
			assert.Equal(t, model.TitleProvisional, conv.TitleStatus)
			assert.Equal(t, model.TitleMethodAuto, conv.TitleMethod)
			assert.NotNil(t, conv.Title)
			assert.Equal(t, "Plan A Trip To Japan", *conv.Title)
			assert.NotNil(t, conv.UserID)
			assert.Equal(t, userID, *conv.UserID)
			assert.Equal(t, model.MessageRoleUser, first.Role)
			assert.Equal(t, "can you help me plan a trip to Japan", first.Content)
			return nil
		})

	svc := service.NewConversationService(convRepo, agentRepo, nil, nil, nil, nil)
	conv, err := svc.Create(context.Background(), personalScope(userID), service.CreateConversationInput{
		AgentID: agentID,
		Message: "can you help me plan a trip to Japan",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), conv.MessageCount)
}

func TestCreateConversationHidesUnusableAgents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	otherUser := uuid.New()

	cases := []struct {
		name  string
		agent *model.Agent
	}{
		{"inactive agent", &model.Agent{ID: uuid.New(), UserID: &userID, IsActive: false}},
		{"another user's agent", &model.Agent{ID: uuid.New(), UserID: &otherUser, IsActive: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
			agentRepo := mocks.NewMockAgentRepositoryIface(ctrl)
			agentRepo.EXPECT().FindByID(gomock.Any(), tc.agent.ID).Return(tc.agent, nil)

			svc := service.NewConversationService(convRepo, agentRepo, nil, nil, nil, nil)
			_, err := svc.Create(context.Background(), personalScope(userID), service.CreateConversationInput{
				AgentID: tc.agent.ID,
				Message: "hello there",
			})
			assert.ErrorIs(t, err, domain.ErrAgentNotFound)
		})
	}
}

func TestGenerateTitleSkipsCustomTitles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	convID := uuid.New()
	title := "My Trip Notes"
	conv := &model.Conversation{
		ID:          convID,
		UserID:      &userID,
		CreatedByID: userID,
		Title:       &title,
		TitleStatus: model.TitleCustom,
	}

	convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
	// No FirstMessages, no Update: custom titles are left alone entirely.
	convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil)

	svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), nil, nil, nil, nil)
	res, err := svc.GenerateTitle(context.Background(), personalScope(userID), convID)
	assert.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Equal(t, model.TitleCustom, res.Conversation.TitleStatus)
	assert.NotEmpty(t, res.Message)
}

func TestGenerateTitleFallsBackToHeuristic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	convID := uuid.New()
	title := "Plan A Trip To Japan"
	conv := &model.Conversation{
		ID:          convID,
		UserID:      &userID,
		CreatedByID: userID,
		Title:       &title,
		TitleStatus: model.TitleProvisional,
		TitleMethod: model.TitleMethodAuto,
	}
	msgs := []*model.Message{
		{ConversationID: convID, Role: model.MessageRoleUser, Content: "can you help me plan a trip to Japan"},
		{ConversationID: convID, Role: model.MessageRoleAssistant, Content: "Of course. When are you traveling?"},
	}

	convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
	gomock.InOrder(
		convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil),
		convRepo.EXPECT().FirstMessages(gomock.Any(), convID, 2).Return(msgs, nil),
		convRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *model.Conversation) error {
				assert.Equal(t, model.TitleFinal, c.TitleStatus)
				assert.Equal(t, model.TitleMethodAuto, c.TitleMethod)
				assert.Equal(t, "Plan A Trip To Japan", *c.Title)
				assert.NotNil(t, c.TitleAt)
				return nil
			}),
	)

	// No titler wired: the deterministic heuristic supplies the title.
	svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), nil, nil, nil, nil)
	res, err := svc.GenerateTitle(context.Background(), personalScope(userID), convID)
	assert.NoError(t, err)
	assert.True(t, res.Generated)
}

func TestGenerateTitleNeedsTwoMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	convID := uuid.New()
	conv := &model.Conversation{ID: convID, UserID: &userID, CreatedByID: userID, TitleStatus: model.TitleProvisional}

	convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
	convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil)
	convRepo.EXPECT().FirstMessages(gomock.Any(), convID, 2).Return([]*model.Message{
		{ConversationID: convID, Role: model.MessageRoleUser, Content: "hi"},
	}, nil)

	svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), nil, nil, nil, nil)
	res, err := svc.GenerateTitle(context.Background(), personalScope(userID), convID)
	assert.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Equal(t, model.TitleProvisional, res.Conversation.TitleStatus)
}

func TestRenameLocksTitleAsCustom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The rename action and the generic update endpoint carry different
	// methods; both end in the custom state.
	for _, method := range []model.TitleMethod{model.TitleMethodRenamed, model.TitleMethodManual} {
		t.Run(string(method), func(t *testing.T) {
			userID := uuid.New()
			convID := uuid.New()
			old := "Plan A Trip To Japan"
			conv := &model.Conversation{
				ID:          convID,
				UserID:      &userID,
				CreatedByID: userID,
				Title:       &old,
				TitleStatus: model.TitleFinal,
				TitleMethod: model.TitleMethodAuto,
			}

			convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
			convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil)
			convRepo.EXPECT().
				Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, c *model.Conversation) error {
					assert.Equal(t, model.TitleCustom, c.TitleStatus)
					assert.Equal(t, method, c.TitleMethod)
					assert.Equal(t, "Japan 2026", *c.Title)
					return nil
				})

			svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), nil, nil, nil, nil)
			got, err := svc.Rename(context.Background(), personalScope(userID), convID, "  Japan 2026  ", method)
			assert.NoError(t, err)
			assert.Equal(t, model.TitleCustom, got.TitleStatus)
		})
	}
}

func TestRenameRejectsEmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewConversationService(
		mocks.NewMockConversationRepositoryIface(ctrl),
		mocks.NewMockAgentRepositoryIface(ctrl),
		nil, nil, nil, nil,
	)
	_, err := svc.Rename(context.Background(), personalScope(uuid.New()), uuid.New(), "   ", model.TitleMethodRenamed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("creator deletes own conversation", func(t *testing.T) {
		userID := uuid.New()
		convID := uuid.New()
		conv := &model.Conversation{ID: convID, UserID: &userID, CreatedByID: userID}

		convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
		gomock.InOrder(
			convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil),
			convRepo.EXPECT().ListAttachments(gomock.Any(), convID).Return(nil, nil),
			convRepo.EXPECT().Delete(gomock.Any(), convID).Return(nil),
		)

		svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), nil, nil, nil, nil)
		assert.NoError(t, svc.Delete(context.Background(), personalScope(userID), convID))
	})

	t.Run("scope mismatch reads as not found", func(t *testing.T) {
		userID := uuid.New()
		otherUser := uuid.New()
		convID := uuid.New()
		conv := &model.Conversation{ID: convID, UserID: &otherUser, CreatedByID: otherUser}

		convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
		convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil)

		svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), nil, nil, nil, nil)
		err := svc.Delete(context.Background(), personalScope(userID), convID)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	})

	t.Run("plain member may not delete another member's conversation", func(t *testing.T) {
		orgID := uuid.New()
		memberID := uuid.New()
		creatorID := uuid.New()
		convID := uuid.New()
		conv := &model.Conversation{ID: convID, OrganizationID: &orgID, CreatedByID: creatorID}
		org := &model.Organization{ID: orgID, OwnerID: uuid.New()}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		member := &model.OrganizationMember{OrganizationID: orgID, UserID: memberID, Role: model.RoleMember, Status: model.MemberActive}
		// Passes the member-level scope check, fails the admin check.
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(2)
		orgRepo.EXPECT().FindMember(gomock.Any(), orgID, memberID).Return(member, nil).Times(2)

		convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
		convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil)

		perms := service.NewPermissionService(orgRepo)
		svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), perms, nil, nil, nil)
		scope := service.Scope{OrganizationID: &orgID, UserID: memberID}
		err := svc.Delete(context.Background(), scope, convID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("org admin may delete another member's conversation", func(t *testing.T) {
		orgID := uuid.New()
		adminID := uuid.New()
		creatorID := uuid.New()
		convID := uuid.New()
		conv := &model.Conversation{ID: convID, OrganizationID: &orgID, CreatedByID: creatorID}
		org := &model.Organization{ID: orgID, OwnerID: uuid.New()}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		admin := &model.OrganizationMember{OrganizationID: orgID, UserID: adminID, Role: model.RoleAdmin, Status: model.MemberActive}
		// Twice: once for the scope check at member level, once for the
		// admin check on deleting someone else's conversation.
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(2)
		orgRepo.EXPECT().FindMember(gomock.Any(), orgID, adminID).Return(admin, nil).Times(2)

		convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
		gomock.InOrder(
			convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil),
			convRepo.EXPECT().ListAttachments(gomock.Any(), convID).Return(nil, nil),
			convRepo.EXPECT().Delete(gomock.Any(), convID).Return(nil),
		)

		perms := service.NewPermissionService(orgRepo)
		svc := service.NewConversationService(convRepo, mocks.NewMockAgentRepositoryIface(ctrl), perms, nil, nil, nil)
		scope := service.Scope{OrganizationID: &orgID, UserID: adminID}
		assert.NoError(t, svc.Delete(context.Background(), scope, convID))
	})
}
