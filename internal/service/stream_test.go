package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/atrium/internal/agentgw"
	"github.com/dangerclosesec/atrium/internal/mocks"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// stubRunner replays a fixed event sequence, or fails to start.
type stubRunner struct {
	events   []agentgw.Event
	startErr error
}

func (r *stubRunner) ExecuteStream(ctx context.Context, agent *model.Agent, message string, history []*model.Message) (<-chan agentgw.Event, error) {
	if r.startErr != nil {
		return nil, r.startErr
	}
	ch := make(chan agentgw.Event, len(r.events))
	for _, ev := range r.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func streamFixtures(ctrl *gomock.Controller, userID uuid.UUID) (*mocks.MockConversationRepositoryIface, *mocks.MockAgentRepositoryIface, *model.Conversation) {
	convID := uuid.New()
	agentID := uuid.New()
	conv := &model.Conversation{ID: convID, UserID: &userID, CreatedByID: userID, AgentID: agentID}
	agent := &model.Agent{ID: agentID, UserID: &userID, IsActive: true}

	convRepo := mocks.NewMockConversationRepositoryIface(ctrl)
	agentRepo := mocks.NewMockAgentRepositoryIface(ctrl)
	convRepo.EXPECT().FindByID(gomock.Any(), convID).Return(conv, nil)
	agentRepo.EXPECT().FindByID(gomock.Any(), agentID).Return(agent, nil)
	convRepo.EXPECT().FirstMessages(gomock.Any(), convID, gomock.Any()).Return(nil, nil)

	return convRepo, agentRepo, conv
}

func TestStreamMessagePersistsEachChunk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	convRepo, agentRepo, conv := streamFixtures(ctrl, userID)

	// User message then assistant placeholder.
	convRepo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var persisted []string
	convRepo.EXPECT().
		UpdateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *model.Message) error {
			persisted = append(persisted, msg.Content)
			return nil
		}).
		Times(3)

	runner := &stubRunner{events: []agentgw.Event{
		{Type: agentgw.EventContent, Content: "Sure, "},
		{Type: agentgw.EventContent, Content: "here you go."},
		{Type: agentgw.EventComplete},
	}}

	var forwarded []agentgw.Event
	sink := func(ev agentgw.Event) error {
		forwarded = append(forwarded, ev)
		return nil
	}

	svc := service.NewConversationService(convRepo, agentRepo, nil, runner, nil, nil)
	assistant, err := svc.StreamMessage(context.Background(), personalScope(userID), conv.ID, service.AppendMessageInput{Content: "help"}, sink)
	assert.NoError(t, err)
	assert.Equal(t, "Sure, here you go.", assistant.Content)

	// Each chunk hits storage before it reaches the client, then the
	// complete event finalizes the row.
	assert.Equal(t, []string{"Sure, ", "Sure, here you go.", "Sure, here you go."}, persisted)
	assert.Len(t, forwarded, 3)
	assert.Equal(t, agentgw.EventComplete, forwarded[2].Type)
}

func TestStreamMessageStartFailureIsInBand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	convRepo, agentRepo, conv := streamFixtures(ctrl, userID)
	convRepo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var forwarded []agentgw.Event
	sink := func(ev agentgw.Event) error {
		forwarded = append(forwarded, ev)
		return nil
	}

	runner := &stubRunner{startErr: errors.New("gateway unreachable")}
	svc := service.NewConversationService(convRepo, agentRepo, nil, runner, nil, nil)

	assistant, err := svc.StreamMessage(context.Background(), personalScope(userID), conv.ID, service.AppendMessageInput{Content: "help"}, sink)
	assert.NoError(t, err)
	assert.Empty(t, assistant.Content)
	assert.Len(t, forwarded, 1)
	assert.Equal(t, agentgw.EventError, forwarded[0].Type)
}

func TestStreamMessageStopsWhenClientDisconnects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	convRepo, agentRepo, conv := streamFixtures(ctrl, userID)
	convRepo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	// Only the first chunk is persisted; the sink failure ends the run.
	convRepo.EXPECT().UpdateMessage(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	runner := &stubRunner{events: []agentgw.Event{
		{Type: agentgw.EventContent, Content: "partial"},
		{Type: agentgw.EventContent, Content: " never sent"},
		{Type: agentgw.EventComplete},
	}}

	sink := func(agentgw.Event) error {
		return errors.New("client went away")
	}

	svc := service.NewConversationService(convRepo, agentRepo, nil, runner, nil, nil)
	assistant, err := svc.StreamMessage(context.Background(), personalScope(userID), conv.ID, service.AppendMessageInput{Content: "help"}, sink)
	assert.NoError(t, err)
	assert.Equal(t, "partial", assistant.Content)
}
