// internal/service/conversation.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/atrium/internal/agentgw"
	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/repository"
	"github.com/dangerclosesec/atrium/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Scope identifies who is acting and in which tenant. OrganizationID nil
// means the personal surface.
type Scope struct {
	OrganizationID *uuid.UUID
	UserID         uuid.UUID
}

// maxTitlePromptChars bounds how much of each message is fed to the titler.
const maxTitlePromptChars = 500

// maxGeneratedTitleChars rejects runaway titler output in favor of the
// deterministic fallback.
const maxGeneratedTitleChars = 80

// historyWindow is how many prior messages accompany an agent execution.
const historyWindow = 50

type ConversationService struct {
	convRepo  repository.ConversationRepositoryIface
	agentRepo repository.AgentRepositoryIface
	perms     *PermissionService
	runner    agentgw.Runner
	titler    agentgw.Completer
	blobs     storage.BlobStore
	validate  *validator.Validate
}

func NewConversationService(
	convRepo repository.ConversationRepositoryIface,
	agentRepo repository.AgentRepositoryIface,
	perms *PermissionService,
	runner agentgw.Runner,
	titler agentgw.Completer,
	blobs storage.BlobStore,
) *ConversationService {
	return &ConversationService{
		convRepo:  convRepo,
		agentRepo: agentRepo,
		perms:     perms,
		runner:    runner,
		titler:    titler,
		blobs:     blobs,
		validate:  validator.New(),
	}
}

type AttachmentInput struct {
	Filename string `json:"filename" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	Data     []byte `json:"data" validate:"required"`
}

type CreateConversationInput struct {
	AgentID     uuid.UUID              `json:"agent_id" validate:"required"`
	Message     string                 `json:"message" validate:"required"`
	Metadata    map[string]interface{} `json:"metadata"`
	Attachments []AttachmentInput      `json:"attachments"`
}

// Create opens a conversation with its first user message in one logical
// transaction. The provisional title comes from the deterministic heuristic
// so creation never blocks on the titler.
func (s *ConversationService) Create(ctx context.Context, scope Scope, input CreateConversationInput) (*model.Conversation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	agent, err := s.agentRepo.FindByID(ctx, input.AgentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive || !agent.InScope(scope.OrganizationID, scope.UserID) {
		// Inactive and out-of-scope agents look identical to missing ones.
		return nil, domain.ErrAgentNotFound
	}

	now := time.Now().UTC()
	title := DeriveTitle(input.Message)
	conv := &model.Conversation{
		OrganizationID: scope.OrganizationID,
		AgentID:        agent.ID,
		CreatedByID:    scope.UserID,
		Title:          &title,
		TitleStatus:    model.TitleProvisional,
		TitleMethod:    model.TitleMethodAuto,
		Metadata:       input.Metadata,
	}
	if scope.OrganizationID == nil {
		uid := scope.UserID
		conv.UserID = &uid
	}

	creator := scope.UserID
	first := &model.Message{
		Role:        model.MessageRoleUser,
		Content:     input.Message,
		CreatedByID: &creator,
	}

	if err := s.convRepo.Create(ctx, conv, first); err != nil {
		return nil, err
	}
	conv.MessageCount = 1
	conv.LastMessageAt = &now

	if err := s.storeAttachments(ctx, conv, first, input.Attachments); err != nil {
		return nil, err
	}

	return conv, nil
}

// Get loads a conversation after the scope and permission checks. Scope
// mismatches surface as NotFound so callers learn nothing about other
// tenants' conversations.
func (s *ConversationService) Get(ctx context.Context, scope Scope, convID uuid.UUID) (*model.Conversation, error) {
	if err := s.requireScope(ctx, scope, model.RoleGuest); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrConversationNotFound
	}

	return conv, nil
}

func (s *ConversationService) List(ctx context.Context, scope Scope, offset, limit int) ([]*model.Conversation, int64, error) {
	if err := s.requireScope(ctx, scope, model.RoleGuest); err != nil {
		return nil, 0, err
	}
	return s.convRepo.ListByScope(ctx, scope.OrganizationID, scope.UserID, offset, limit)
}

func (s *ConversationService) ListMessages(ctx context.Context, scope Scope, convID uuid.UUID, offset, limit int) ([]*model.Message, int64, error) {
	if _, err := s.Get(ctx, scope, convID); err != nil {
		return nil, 0, err
	}
	return s.convRepo.ListMessages(ctx, convID, offset, limit)
}

type AppendMessageInput struct {
	Content         string            `json:"content" validate:"required"`
	ParentMessageID *uuid.UUID        `json:"parent_message_id"`
	Attachments     []AttachmentInput `json:"attachments"`
}

// AppendMessage adds a user message to an existing conversation. Counters
// on the conversation are resynchronized from the messages table by the
// repository rather than incremented.
func (s *ConversationService) AppendMessage(ctx context.Context, scope Scope, convID uuid.UUID, input AppendMessageInput) (*model.Message, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrConversationNotFound
	}

	creator := scope.UserID
	msg := &model.Message{
		ConversationID:  conv.ID,
		ParentMessageID: input.ParentMessageID,
		Role:            model.MessageRoleUser,
		Content:         input.Content,
		CreatedByID:     &creator,
	}

	if err := s.convRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.storeAttachments(ctx, conv, msg, input.Attachments); err != nil {
		return nil, err
	}

	return msg, nil
}

// StreamMessage appends the user message, creates an empty placeholder
// assistant message, then runs the agent. Every upstream content chunk is
// persisted onto the placeholder before sink forwards it to the client, so
// a disconnect mid-stream leaves a recoverable partial assistant message.
// Upstream failures become in-band error events, never an HTTP failure.
func (s *ConversationService) StreamMessage(ctx context.Context, scope Scope, convID uuid.UUID, input AppendMessageInput, sink func(agentgw.Event) error) (*model.Message, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrConversationNotFound
	}

	agent, err := s.agentRepo.FindByID(ctx, conv.AgentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, domain.ErrAgentNotFound
	}

	history, err := s.convRepo.FirstMessages(ctx, conv.ID, historyWindow)
	if err != nil {
		return nil, err
	}

	creator := scope.UserID
	userMsg := &model.Message{
		ConversationID:  conv.ID,
		ParentMessageID: input.ParentMessageID,
		Role:            model.MessageRoleUser,
		Content:         input.Content,
		CreatedByID:     &creator,
	}
	if err := s.convRepo.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := s.storeAttachments(ctx, conv, userMsg, input.Attachments); err != nil {
		return nil, err
	}

	// Placeholder goes in before any upstream output exists; nil creator
	// marks it system-generated.
	assistant := &model.Message{
		ConversationID:  conv.ID,
		ParentMessageID: &userMsg.ID,
		Role:            model.MessageRoleAssistant,
		Content:         "",
	}
	if err := s.convRepo.AppendMessage(ctx, assistant); err != nil {
		return nil, err
	}

	events, err := s.runner.ExecuteStream(ctx, agent, input.Content, history)
	if err != nil {
		slog.ErrorContext(ctx, "agent execution failed to start", "error", err, "conversation", conv.ID)
		_ = sink(agentgw.Event{Type: agentgw.EventError, Error: "agent execution failed"})
		return assistant, nil
	}

	for ev := range events {
		switch ev.Type {
		case agentgw.EventContent:
			assistant.Content += ev.Content
			if err := s.convRepo.UpdateMessage(ctx, assistant); err != nil {
				slog.ErrorContext(ctx, "persisting assistant chunk", "error", err, "message", assistant.ID)
				_ = sink(agentgw.Event{Type: agentgw.EventError, Error: "failed to persist output"})
				return assistant, nil
			}
			if err := sink(ev); err != nil {
				// Client is gone. What was persisted stays; later chunks
				// are simply never written.
				return assistant, nil
			}
		case agentgw.EventComplete:
			if len(ev.ToolsUsed) > 0 {
				if raw, merr := json.Marshal(ev.ToolsUsed); merr == nil {
					assistant.ToolCalls = raw
				}
			}
			if err := s.convRepo.UpdateMessage(ctx, assistant); err != nil {
				slog.ErrorContext(ctx, "finalizing assistant message", "error", err, "message", assistant.ID)
			}
			_ = sink(ev)
			return assistant, nil
		case agentgw.EventError:
			slog.WarnContext(ctx, "agent stream error", "error", ev.Error, "conversation", conv.ID)
			_ = sink(ev)
			return assistant, nil
		default:
			if err := sink(ev); err != nil {
				return assistant, nil
			}
		}
	}

	return assistant, nil
}

// TitleResult reports what GenerateTitle did. Generated is false for the
// informational no-op cases (custom title, not enough messages).
type TitleResult struct {
	Conversation *model.Conversation `json:"conversation"`
	Generated    bool                `json:"generated"`
	Message      string              `json:"message,omitempty"`
}

// GenerateTitle asks the titler for a better title, falling back to the
// deterministic heuristic on any failure. Either path finalizes the title.
// A custom (human-set) title is never touched.
func (s *ConversationService) GenerateTitle(ctx context.Context, scope Scope, convID uuid.UUID) (*TitleResult, error) {
	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrConversationNotFound
	}

	if conv.TitleStatus == model.TitleCustom {
		return &TitleResult{Conversation: conv, Generated: false, Message: "title was set manually and will not be regenerated"}, nil
	}

	msgs, err := s.convRepo.FirstMessages(ctx, conv.ID, 2)
	if err != nil {
		return nil, err
	}
	if len(msgs) < 2 {
		return &TitleResult{Conversation: conv, Generated: false, Message: "not enough messages to generate a title"}, nil
	}

	title := s.completeTitle(ctx, msgs)
	if title == "" {
		title = DeriveTitle(msgs[0].Content)
	}

	now := time.Now().UTC()
	conv.Title = &title
	conv.TitleStatus = model.TitleFinal
	conv.TitleMethod = model.TitleMethodAuto
	conv.TitleAt = &now

	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, err
	}

	return &TitleResult{Conversation: conv, Generated: true}, nil
}

// completeTitle calls the upstream completion capability with a bounded
// prompt. Any failure mode (error, empty, runaway output) yields "" so the
// caller falls back to the heuristic.
func (s *ConversationService) completeTitle(ctx context.Context, msgs []*model.Message) string {
	if s.titler == nil {
		return ""
	}

	prompt := fmt.Sprintf(
		"Write a concise title (at most six words) for this conversation. Reply with the title only.\n\nUser: %s\nAssistant: %s",
		clamp(msgs[0].Content, maxTitlePromptChars),
		clamp(msgs[1].Content, maxTitlePromptChars),
	)

	title, err := s.titler.Complete(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "title generation failed, using heuristic", "error", err)
		return ""
	}

	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), `"`))
	if title == "" || len(title) > maxGeneratedTitleChars {
		return ""
	}
	return title
}

// Rename sets a human-chosen title. This is the one-way transition into
// the custom state that permanently disables automatic titling.
func (s *ConversationService) Rename(ctx context.Context, scope Scope, convID uuid.UUID, title string, method model.TitleMethod) (*model.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}

	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrConversationNotFound
	}

	now := time.Now().UTC()
	conv.Title = &title
	conv.TitleStatus = model.TitleCustom
	conv.TitleMethod = method
	conv.TitleAt = &now

	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, err
	}

	return conv, nil
}

// Delete removes the conversation and its children. Only the creator or an
// organization admin may delete. Blob removal is best-effort after the rows
// are gone; a failed blob delete is logged, never surfaced.
func (s *ConversationService) Delete(ctx context.Context, scope Scope, convID uuid.UUID) error {
	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return err
	}

	conv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		return err
	}
	if !conv.InScope(scope.OrganizationID, scope.UserID) {
		return domain.ErrConversationNotFound
	}

	if conv.CreatedByID != scope.UserID {
		if scope.OrganizationID == nil {
			return domain.ErrForbidden
		}
		if err := s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, model.RoleAdmin); err != nil {
			return err
		}
	}

	atts, err := s.convRepo.ListAttachments(ctx, conv.ID)
	if err != nil {
		return err
	}

	if err := s.convRepo.Delete(ctx, conv.ID); err != nil {
		return err
	}

	for _, att := range atts {
		if s.blobs == nil {
			break
		}
		if err := s.blobs.Delete(ctx, att.StorageKey); err != nil {
			slog.WarnContext(ctx, "deleting attachment blob", "error", err, "key", att.StorageKey)
		}
	}

	return nil
}

// requireScope enforces the organization role for org-scoped calls. The
// personal surface needs no role check; ownership is checked against the
// resource itself.
func (s *ConversationService) requireScope(ctx context.Context, scope Scope, role model.OrgRole) error {
	if scope.OrganizationID == nil {
		return nil
	}
	return s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, role)
}

func (s *ConversationService) storeAttachments(ctx context.Context, conv *model.Conversation, msg *model.Message, inputs []AttachmentInput) error {
	for _, in := range inputs {
		key := fmt.Sprintf("conversations/%s/%s/%s", conv.ID, uuid.New(), in.Filename)

		url := ""
		if s.blobs != nil {
			var err error
			url, err = s.blobs.Put(ctx, key, in.Data, in.MimeType)
			if err != nil {
				return fmt.Errorf("storing attachment %s: %w", in.Filename, err)
			}
		}

		uploader := conv.CreatedByID
		if msg.CreatedByID != nil {
			uploader = *msg.CreatedByID
		}
		att := &model.Attachment{
			ConversationID: conv.ID,
			MessageID:      &msg.ID,
			StorageKey:     key,
			URL:            url,
			Filename:       in.Filename,
			SizeBytes:      int64(len(in.Data)),
			MimeType:       in.MimeType,
			UploadedByID:   uploader,
		}

		if err := s.convRepo.CreateAttachment(ctx, att); err != nil {
			return err
		}
	}
	return nil
}

func clamp(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
