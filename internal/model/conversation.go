// internal/model/conversation.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TitleStatus string

const (
	// TitleProvisional is the state at creation; the title came from the
	// deterministic heuristic over the first user message.
	TitleProvisional TitleStatus = "provisional"
	// TitleCustom means a human renamed the conversation. Terminal for
	// automatic titling.
	TitleCustom TitleStatus = "custom"
	// TitleFinal means title generation ran to completion (AI or fallback).
	TitleFinal TitleStatus = "final"
)

type TitleMethod string

const (
	TitleMethodAuto    TitleMethod = "auto"
	TitleMethodManual  TitleMethod = "manual"
	TitleMethodRenamed TitleMethod = "user_renamed"
)

// Conversation is a chat thread bound to an agent, scoped to either an
// organization or a single user.
type Conversation struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID *uuid.UUID        `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	UserID         *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AgentID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"agent_id"`
	CreatedByID    uuid.UUID         `gorm:"type:uuid;not null" json:"created_by_id"`
	Title          *string           `gorm:"type:text" json:"title"`
	TitleStatus    TitleStatus       `gorm:"type:text;not null;default:'provisional'" json:"title_status"`
	TitleMethod    TitleMethod       `gorm:"type:text;not null;default:'auto'" json:"title_generation_method"`
	TitleAt        *time.Time        `gorm:"column:title_generated_at" json:"title_generated_at,omitempty"`
	MessageCount   int64             `gorm:"not null;default:0" json:"message_count"`
	LastMessageAt  *time.Time        `json:"last_message_at,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	Agent Agent `gorm:"foreignKey:AgentID" json:"-"`
}

// InScope reports whether the conversation belongs to the caller's scope.
// Organization conversations match on org ID; personal ones on the owner.
func (c *Conversation) InScope(orgID *uuid.UUID, userID uuid.UUID) bool {
	if c.OrganizationID != nil {
		return orgID != nil && *c.OrganizationID == *orgID
	}
	return c.UserID != nil && *c.UserID == userID
}

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

type Message struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"conversation_id"`
	ParentMessageID  *uuid.UUID     `gorm:"type:uuid" json:"parent_message_id,omitempty"`
	Role             MessageRole    `gorm:"type:text;not null" json:"role"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	ToolCalls        datatypes.JSON `gorm:"type:jsonb" json:"tool_calls,omitempty"`
	PromptTokens     int            `gorm:"not null;default:0" json:"prompt_tokens"`
	CompletionTokens int            `gorm:"not null;default:0" json:"completion_tokens"`
	CostCents        int64          `gorm:"not null;default:0" json:"cost_cents"`

	// CreatedByID is nil for system-generated assistant messages.
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Attachment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"conversation_id"`
	MessageID      *uuid.UUID `gorm:"type:uuid;index" json:"message_id,omitempty"`
	StorageKey     string     `gorm:"type:text;not null" json:"storage_key"`
	URL            string     `gorm:"type:text;not null" json:"url"`
	Filename       string     `gorm:"type:text;not null" json:"filename"`
	SizeBytes      int64      `gorm:"not null" json:"size_bytes"`
	MimeType       string     `gorm:"type:text;not null" json:"mime_type"`
	UploadedByID   uuid.UUID  `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	CreatedAt      time.Time  `json:"created_at"`
}
