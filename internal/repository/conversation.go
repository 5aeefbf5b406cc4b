// internal/repository/conversation.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryIface interface {
	Create(ctx context.Context, conv *model.Conversation, first *model.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	ListByScope(ctx context.Context, orgID *uuid.UUID, userID uuid.UUID, offset, limit int) ([]*model.Conversation, int64, error)
	Update(ctx context.Context, conv *model.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error

	AppendMessage(ctx context.Context, msg *model.Message) error
	UpdateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, convID uuid.UUID, offset, limit int) ([]*model.Message, int64, error)
	FirstMessages(ctx context.Context, convID uuid.UUID, limit int) ([]*model.Message, error)

	CreateAttachment(ctx context.Context, att *model.Attachment) error
	ListAttachments(ctx context.Context, convID uuid.UUID) ([]*model.Attachment, error)
}

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create persists the conversation together with its first user message in
// one transaction so a half-created conversation never becomes visible.
func (r *ConversationRepository) Create(ctx context.Context, conv *model.Conversation, first *model.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return fmt.Errorf("creating conversation: %w", err)
		}

		first.ConversationID = conv.ID
		if err := tx.Create(first).Error; err != nil {
			return fmt.Errorf("creating first message: %w", err)
		}

		return syncCounters(tx, conv)
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("finding conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) ListByScope(ctx context.Context, orgID *uuid.UUID, userID uuid.UUID, offset, limit int) ([]*model.Conversation, int64, error) {
	var convs []*model.Conversation
	var count int64

	q := r.db.WithContext(ctx).Model(&model.Conversation{})
	if orgID != nil {
		q = q.Where("organization_id = ?", *orgID)
	} else {
		q = q.Where("user_id = ? AND organization_id IS NULL", userID)
	}

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting conversations: %w", err)
	}

	if err := q.Order("last_message_at DESC NULLS LAST").
		Offset(offset).Limit(limit).
		Find(&convs).Error; err != nil {
		return nil, 0, fmt.Errorf("listing conversations: %w", err)
	}

	return convs, count, nil
}

func (r *ConversationRepository) Update(ctx context.Context, conv *model.Conversation) error {
	if err := r.db.WithContext(ctx).Save(conv).Error; err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	return nil
}

// Delete removes messages, then attachments, then the conversation row,
// in that explicit order inside one transaction. Database-level cascades
// are deliberately not relied on so no orphaned blob references survive
// a partial failure.
func (r *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return fmt.Errorf("deleting messages: %w", err)
		}

		if err := tx.Where("conversation_id = ?", id).Delete(&model.Attachment{}).Error; err != nil {
			return fmt.Errorf("deleting attachments: %w", err)
		}

		if err := tx.Delete(&model.Conversation{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting conversation: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// AppendMessage inserts the message and resynchronizes the parent
// conversation's denormalized counters from the messages table. Counters
// are recomputed, never incremented, so concurrent appends converge on
// the true count.
func (r *ConversationRepository) AppendMessage(ctx context.Context, msg *model.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("creating message: %w", err)
		}

		return syncCounters(tx, &model.Conversation{ID: msg.ConversationID})
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *ConversationRepository) UpdateMessage(ctx context.Context, msg *model.Message) error {
	if err := r.db.WithContext(ctx).Save(msg).Error; err != nil {
		return fmt.Errorf("updating message: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, convID uuid.UUID, offset, limit int) ([]*model.Message, int64, error) {
	var msgs []*model.Message
	var count int64

	q := r.db.WithContext(ctx).Model(&model.Message{}).Where("conversation_id = ?", convID)

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting messages: %w", err)
	}

	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
		return nil, 0, fmt.Errorf("listing messages: %w", err)
	}

	return msgs, count, nil
}

func (r *ConversationRepository) FirstMessages(ctx context.Context, convID uuid.UUID, limit int) ([]*model.Message, error) {
	var msgs []*model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("finding first messages: %w", err)
	}
	return msgs, nil
}

func (r *ConversationRepository) CreateAttachment(ctx context.Context, att *model.Attachment) error {
	if err := r.db.WithContext(ctx).Create(att).Error; err != nil {
		return fmt.Errorf("creating attachment: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ListAttachments(ctx context.Context, convID uuid.UUID) ([]*model.Attachment, error) {
	var atts []*model.Attachment
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Find(&atts).Error; err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	return atts, nil
}

// syncCounters recomputes message_count and last_message_at for the
// conversation from the messages table.
func syncCounters(tx *gorm.DB, conv *model.Conversation) error {
	var count int64
	if err := tx.Model(&model.Message{}).
		Where("conversation_id = ?", conv.ID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("recounting messages: %w", err)
	}

	var last *time.Time
	row := tx.Model(&model.Message{}).
		Where("conversation_id = ?", conv.ID).
		Select("MAX(created_at)").
		Row()
	if err := row.Scan(&last); err != nil {
		return fmt.Errorf("finding last message time: %w", err)
	}

	if err := tx.Model(&model.Conversation{}).
		Where("id = ?", conv.ID).
		Updates(map[string]interface{}{
			"message_count":   count,
			"last_message_at": last,
		}).Error; err != nil {
		return fmt.Errorf("updating conversation counters: %w", err)
	}

	return nil
}
