// internal/repository/agent.go
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

type AgentRepositoryIface interface {
	Create(ctx context.Context, agent *model.Agent) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Agent, error)
	FindByScope(ctx context.Context, orgID *uuid.UUID, userID uuid.UUID) ([]*model.Agent, error)
	Update(ctx context.Context, agent *model.Agent) error
}

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(ctx context.Context, agent *model.Agent) error {
	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		return fmt.Errorf("creating agent: %w", err)
	}
	return nil
}

func (r *AgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Agent, error) {
	var agent model.Agent
	if err := r.db.WithContext(ctx).First(&agent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("finding agent: %w", err)
	}
	return &agent, nil
}

func (r *AgentRepository) FindByScope(ctx context.Context, orgID *uuid.UUID, userID uuid.UUID) ([]*model.Agent, error) {
	var agents []*model.Agent
	q := r.db.WithContext(ctx)
	if orgID != nil {
		q = q.Where("organization_id = ?", *orgID)
	} else {
		q = q.Where("user_id = ? AND organization_id IS NULL", userID)
	}
	if err := q.Order("created_at ASC").Find(&agents).Error; err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	return agents, nil
}

func (r *AgentRepository) Update(ctx context.Context, agent *model.Agent) error {
	if err := r.db.WithContext(ctx).Save(agent).Error; err != nil {
		return fmt.Errorf("updating agent: %w", err)
	}
	return nil
}
