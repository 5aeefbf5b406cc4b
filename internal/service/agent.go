// internal/service/agent.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AgentService struct {
	repo     repository.AgentRepositoryIface
	perms    *PermissionService
	validate *validator.Validate
}

func NewAgentService(repo repository.AgentRepositoryIface, perms *PermissionService) *AgentService {
	return &AgentService{
		repo:     repo,
		perms:    perms,
		validate: validator.New(),
	}
}

type CreateAgentInput struct {
	Name         string                 `json:"name" validate:"required"`
	Description  string                 `json:"description"`
	ModelName    string                 `json:"model_name" validate:"required"`
	SystemPrompt string                 `json:"system_prompt"`
	Config       map[string]interface{} `json:"config"`
}

func (s *AgentService) CreateAgent(ctx context.Context, scope Scope, input CreateAgentInput) (*model.Agent, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if scope.OrganizationID != nil {
		if err := s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, model.RoleAdmin); err != nil {
			return nil, err
		}
	}

	agent := &model.Agent{
		OrganizationID: scope.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		ModelName:      input.ModelName,
		SystemPrompt:   input.SystemPrompt,
		Config:         input.Config,
		IsActive:       true,
	}
	if scope.OrganizationID == nil {
		uid := scope.UserID
		agent.UserID = &uid
	}

	if err := s.repo.Create(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

func (s *AgentService) ListAgents(ctx context.Context, scope Scope) ([]*model.Agent, error) {
	if scope.OrganizationID != nil {
		if err := s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, model.RoleGuest); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByScope(ctx, scope.OrganizationID, scope.UserID)
}

// SetAgentActive toggles an agent. Inactive agents cannot start or serve
// conversations, but existing conversation history stays readable.
func (s *AgentService) SetAgentActive(ctx context.Context, scope Scope, agentID uuid.UUID, active bool) (*model.Agent, error) {
	agent, err := s.repo.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrAgentNotFound
	}

	if scope.OrganizationID != nil {
		if err := s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, model.RoleAdmin); err != nil {
			return nil, err
		}
	}

	agent.IsActive = active
	if err := s.repo.Update(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}
