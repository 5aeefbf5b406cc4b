// internal/model/agent.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Agent is an executable assistant configuration. Agents are either
// organization-scoped or personal (OrganizationID nil, UserID set).
type Agent struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID *uuid.UUID        `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	UserID         *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name           string            `gorm:"type:text;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	ModelName      string            `gorm:"type:text;not null" json:"model_name"`
	SystemPrompt   string            `gorm:"type:text" json:"system_prompt"`
	Config         datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	IsActive       bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// InScope reports whether the agent belongs to the given conversation scope.
func (a *Agent) InScope(orgID *uuid.UUID, userID uuid.UUID) bool {
	if orgID != nil {
		return a.OrganizationID != nil && *a.OrganizationID == *orgID
	}
	return a.UserID != nil && *a.UserID == userID
}
