// internal/service/project.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/atrium/internal/domain"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProjectService covers the project/task/time-entry surface, which exists
// in mirrored organization-scoped and personal variants.
type ProjectService struct {
	repo     repository.ProjectRepositoryIface
	perms    *PermissionService
	validate *validator.Validate
}

func NewProjectService(repo repository.ProjectRepositoryIface, perms *PermissionService) *ProjectService {
	return &ProjectService{
		repo:     repo,
		perms:    perms,
		validate: validator.New(),
	}
}

type CreateProjectInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (s *ProjectService) CreateProject(ctx context.Context, scope Scope, input CreateProjectInput) (*model.Project, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	project := &model.Project{
		OrganizationID: scope.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		Status:         model.ProjectActive,
		CreatedByID:    scope.UserID,
	}
	if scope.OrganizationID == nil {
		uid := scope.UserID
		project.UserID = &uid
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, scope Scope, projectID uuid.UUID) (*model.Project, error) {
	if err := s.requireScope(ctx, scope, model.RoleGuest); err != nil {
		return nil, err
	}

	project, err := s.repo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrProjectNotFound
	}

	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, scope Scope) ([]*model.Project, error) {
	if err := s.requireScope(ctx, scope, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.repo.ListProjectsByScope(ctx, scope.OrganizationID, scope.UserID)
}

func (s *ProjectService) DeleteProject(ctx context.Context, scope Scope, projectID uuid.UUID) error {
	project, err := s.GetProject(ctx, scope, projectID)
	if err != nil {
		return err
	}

	if project.CreatedByID != scope.UserID {
		if scope.OrganizationID == nil {
			return domain.ErrForbidden
		}
		if err := s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, model.RoleAdmin); err != nil {
			return err
		}
	}

	return s.repo.DeleteProject(ctx, projectID)
}

type CreateTaskInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	MilestoneID *uuid.UUID `json:"milestone_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DueAt       *time.Time `json:"due_at"`
}

func (s *ProjectService) CreateTask(ctx context.Context, scope Scope, projectID uuid.UUID, input CreateTaskInput) (*model.Task, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	project, err := s.repo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrProjectNotFound
	}

	task := &model.Task{
		ProjectID:   project.ID,
		MilestoneID: input.MilestoneID,
		Title:       input.Title,
		Description: input.Description,
		Status:      model.TaskTodo,
		AssigneeID:  input.AssigneeID,
		DueAt:       input.DueAt,
		CreatedByID: scope.UserID,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *ProjectService) ListTasks(ctx context.Context, scope Scope, projectID uuid.UUID) ([]*model.Task, error) {
	if _, err := s.GetProject(ctx, scope, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListTasksByProject(ctx, projectID)
}

type AddTimeEntryInput struct {
	Hours       float64    `json:"hours" validate:"required,gt=0"`
	Description string     `json:"description"`
	EnteredAt   *time.Time `json:"entered_at"`
}

// AddTimeEntry logs hours against a task. ActualHours is then recomputed
// from the time_entries table; the recompute-from-source rule tolerates
// concurrent and out-of-order writes where an in-place increment would
// drift.
func (s *ProjectService) AddTimeEntry(ctx context.Context, scope Scope, taskID uuid.UUID, input AddTimeEntryInput) (*model.TimeEntry, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	task, err := s.taskInScope(ctx, scope, taskID, model.RoleMember)
	if err != nil {
		return nil, err
	}

	enteredAt := time.Now().UTC()
	if input.EnteredAt != nil {
		enteredAt = *input.EnteredAt
	}

	entry := &model.TimeEntry{
		TaskID:      task.ID,
		UserID:      scope.UserID,
		Hours:       input.Hours,
		Description: strings.TrimSpace(input.Description),
		EnteredAt:   enteredAt,
	}

	if err := s.repo.CreateTimeEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.recomputeActualHours(ctx, task); err != nil {
		return nil, err
	}

	return entry, nil
}

// RemoveTimeEntry deletes the entry and recomputes the task total, so the
// removed entry's hours are immediately excluded.
func (s *ProjectService) RemoveTimeEntry(ctx context.Context, scope Scope, entryID uuid.UUID) error {
	entry, err := s.repo.FindTimeEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	task, err := s.taskInScope(ctx, scope, entry.TaskID, model.RoleMember)
	if err != nil {
		return err
	}

	if entry.UserID != scope.UserID {
		if scope.OrganizationID == nil {
			return domain.ErrForbidden
		}
		if err := s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, model.RoleAdmin); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteTimeEntry(ctx, entryID); err != nil {
		return err
	}

	return s.recomputeActualHours(ctx, task)
}

func (s *ProjectService) ListTimeEntries(ctx context.Context, scope Scope, taskID uuid.UUID) ([]*model.TimeEntry, error) {
	if _, err := s.taskInScope(ctx, scope, taskID, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.repo.ListTimeEntriesByTask(ctx, taskID)
}

type CreateMilestoneInput struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
}

func (s *ProjectService) CreateMilestone(ctx context.Context, scope Scope, projectID uuid.UUID, input CreateMilestoneInput) (*model.Milestone, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if _, err := s.GetProject(ctx, scope, projectID); err != nil {
		return nil, err
	}
	if err := s.requireScope(ctx, scope, model.RoleMember); err != nil {
		return nil, err
	}

	milestone := &model.Milestone{
		ProjectID:   projectID,
		Name:        input.Name,
		Description: input.Description,
		DueAt:       input.DueAt,
	}

	if err := s.repo.CreateMilestone(ctx, milestone); err != nil {
		return nil, err
	}

	return milestone, nil
}

func (s *ProjectService) ListMilestones(ctx context.Context, scope Scope, projectID uuid.UUID) ([]*model.Milestone, error) {
	if _, err := s.GetProject(ctx, scope, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListMilestonesByProject(ctx, projectID)
}

// recomputeActualHours resets the task's denormalized total from the sum
// over its current time entries.
func (s *ProjectService) recomputeActualHours(ctx context.Context, task *model.Task) error {
	total, err := s.repo.SumTimeEntryHours(ctx, task.ID)
	if err != nil {
		return err
	}

	task.ActualHours = total
	return s.repo.UpdateTask(ctx, task)
}

func (s *ProjectService) taskInScope(ctx context.Context, scope Scope, taskID uuid.UUID, role model.OrgRole) (*model.Task, error) {
	if err := s.requireScope(ctx, scope, role); err != nil {
		return nil, err
	}

	task, err := s.repo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.FindProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.InScope(scope.OrganizationID, scope.UserID) {
		return nil, domain.ErrTaskNotFound
	}

	return task, nil
}

func (s *ProjectService) requireScope(ctx context.Context, scope Scope, role model.OrgRole) error {
	if scope.OrganizationID == nil {
		return nil
	}
	return s.perms.Require(ctx, *scope.OrganizationID, scope.UserID, role)
}
