// internal/repository/project.go
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

type ProjectRepositoryIface interface {
	CreateProject(ctx context.Context, project *model.Project) error
	FindProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjectsByScope(ctx context.Context, orgID *uuid.UUID, userID uuid.UUID) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateTask(ctx context.Context, task *model.Task) error
	FindTaskByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTasksByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	CreateTimeEntry(ctx context.Context, entry *model.TimeEntry) error
	FindTimeEntryByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error)
	ListTimeEntriesByTask(ctx context.Context, taskID uuid.UUID) ([]*model.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id uuid.UUID) error
	SumTimeEntryHours(ctx context.Context, taskID uuid.UUID) (float64, error)

	CreateMilestone(ctx context.Context, milestone *model.Milestone) error
	ListMilestonesByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Milestone, error)
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("finding project: %w", err)
	}
	return &project, nil
}

func (r *ProjectRepository) ListProjectsByScope(ctx context.Context, orgID *uuid.UUID, userID uuid.UUID) ([]*model.Project, error) {
	var projects []*model.Project
	q := r.db.WithContext(ctx)
	if orgID != nil {
		q = q.Where("organization_id = ?", *orgID)
	} else {
		q = q.Where("user_id = ? AND organization_id IS NULL", userID)
	}
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first: time entries hang off tasks, so resolve task IDs
		// before removing the tasks themselves.
		sub := tx.Model(&model.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", sub).Delete(&model.TimeEntry{}).Error; err != nil {
			return fmt.Errorf("deleting time entries: %w", err)
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("deleting tasks: %w", err)
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return fmt.Errorf("deleting milestones: %w", err)
		}

		if err := tx.Delete(&model.Project{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting project: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *ProjectRepository) CreateTask(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindTaskByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("finding task: %w", err)
	}
	return &task, nil
}

func (r *ProjectRepository) ListTasksByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Task, error) {
	var tasks []*model.Task
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (r *ProjectRepository) UpdateTask(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *ProjectRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TimeEntry{}).Error; err != nil {
			return fmt.Errorf("deleting time entries: %w", err)
		}

		if err := tx.Delete(&model.Task{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *ProjectRepository) CreateTimeEntry(ctx context.Context, entry *model.TimeEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("creating time entry: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindTimeEntryByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("finding time entry: %w", err)
	}
	return &entry, nil
}

func (r *ProjectRepository) ListTimeEntriesByTask(ctx context.Context, taskID uuid.UUID) ([]*model.TimeEntry, error) {
	var entries []*model.TimeEntry
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("entered_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	return entries, nil
}

func (r *ProjectRepository) DeleteTimeEntry(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.TimeEntry{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

// SumTimeEntryHours recomputes the total logged hours for a task from the
// time_entries table. Callers write the result back to Task.ActualHours
// instead of trusting incremental updates.
func (r *ProjectRepository) SumTimeEntryHours(ctx context.Context, taskID uuid.UUID) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("summing time entry hours: %w", err)
	}
	return total, nil
}

func (r *ProjectRepository) CreateMilestone(ctx context.Context, milestone *model.Milestone) error {
	if err := r.db.WithContext(ctx).Create(milestone).Error; err != nil {
		return fmt.Errorf("creating milestone: %w", err)
	}
	return nil
}

func (r *ProjectRepository) ListMilestonesByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Milestone, error) {
	var milestones []*model.Milestone
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("due_at ASC NULLS LAST").
		Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	return milestones, nil
}
