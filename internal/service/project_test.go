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

func TestAddTimeEntryRecomputesActualHours(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()
	project := &model.Project{ID: projectID, UserID: &userID}
	task := &model.Task{ID: taskID, ProjectID: projectID, ActualHours: 3.5}

	repo := mocks.NewMockProjectRepositoryIface(ctrl)
	gomock.InOrder(
		repo.EXPECT().FindTaskByID(gomock.Any(), taskID).Return(task, nil),
		repo.EXPECT().FindProjectByID(gomock.Any(), projectID).Return(project, nil),
		repo.EXPECT().
			CreateTimeEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *model.TimeEntry) error {
				assert.Equal(t, taskID, entry.TaskID)
				assert.Equal(t, userID, entry.UserID)
				assert.Equal(t, 2.0, entry.Hours)
				return nil
			}),
		// The total is read back from storage, never incremented in place.
		repo.EXPECT().SumTimeEntryHours(gomock.Any(), taskID).Return(5.5, nil),
		repo.EXPECT().
			UpdateTask(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *model.Task) error {
				assert.Equal(t, 5.5, got.ActualHours)
				return nil
			}),
	)

	svc := service.NewProjectService(repo, nil)
	entry, err := svc.AddTimeEntry(context.Background(), personalScope(userID), taskID, service.AddTimeEntryInput{Hours: 2})
	assert.NoError(t, err)
	assert.Equal(t, 2.0, entry.Hours)
}

func TestAddTimeEntryRejectsNonPositiveHours(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewProjectService(mocks.NewMockProjectRepositoryIface(ctrl), nil)
	_, err := svc.AddTimeEntry(context.Background(), personalScope(uuid.New()), uuid.New(), service.AddTimeEntryInput{Hours: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveTimeEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("owner removes own entry and total drops", func(t *testing.T) {
		userID := uuid.New()
		projectID := uuid.New()
		taskID := uuid.New()
		entryID := uuid.New()
		project := &model.Project{ID: projectID, UserID: &userID}
		task := &model.Task{ID: taskID, ProjectID: projectID, ActualHours: 5.5}
		entry := &model.TimeEntry{ID: entryID, TaskID: taskID, UserID: userID, Hours: 2}

		repo := mocks.NewMockProjectRepositoryIface(ctrl)
		gomock.InOrder(
			repo.EXPECT().FindTimeEntryByID(gomock.Any(), entryID).Return(entry, nil),
			repo.EXPECT().FindTaskByID(gomock.Any(), taskID).Return(task, nil),
			repo.EXPECT().FindProjectByID(gomock.Any(), projectID).Return(project, nil),
			repo.EXPECT().DeleteTimeEntry(gomock.Any(), entryID).Return(nil),
			repo.EXPECT().SumTimeEntryHours(gomock.Any(), taskID).Return(3.5, nil),
			repo.EXPECT().
				UpdateTask(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, got *model.Task) error {
					assert.Equal(t, 3.5, got.ActualHours)
					return nil
				}),
		)

		svc := service.NewProjectService(repo, nil)
		assert.NoError(t, svc.RemoveTimeEntry(context.Background(), personalScope(userID), entryID))
	})

	t.Run("personal surface forbids removing another user's entry", func(t *testing.T) {
		userID := uuid.New()
		otherUser := uuid.New()
		projectID := uuid.New()
		taskID := uuid.New()
		entryID := uuid.New()
		project := &model.Project{ID: projectID, UserID: &userID}
		task := &model.Task{ID: taskID, ProjectID: projectID}
		entry := &model.TimeEntry{ID: entryID, TaskID: taskID, UserID: otherUser, Hours: 1}

		repo := mocks.NewMockProjectRepositoryIface(ctrl)
		gomock.InOrder(
			repo.EXPECT().FindTimeEntryByID(gomock.Any(), entryID).Return(entry, nil),
			repo.EXPECT().FindTaskByID(gomock.Any(), taskID).Return(task, nil),
			repo.EXPECT().FindProjectByID(gomock.Any(), projectID).Return(project, nil),
		)

		svc := service.NewProjectService(repo, nil)
		err := svc.RemoveTimeEntry(context.Background(), personalScope(userID), entryID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("org admin removes a member's entry", func(t *testing.T) {
		orgID := uuid.New()
		adminID := uuid.New()
		memberID := uuid.New()
		projectID := uuid.New()
		taskID := uuid.New()
		entryID := uuid.New()
		project := &model.Project{ID: projectID, OrganizationID: &orgID}
		task := &model.Task{ID: taskID, ProjectID: projectID}
		entry := &model.TimeEntry{ID: entryID, TaskID: taskID, UserID: memberID, Hours: 4}
		org := &model.Organization{ID: orgID, OwnerID: uuid.New()}
		admin := &model.OrganizationMember{OrganizationID: orgID, UserID: adminID, Role: model.RoleAdmin, Status: model.MemberActive}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		// Member-level scope check, then the admin check for deleting a
		// foreign entry.
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil).Times(2)
		orgRepo.EXPECT().FindMember(gomock.Any(), orgID, adminID).Return(admin, nil).Times(2)

		repo := mocks.NewMockProjectRepositoryIface(ctrl)
		gomock.InOrder(
			repo.EXPECT().FindTimeEntryByID(gomock.Any(), entryID).Return(entry, nil),
			repo.EXPECT().FindTaskByID(gomock.Any(), taskID).Return(task, nil),
			repo.EXPECT().FindProjectByID(gomock.Any(), projectID).Return(project, nil),
			repo.EXPECT().DeleteTimeEntry(gomock.Any(), entryID).Return(nil),
			repo.EXPECT().SumTimeEntryHours(gomock.Any(), taskID).Return(0.0, nil),
			repo.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Return(nil),
		)

		svc := service.NewProjectService(repo, service.NewPermissionService(orgRepo))
		scope := service.Scope{OrganizationID: &orgID, UserID: adminID}
		assert.NoError(t, svc.RemoveTimeEntry(context.Background(), scope, entryID))
	})
}

func TestTimeEntryTaskScopeHiding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	otherUser := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()
	project := &model.Project{ID: projectID, UserID: &otherUser}
	task := &model.Task{ID: taskID, ProjectID: projectID}

	repo := mocks.NewMockProjectRepositoryIface(ctrl)
	repo.EXPECT().FindTaskByID(gomock.Any(), taskID).Return(task, nil)
	repo.EXPECT().FindProjectByID(gomock.Any(), projectID).Return(project, nil)

	svc := service.NewProjectService(repo, nil)
	_, err := svc.AddTimeEntry(context.Background(), personalScope(userID), taskID, service.AddTimeEntryInput{Hours: 1})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
