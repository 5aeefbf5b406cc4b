// internal/handler/project.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type ProjectResponse struct {
	BaseResponse
	Project *model.Project `json:"project"`
}

func (h *ProjectHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	var input service.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	project, err := h.projectService.CreateProject(r.Context(), scope, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, ProjectResponse{
		BaseResponse: BaseResponse{Ok: true},
		Project:      project,
	})
}

func (h *ProjectHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), scope, projectID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ProjectResponse{
		BaseResponse: BaseResponse{Ok: true},
		Project:      project,
	})
}

func (h *ProjectHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), scope)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"projects": projects,
	})
}

func (h *ProjectHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), scope, projectID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

//
// Tasks
//

func (h *ProjectHandler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	var input service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	task, err := h.projectService.CreateTask(r.Context(), scope, projectID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":   true,
		"task": task,
	})
}

func (h *ProjectHandler) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	tasks, err := h.projectService.ListTasks(r.Context(), scope, projectID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"tasks": tasks,
	})
}

//
// Time entries
//

func (h *ProjectHandler) AddTimeEntryHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	taskID, err := uuidParam(r, "taskID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	var input service.AddTimeEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	entry, err := h.projectService.AddTimeEntry(r.Context(), scope, taskID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":         true,
		"time_entry": entry,
	})
}

func (h *ProjectHandler) ListTimeEntriesHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	taskID, err := uuidParam(r, "taskID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	entries, err := h.projectService.ListTimeEntries(r.Context(), scope, taskID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"time_entries": entries,
	})
}

func (h *ProjectHandler) RemoveTimeEntryHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Time entry not found")
		return
	}

	if err := h.projectService.RemoveTimeEntry(r.Context(), scope, entryID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

//
// Milestones
//

func (h *ProjectHandler) CreateMilestoneHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	var input service.CreateMilestoneInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	milestone, err := h.projectService.CreateMilestone(r.Context(), scope, projectID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":        true,
		"milestone": milestone,
	})
}

func (h *ProjectHandler) ListMilestonesHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	milestones, err := h.projectService.ListMilestones(r.Context(), scope, projectID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"milestones": milestones,
	})
}
