// internal/handler/agent.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
)

type AgentHandler struct {
	agentService *service.AgentService
}

func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

type AgentResponse struct {
	BaseResponse
	Agent *model.Agent `json:"agent"`
}

func (h *AgentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	var input service.CreateAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	agent, err := h.agentService.CreateAgent(r.Context(), scope, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, AgentResponse{
		BaseResponse: BaseResponse{Ok: true},
		Agent:        agent,
	})
}

func (h *AgentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	agents, err := h.agentService.ListAgents(r.Context(), scope)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"agents": agents,
	})
}

type SetAgentActiveRequest struct {
	Active bool `json:"active"`
}

func (h *AgentHandler) SetActiveHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	agentID, err := uuidParam(r, "agentID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Agent not found")
		return
	}

	var req SetAgentActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	agent, err := h.agentService.SetAgentActive(r.Context(), scope, agentID, req.Active)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, AgentResponse{
		BaseResponse: BaseResponse{Ok: true},
		Agent:        agent,
	})
}
