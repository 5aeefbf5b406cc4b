// internal/handler/plan.go
package handler

import (
	"net/http"

	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/go-chi/chi/v5"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planService.ListPlans()
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"plans": plans,
	})
}

func (h *PlanHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planService.GetPlan(chi.URLParam(r, "planID"))
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"plan": plan,
	})
}
