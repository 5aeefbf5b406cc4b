// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

type OrganizationResponse struct {
	BaseResponse
	Organization *model.Organization `json:"organization"`
}

func (h *OrganizationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.CreateOrganization(r.Context(), userID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, OrganizationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Organization: org,
	})
}

func (h *OrganizationHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	org, err := h.orgService.GetOrganization(r.Context(), userID, orgID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, OrganizationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Organization: org,
	})
}

func (h *OrganizationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgs, err := h.orgService.ListOrganizations(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":            true,
		"organizations": orgs,
	})
}

func (h *OrganizationHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.UpdateOrganization(r.Context(), userID, orgID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, OrganizationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Organization: org,
	})
}

func (h *OrganizationHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	if err := h.orgService.DeleteOrganization(r.Context(), userID, orgID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

//
// Members
//

func (h *OrganizationHandler) ListMembersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	members, err := h.orgService.ListMembers(r.Context(), userID, orgID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"members": members,
	})
}

type UpdateMemberRoleRequest struct {
	Role model.OrgRole `json:"role"`
}

func (h *OrganizationHandler) UpdateMemberRoleHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	memberUserID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Member not found")
		return
	}

	var req UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	member, err := h.orgService.UpdateMemberRole(r.Context(), callerID, orgID, memberUserID, req.Role)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"member": member,
	})
}

func (h *OrganizationHandler) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	memberUserID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Member not found")
		return
	}

	if err := h.orgService.RemoveMember(r.Context(), callerID, orgID, memberUserID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

//
// Invitations
//

type InvitationResponse struct {
	BaseResponse
	Invitation *model.OrganizationInvitation `json:"invitation"`
}

func (h *OrganizationHandler) InviteMemberHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	var input service.InviteMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	inv, err := h.orgService.InviteMember(r.Context(), callerID, orgID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, InvitationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Invitation:   inv,
	})
}

func (h *OrganizationHandler) ListInvitationsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	invs, err := h.orgService.ListInvitations(r.Context(), callerID, orgID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":          true,
		"invitations": invs,
	})
}

func (h *OrganizationHandler) CancelInvitationHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuidParam(r, "orgID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	invID, err := uuidParam(r, "invitationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	if err := h.orgService.CancelInvitation(r.Context(), callerID, orgID, invID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

// AcceptInvitationHandler redeems an invitation token on behalf of the
// authenticated user.
func (h *OrganizationHandler) AcceptInvitationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token := chi.URLParam(r, "token")
	if token == "" {
		respondWithError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	member, err := h.orgService.AcceptInvitation(r.Context(), userID, token)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"member": member,
	})
}

func (h *OrganizationHandler) DeclineInvitationHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		respondWithError(w, http.StatusNotFound, "Invitation not found")
		return
	}

	if err := h.orgService.DeclineInvitation(r.Context(), token); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
