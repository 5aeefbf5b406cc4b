// internal/handler/conversation.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/atrium/internal/agentgw"
	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/dangerclosesec/atrium/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
)

type ConversationHandler struct {
	convService *service.ConversationService
}

func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

type ConversationResponse struct {
	BaseResponse
	Conversation *model.Conversation `json:"conversation"`
}

func (h *ConversationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	var input service.CreateConversationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	conv, err := h.convService.Create(r.Context(), scope, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, ConversationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Conversation: conv,
	})
}

func (h *ConversationHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	conv, err := h.convService.Get(r.Context(), scope, convID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ConversationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Conversation: conv,
	})
}

func (h *ConversationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)

	convs, total, err := h.convService.List(r.Context(), scope, offset, limit)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":            true,
		"conversations": convs,
		"total":         total,
	})
}

func (h *ConversationHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 100)

	msgs, total, err := h.convService.ListMessages(r.Context(), scope, convID, offset, limit)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"messages": msgs,
		"total":    total,
	})
}

func (h *ConversationHandler) AppendMessageHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	var input service.AppendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	msg, err := h.convService.AppendMessage(r.Context(), scope, convID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":      true,
		"message": msg,
	})
}

// StreamMessageHandler appends a user message and streams the agent reply as
// server-sent events. Each chunk is persisted before it is flushed, so a
// dropped client leaves a recoverable partial message rather than losing
// content. Upstream agent failures arrive as in-band error events; by the
// time they occur the response status is already committed.
func (h *ConversationHandler) StreamMessageHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	var input service.AppendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := func(ev agentgw.Event) error {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if _, err := h.convService.StreamMessage(r.Context(), scope, convID, input, sink); err != nil {
		// Headers are gone; report in-band and log for the operator.
		slog.ErrorContext(r.Context(), "Stream terminated",
			"error", err,
			"conversationID", convID,
			"requestID", chmw.GetReqID(r.Context()))
		ev := agentgw.Event{Type: agentgw.EventError, Error: "stream terminated"}
		if payload, merr := json.Marshal(ev); merr == nil {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()
		}
	}
}

// GenerateTitleHandler finalizes a provisional title using the agent gateway.
// Calling it on a custom-titled conversation is a no-op that reports the
// existing title.
func (h *ConversationHandler) GenerateTitleHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	result, err := h.convService.GenerateTitle(r.Context(), scope, convID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"conversation": result.Conversation,
		"generated":    result.Generated,
		"message":      result.Message,
	})
}

type RenameConversationRequest struct {
	Title string `json:"title"`
}

// UpdateHandler is the generic PATCH surface. Setting a title through it
// marks the method as manual; both paths land in the custom state.
func (h *ConversationHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	h.setTitle(w, r, model.TitleMethodManual)
}

// RenameHandler is the dedicated rename action; titles set here carry the
// user_renamed method.
func (h *ConversationHandler) RenameHandler(w http.ResponseWriter, r *http.Request) {
	h.setTitle(w, r, model.TitleMethodRenamed)
}

func (h *ConversationHandler) setTitle(w http.ResponseWriter, r *http.Request, method model.TitleMethod) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	var req RenameConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	conv, err := h.convService.Rename(r.Context(), scope, convID, req.Title, method)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ConversationResponse{
		BaseResponse: BaseResponse{Ok: true},
		Conversation: conv,
	})
}

func (h *ConversationHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	scope, err := requestScope(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	convID, err := uuidParam(r, "conversationID")
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	if err := h.convService.Delete(r.Context(), scope, convID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
