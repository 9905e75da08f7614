package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"scholar-ai/backend/internal/attachment"
	app_errors "scholar-ai/backend/internal/errors"
	"scholar-ai/backend/internal/interfaces"
	"scholar-ai/backend/internal/modes"
	"scholar-ai/backend/internal/service"
)

// maxAttachmentMemory caps how much of a multipart upload is buffered in
// memory before spilling to disk.
const maxAttachmentMemory = 32 << 20

// ChatHandler handles HTTP requests for conversations and messages.
type ChatHandler struct {
	chat   interfaces.ChatService
	export interfaces.ExportService
}

func NewChatHandler(chat interfaces.ChatService, export interfaces.ExportService) *ChatHandler {
	return &ChatHandler{chat: chat, export: export}
}

// HandleSendMessage godoc
// @Summary      Send a message
// @Description  Sends a user turn (text and/or attachment) to the engine and returns the full exchange. An empty conversation_id starts a new conversation. Accepts JSON, or multipart/form-data for raw file uploads.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        message  body      service.SendMessageRequest  true  "User turn"
// @Success      200      {object}  service.Exchange
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/conversations/messages [post]
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeSendRequest(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	exchange, err := h.chat.SendMessage(r.Context(), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, exchange)
}

// decodeSendRequest accepts either a JSON body (attachment pre-encoded as
// base64, data-URL prefix tolerated) or a multipart form with a raw file.
func (h *ChatHandler) decodeSendRequest(r *http.Request) (*service.SendMessageRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return h.decodeMultipartSend(r)
	}

	var req service.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation)
	}
	if req.Attachment != nil {
		payload, err := attachment.NewPayload(req.Attachment.Data, req.Attachment.MIMEType)
		if err != nil {
			return nil, err
		}
		req.Attachment = payload
	}
	return &req, nil
}

func (h *ChatHandler) decodeMultipartSend(r *http.Request) (*service.SendMessageRequest, error) {
	if err := r.ParseMultipartForm(maxAttachmentMemory); err != nil {
		return nil, fmt.Errorf("%w: invalid multipart body", app_errors.ErrValidation)
	}

	req := &service.SendMessageRequest{
		ConversationID: r.FormValue("conversation_id"),
		Content:        r.FormValue("content"),
		Mode:           modes.ID(r.FormValue("mode")),
	}

	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", app_errors.ErrValidation)
	}
	defer file.Close()

	payload, err := attachment.FromReader(file, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	req.Attachment = payload
	return req, nil
}

// HandleHumanize godoc
// @Summary      Humanize a message
// @Description  Rewrites an existing assistant message in a human voice and appends the result as a new assistant message flagged is_humanized.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Param        messageID       path      string  true  "Message ID"
// @Success      200             {object}  model.Message
// @Failure      404             {object}  ErrorResponse
// @Failure      409             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages/{messageID}/humanize [post]
func (h *ChatHandler) HandleHumanize(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	messageID := chi.URLParam(r, "messageID")

	msg, err := h.chat.Humanize(r.Context(), conversationID, messageID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msg)
}

// GetConversations godoc
// @Summary      List conversations
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}  model.Conversation
// @Router       /v1/conversations [get]
func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.chat.ListConversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, convs)
}

// GetConversation godoc
// @Summary      Get a conversation with all messages
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.FullConversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	full, err := h.chat.GetFullConversation(r.Context(), conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, full)
}

// UpdateConversationTitle godoc
// @Summary      Rename a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string              true  "Conversation ID"
// @Param        title           body      UpdateTitleRequest  true  "New title"
// @Success      200             {object}  StatusResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/title [put]
func (h *ChatHandler) UpdateConversationTitle(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.chat.UpdateConversationTitle(r.Context(), conversationID, req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleClearConversation godoc
// @Summary      Clear a conversation
// @Description  Discards all messages in the conversation as a unit. The conversation itself survives. No undo.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages [delete]
func (h *ChatHandler) HandleClearConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if err := h.chat.ClearConversation(r.Context(), conversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleDeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ChatHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if err := h.chat.DeleteConversation(r.Context(), conversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleExportXLSX godoc
// @Summary      Export a message as a spreadsheet
// @Description  Extracts markdown tables from the message content and streams them as an .xlsx workbook.
// @Tags         Export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        conversationID  path  string  true  "Conversation ID"
// @Param        messageID       path  string  true  "Message ID"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/messages/{messageID}/export/xlsx [get]
func (h *ChatHandler) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	messageID := chi.URLParam(r, "messageID")

	msg, err := h.chat.GetMessage(r.Context(), conversationID, messageID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="Data_%s.xlsx"`, messageID))
	if err := h.export.WriteWorkbook(msg.Content, w); err != nil {
		// Headers are already written; all we can do is log.
		slog.Error("Failed to stream workbook", "message_id", messageID, "error", err)
	}
}
