// handlers/webhook.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"quote-generator-api/models"
	"quote-generator-api/services/webhook"
	"quote-generator-api/utils"
)

type WebhookHandler struct {
	store  *webhook.Store
	logger *slog.Logger
}

func NewWebhookHandler(store *webhook.Store, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{store: store, logger: logger}
}

func (h *WebhookHandler) SetWebhook(w http.ResponseWriter, r *http.Request) {
	var req models.WebhookRequest
	if isFormRequest(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			h.logger.Warn("failed to parse webhook form", "error", err)
			utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid webhook URL format")
			return
		}
		req.WebhookURL = r.PostForm.Get("webhook_url")
	} else if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode webhook request", "error", err)
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid webhook URL format")
		return
	}

	if err := h.store.Set(w, r, req.WebhookURL); err != nil {
		if errors.Is(err, webhook.ErrInvalidWebhookURL) {
			utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid webhook URL format")
			return
		}
		h.logger.Error("failed to save webhook URL", "error", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to save webhook URL")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Message: "Webhook URL saved successfully",
	})
}

func (h *WebhookHandler) GetWebhook(w http.ResponseWriter, r *http.Request) {
	url, err := h.store.Get(r)
	if err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) {
			utils.SendErrorResponse(w, http.StatusNotFound, "No webhook URL found in session")
			return
		}
		h.logger.Error("failed to load webhook URL", "error", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load webhook URL")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{WebhookURL: url})
}

func (h *WebhookHandler) ClearWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(w, r); err != nil {
		h.logger.Error("failed to clear webhook URL", "error", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to clear webhook URL")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Message: "Webhook URL cleared",
	})
}
