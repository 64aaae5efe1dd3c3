// handlers/submit.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"quote-generator-api/models"
	"quote-generator-api/services/forwarder"
	"quote-generator-api/services/webhook"
	"quote-generator-api/utils"
)

type SubmitHandler struct {
	store       *webhook.Store
	forwarder   *forwarder.Forwarder
	feedbackURL string
	logger      *slog.Logger
}

func NewSubmitHandler(store *webhook.Store, fwd *forwarder.Forwarder, feedbackURL string, logger *slog.Logger) *SubmitHandler {
	return &SubmitHandler{
		store:       store,
		forwarder:   fwd,
		feedbackURL: feedbackURL,
		logger:      logger,
	}
}

// SubmitQuote relays the flattened quote to the session's webhook. Once a
// webhook is configured the caller always gets a success reply; upstream
// failures are only logged.
// TODO: revisit the masking with product; callers cannot tell a lost quote
// from a delivered one.
func (h *SubmitHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	target, err := h.store.Get(r)
	if err != nil {
		if errors.Is(err, webhook.ErrWebhookNotFound) {
			utils.SendErrorResponse(w, http.StatusBadRequest, "No webhook URL configured")
			return
		}
		h.logger.Error("failed to load webhook URL", "error", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load webhook URL")
		return
	}

	values, err := submissionValues(w, r)
	if err != nil {
		h.logger.Warn("failed to decode quote submission", "error", err)
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The outcome never changes the reply, so a client hanging up must not
	// abort the relay.
	ctx := context.WithoutCancel(r.Context())
	if err := h.forwarder.Forward(ctx, target, values); err != nil {
		h.logger.Error("error submitting quote to webhook", "error", err, "fields", len(values))
	} else {
		h.logger.Info("quote submitted", "fields", len(values))
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Message: "Quote submitted successfully",
	})
}

// SubmitFeedback relays the feedback form to the fixed feedback webhook. No
// session webhook is needed and the reply is always a success.
func (h *SubmitHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	values, err := submissionValues(w, r)
	if err != nil {
		h.logger.Warn("failed to decode feedback", "error", err)
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fb := models.FeedbackFromValues(values)

	ctx := context.WithoutCancel(r.Context())
	if err := h.forwarder.Forward(ctx, h.feedbackURL, fb.Values()); err != nil {
		h.logger.Error("error submitting feedback", "error", err)
	} else {
		h.logger.Info("feedback submitted")
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Message: "Feedback submitted successfully",
	})
}
