// handlers/preview.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"quote-generator-api/models"
	"quote-generator-api/services/quote"
	"quote-generator-api/utils"
)

type PreviewHandler struct {
	pdf    *quote.PDFGenerator
	logger *slog.Logger
}

func NewPreviewHandler(pdf *quote.PDFGenerator, logger *slog.Logger) *PreviewHandler {
	return &PreviewHandler{pdf: pdf, logger: logger}
}

// Preview builds the quote from the raw form and returns the rendered HTML
// together with the payload a submission would carry.
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	q, ok := h.buildQuote(w, r)
	if !ok {
		return
	}

	utils.SendJSON(w, http.StatusOK, models.PreviewResponse{
		Success: true,
		HTML:    quote.Render(q),
		Payload: quote.Flatten(q),
	})
}

func (h *PreviewHandler) PreviewPDF(w http.ResponseWriter, r *http.Request) {
	q, ok := h.buildQuote(w, r)
	if !ok {
		return
	}

	doc, err := h.pdf.Generate(q)
	if err != nil {
		h.logger.Error("failed to generate quote pdf", "error", err, "quote_id", q.QuoteID)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename(q.QuoteID)))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func (h *PreviewHandler) buildQuote(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	var form quote.Form
	if err := decodeJSON(w, r, &form); err != nil {
		h.logger.Warn("failed to decode quote form", "error", err)
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return quote.Quote{}, false
	}
	return quote.Build(form), true
}

func pdfFilename(quoteID string) string {
	safe := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return r
		}
		return -1
	}, quoteID)
	if safe == "" {
		return "quote.pdf"
	}
	return "quote-" + safe + ".pdf"
}
