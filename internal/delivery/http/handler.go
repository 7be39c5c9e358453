package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/larriantoniy/ocrspace/internal/useCases"
)

// Handler exposes stored recognitions over HTTP.
type Handler struct {
	recognition *useCases.RecognitionService
	logger      *slog.Logger
}

// NewHandler creates a Handler backed by the recognition service.
func NewHandler(recognition *useCases.RecognitionService, logger *slog.Logger) *Handler {
	return &Handler{recognition: recognition, logger: logger}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	data, err := h.recognition.GetAll(r.Context())
	if err != nil {
		h.logger.Error("Get all recognitions failed", "err", err)
		http.Error(w, "Failed to fetch recognitions", http.StatusInternalServerError)
		return
	}
	h.respond(w, data)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "Missing query parameter q", http.StatusBadRequest)
		return
	}
	data, err := h.recognition.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("Search recognitions failed", "query", q, "err", err)
		http.Error(w, "Failed to search recognitions", http.StatusInternalServerError)
		return
	}
	h.respond(w, data)
}

func (h *Handler) respond(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
	}
}
