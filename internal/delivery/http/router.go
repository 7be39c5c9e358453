package http

import (
	"net/http"
)

// NewRouter wires the read-only results API.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /results/getAll", h.GetAll)
	mux.HandleFunc("GET /results/search", h.Search)
	return mux
}
