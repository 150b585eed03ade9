package handlers

import (
	"log"
	"net/http"
)

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		log.Printf("health check failed: %v", err)
		WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	WriteJSON(w, http.StatusOK, Response{Success: true, Message: "OK"})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Route not found", http.StatusNotFound)
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
