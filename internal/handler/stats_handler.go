package handlers

import (
	"net/http"
)

func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}
