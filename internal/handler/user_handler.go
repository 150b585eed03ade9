package handlers

import (
	"net/http"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

func (h *Handlers) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Count:   intPtr(len(users)),
		Data:    users,
	})
}
