package handlers

import (
	"net/http"

	"blogapi/internal/models"
	"blogapi/internal/service"
)

type AuthData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.bind(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    AuthData{Token: token, User: user},
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.bind(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    AuthData{Token: token, User: user},
	})
}

// Logout is stateless; the client drops its token.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Logged out successfully",
		Data:    struct{}{},
	})
}
