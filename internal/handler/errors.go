package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"blogapi/internal/repository"
	"blogapi/internal/service"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the envelope shared by every endpoint.
type Response struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	Data        any          `json:"data,omitempty"`
	Errors      []FieldError `json:"errors,omitempty"`
	Count       *int         `json:"count,omitempty"`
	Total       *int         `json:"total,omitempty"`
	TotalPages  *int         `json:"totalPages,omitempty"`
	CurrentPage *int         `json:"currentPage,omitempty"`
}

func intPtr(n int) *int {
	return &n
}

func WriteJSON(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, Response{Success: false, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, Response{Success: false, Errors: errs})
}

// WriteServiceError maps service and repository sentinels to a status code.
// Anything unrecognised is logged and reported as a generic 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Resource not found", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Not authorized to access this resource", http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, repository.ErrInvalidReference):
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
	case errors.Is(err, service.ErrConflict):
		WriteError(w, "User already exists", http.StatusConflict)
	default:
		log.Printf("internal error: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
	}
}

// writePostError words not-found and forbidden for the post being acted on.
func writePostError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, fmt.Sprintf("Not authorized to %s this post", action), http.StatusForbidden)
	default:
		WriteServiceError(w, err)
	}
}
