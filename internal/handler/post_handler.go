package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"blogapi/internal/models"
	"blogapi/internal/service"
)

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func (req postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Status:  req.Status,
		Tags:    req.Tags,
	}
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	filter := models.PostFilter{
		Tag:    strings.TrimSpace(r.URL.Query().Get("tag")),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	page, err := h.PostService.ListPublished(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success:     true,
		Count:       intPtr(len(page.Posts)),
		Total:       intPtr(page.Total),
		TotalPages:  intPtr(page.TotalPages),
		CurrentPage: intPtr(page.CurrentPage),
		Data:        page.Posts,
	})
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID, viewerFromContext(r.Context()))
	if err != nil {
		writePostError(w, err, "view")
		return
	}

	WriteJSON(w, http.StatusOK, Response{Success: true, Data: post})
}

func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.ListByAuthor(r.Context(), identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Count:   intPtr(len(posts)),
		Data:    posts,
	})
}

func (h *Handlers) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListAll(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Count:   intPtr(len(posts)),
		Data:    posts,
	})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req postRequest
	if !h.bind(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), identity, req.toInput())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req postRequest
	if !h.bind(w, r, &req) {
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), identity, postID, req.toInput())
	if err != nil {
		writePostError(w, err, "update")
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Post updated successfully",
		Data:    post,
	})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), identity, postID); err != nil {
		writePostError(w, err, "delete")
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Post deleted successfully",
		Data:    struct{}{},
	})
}
