package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"blogapi/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// room for multipart boundaries and headers on top of the file itself
const multipartOverhead = 1 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func (h *Handlers) uploadLimitMessage() string {
	return fmt.Sprintf("Image exceeds the %s upload limit", humanize.IBytes(uint64(h.Cfg.MaxUploadSize)))
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, h.uploadLimitMessage(), http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeValidationErrors(w, []FieldError{{Field: "image", Message: "Image file is required"}})
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxUploadSize {
		WriteError(w, h.uploadLimitMessage(), http.StatusRequestEntityTooLarge)
		return
	}

	// the declared part header is not trusted, the bytes decide
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		WriteError(w, "Could not read image", http.StatusBadRequest)
		return
	}
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		writeValidationErrors(w, []FieldError{{Field: "image", Message: "Only JPEG, PNG, GIF and WebP images are allowed"}})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		log.Printf("rewind upload: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), identity, postID, service.ImageUpload{
		FileName:    header.Filename,
		ContentType: mtype.String(),
		Size:        header.Size,
		File:        file,
	})
	if err != nil {
		writePostError(w, err, "update")
		return
	}

	WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Image uploaded successfully",
		Data:    image,
	})
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	imageID, ok := h.pathID(w, r, "imageId")
	if !ok {
		return
	}

	if err := h.PostService.DeleteImage(r.Context(), identity, postID, imageID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			WriteError(w, "Post or image not found", http.StatusNotFound)
			return
		}
		writePostError(w, err, "update")
		return
	}

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Image deleted successfully",
		Data:    struct{}{},
	})
}
