package service

import (
	"slices"

	"blogapi/internal/models"
)

// CanView reports whether viewer may read post. A nil viewer is an anonymous caller.
// Drafts are readable by their author only; admins get no exception here.
func CanView(post *models.Post, viewer *models.Identity) bool {
	if post.Status == models.StatusPublished {
		return true
	}
	return viewer != nil && viewer.UserID == post.AuthorID
}

// CanModify reports whether caller may update or delete post.
func CanModify(post *models.Post, caller models.Identity) bool {
	return caller.UserID == post.AuthorID || caller.IsAdmin()
}

func RoleAllowed(role string, allowed ...string) bool {
	return slices.Contains(allowed, role)
}
