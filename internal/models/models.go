package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID       string    `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type Image struct {
	ImageID    string    `json:"id" db:"image_id"`
	PostID     string    `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"url" db:"image_url"`
	FileName   string    `json:"fileName" db:"file_name"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	MimeType   string    `json:"mimeType" db:"mime_type"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Counts struct {
	TotalUsers     int `json:"totalUsers" db:"total_users"`
	TotalPosts     int `json:"totalPosts" db:"total_posts"`
	PublishedPosts int `json:"publishedPosts" db:"published_posts"`
	DraftPosts     int `json:"draftPosts" db:"draft_posts"`
}

type Stats struct {
	Counts
	RecentPosts []Post `json:"recentPosts"`
}
