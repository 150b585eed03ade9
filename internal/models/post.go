package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const (
	wordsPerMinute = 200
	excerptRunes   = 150
	excerptSuffix  = "..."
)

type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	PostID    string         `json:"id" db:"post_id"`
	AuthorID  string         `json:"-" db:"author_id"`
	Author    *Author        `json:"author,omitempty" db:"-"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Excerpt   string         `json:"excerpt" db:"excerpt"`
	Status    string         `json:"status" db:"status"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	ReadTime  int            `json:"readTime" db:"read_time"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
	Images    []Image        `json:"images,omitempty" db:"-"`
}

// PostFilter selects a page of published posts.
type PostFilter struct {
	Tag    string
	Search string
	Page   int
	Limit  int
}

func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type PostPage struct {
	Posts       []Post
	Total       int
	TotalPages  int
	CurrentPage int
}

// ReadTime estimates minutes to read content at 200 words per minute, never less than one.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns the first 150 runes of content followed by "...".
// The cut ignores word boundaries; the suffix is added even to short content.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + excerptSuffix
}

// Derive recomputes the fields that depend on content. It must run before every write.
func (p *Post) Derive() {
	p.ReadTime = ReadTime(p.Content)
	if strings.TrimSpace(p.Excerpt) == "" {
		p.Excerpt = Excerpt(p.Content)
	}
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}
}

// NormalizeTags trims entries, drops empty ones and removes duplicates keeping the first occurrence.
func NormalizeTags(tags []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
