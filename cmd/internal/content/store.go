// Package content stores the public content of the portfolio: daily-routine
// posts with their replies, and blog entries.
//
// Timestamps are RFC3339 strings end to end; the presentation layer renders
// them as-is and the database keeps them as text.
package content

import (
	"context"
	"errors"
	"time"
)

// Public, stable errors for callers.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrBlogNotFound = errors.New("blog not found")
)

// Reply is one reply on a daily-routine post.
type Reply struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"-"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Post is a daily-routine entry with its replies, oldest reply first.
type Post struct {
	ID        int64   `json:"id"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Replies   []Reply `json:"replies"`
}

// Blog is one blog entry.
type Blog struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Store persists portfolio content.
type Store interface {
	CreatePost(ctx context.Context, message string, now time.Time) (Post, error)
	CreateReply(ctx context.Context, postID int64, message string, now time.Time) (Reply, error)
	// ListPosts returns posts newest-first with replies attached oldest-first.
	ListPosts(ctx context.Context) ([]Post, error)

	CreateBlog(ctx context.Context, title, category, body string, now time.Time) (Blog, error)
	// ListBlogs returns blogs newest-first.
	ListBlogs(ctx context.Context) ([]Blog, error)
	UpdateBlog(ctx context.Context, id int64, title, category, body string, now time.Time) (Blog, error)
	DeleteBlog(ctx context.Context, id int64) error

	Close() error
}

// stamp is the canonical timestamp rendering for stored content.
func stamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
