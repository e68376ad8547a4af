package content

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a dev-only fallback when DB is not configured.
// It preserves the same ordering contract as the Postgres store.
type MemoryStore struct {
	mu       sync.Mutex
	postSeq  int64
	replySeq int64
	blogSeq  int64
	posts    []Post // insertion order
	blogs    []Blog // insertion order
}

// NewMemoryStore constructs an in-memory content store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Close closes the store (noop for in-memory).
func (s *MemoryStore) Close() error { return nil }

// CreatePost appends a daily-routine post.
func (s *MemoryStore) CreatePost(ctx context.Context, message string, now time.Time) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.postSeq++
	p := Post{
		ID:        s.postSeq,
		Message:   message,
		Timestamp: stamp(now),
		Replies:   []Reply{},
	}
	s.posts = append(s.posts, p)
	return p, nil
}

// CreateReply appends a reply to an existing post.
func (s *MemoryStore) CreateReply(ctx context.Context, postID int64, message string, now time.Time) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		s.replySeq++
		r := Reply{
			ID:        s.replySeq,
			PostID:    postID,
			Message:   message,
			Timestamp: stamp(now),
		}
		s.posts[i].Replies = append(s.posts[i].Replies, r)
		return r, nil
	}

	return Reply{}, ErrPostNotFound
}

// ListPosts returns posts newest-first; replies stay oldest-first.
func (s *MemoryStore) ListPosts(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		p := s.posts[i]
		p.Replies = append([]Reply{}, p.Replies...)
		out = append(out, p)
	}
	return out, nil
}

// CreateBlog appends a blog entry.
func (s *MemoryStore) CreateBlog(ctx context.Context, title, category, body string, now time.Time) (Blog, error) {
	if err := ctx.Err(); err != nil {
		return Blog{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blogSeq++
	b := Blog{
		ID:        s.blogSeq,
		Title:     title,
		Category:  category,
		Content:   body,
		Timestamp: stamp(now),
	}
	s.blogs = append(s.blogs, b)
	return b, nil
}

// ListBlogs returns blogs newest-first.
func (s *MemoryStore) ListBlogs(ctx context.Context) ([]Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Blog, 0, len(s.blogs))
	for i := len(s.blogs) - 1; i >= 0; i-- {
		out = append(out, s.blogs[i])
	}
	return out, nil
}

// UpdateBlog overwrites an existing blog entry.
func (s *MemoryStore) UpdateBlog(ctx context.Context, id int64, title, category, body string, now time.Time) (Blog, error) {
	if err := ctx.Err(); err != nil {
		return Blog{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.blogs {
		if s.blogs[i].ID != id {
			continue
		}
		s.blogs[i].Title = title
		s.blogs[i].Category = category
		s.blogs[i].Content = body
		s.blogs[i].Timestamp = stamp(now)
		return s.blogs[i], nil
	}

	return Blog{}, ErrBlogNotFound
}

// DeleteBlog removes a blog entry. Deleting an absent id is not an error.
func (s *MemoryStore) DeleteBlog(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.blogs {
		if s.blogs[i].ID == id {
			s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
			return nil
		}
	}
	return nil
}
