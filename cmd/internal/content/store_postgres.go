package content

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgForeignKeyViolation is the SQLSTATE raised when a reply references a
// missing post.
const pgForeignKeyViolation = "23503"

// PostgresStore implements Store using PostgreSQL (posts, replies, blogs).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed content store.
// Ownership model: the caller owns the pool lifecycle; Close is a no-op.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("content: nil db pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the store (noop; pool is owned by the app).
func (s *PostgresStore) Close() error { return nil }

// InitSchema creates the backing tables if absent.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			message TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS replies (
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT NOT NULL,
			message TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			CONSTRAINT fk_post
			  FOREIGN KEY(post_id)
			  REFERENCES posts(id)
			  ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`,
	}

	for _, q := range stmts {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// CreatePost inserts a daily-routine post.
func (s *PostgresStore) CreatePost(ctx context.Context, message string, now time.Time) (Post, error) {
	ts := stamp(now)

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO posts (message, timestamp) VALUES ($1, $2) RETURNING id
	`, message, ts).Scan(&id)
	if err != nil {
		return Post{}, err
	}

	return Post{ID: id, Message: message, Timestamp: ts, Replies: []Reply{}}, nil
}

// CreateReply inserts a reply; a missing post maps to ErrPostNotFound.
func (s *PostgresStore) CreateReply(ctx context.Context, postID int64, message string, now time.Time) (Reply, error) {
	ts := stamp(now)

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO replies (post_id, message, timestamp) VALUES ($1, $2, $3) RETURNING id
	`, postID, message, ts).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Reply{}, ErrPostNotFound
		}
		return Reply{}, err
	}

	return Reply{ID: id, PostID: postID, Message: message, Timestamp: ts}, nil
}

// ListPosts returns posts newest-first with replies attached oldest-first.
// One query per table; replies are joined in memory.
func (s *PostgresStore) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, message, timestamp FROM posts ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	index := make(map[int64]int)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Message, &p.Timestamp); err != nil {
			return nil, err
		}
		p.Replies = []Reply{}
		index[p.ID] = len(posts)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	replyRows, err := s.pool.Query(ctx, `
		SELECT id, post_id, message, timestamp FROM replies ORDER BY post_id, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var r Reply
		if err := replyRows.Scan(&r.ID, &r.PostID, &r.Message, &r.Timestamp); err != nil {
			return nil, err
		}
		if i, ok := index[r.PostID]; ok {
			posts[i].Replies = append(posts[i].Replies, r)
		}
	}
	if err := replyRows.Err(); err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []Post{}
	}
	return posts, nil
}

// CreateBlog inserts a blog entry.
func (s *PostgresStore) CreateBlog(ctx context.Context, title, category, body string, now time.Time) (Blog, error) {
	ts := stamp(now)

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, category, content, timestamp) VALUES ($1, $2, $3, $4) RETURNING id
	`, title, category, body, ts).Scan(&id)
	if err != nil {
		return Blog{}, err
	}

	return Blog{ID: id, Title: title, Category: category, Content: body, Timestamp: ts}, nil
}

// ListBlogs returns blogs newest-first.
func (s *PostgresStore) ListBlogs(ctx context.Context) ([]Blog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, category, content, timestamp FROM blogs ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var b Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Category, &b.Content, &b.Timestamp); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// UpdateBlog overwrites an existing blog entry.
func (s *PostgresStore) UpdateBlog(ctx context.Context, id int64, title, category, body string, now time.Time) (Blog, error) {
	ts := stamp(now)

	tag, err := s.pool.Exec(ctx, `
		UPDATE blogs SET title = $1, category = $2, content = $3, timestamp = $4 WHERE id = $5
	`, title, category, body, ts, id)
	if err != nil {
		return Blog{}, err
	}
	if tag.RowsAffected() == 0 {
		return Blog{}, ErrBlogNotFound
	}

	return Blog{ID: id, Title: title, Category: category, Content: body, Timestamp: ts}, nil
}

// DeleteBlog removes a blog entry. Deleting an absent id is not an error.
func (s *PostgresStore) DeleteBlog(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	return err
}

var _ Store = (*PostgresStore)(nil)
