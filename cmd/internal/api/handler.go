// Package api exposes the JSON surface of the portfolio server: daily-routine
// posts and replies, blog CRUD, and the contact form.
//
// Every mutating route is guarded; the admin check runs before any decode or
// database work.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"portfolio/cmd/internal/auth/session"
	"portfolio/cmd/internal/content"
	"portfolio/cmd/internal/mail"
)

// Handler wires JSON endpoints to the content store and mail sink.
type Handler struct {
	log      *slog.Logger
	store    content.Store
	guard    *session.Guard
	mailer   mail.Sender
	validate *validator.Validate

	maxBodyBytes int64
}

// NewHandler constructs an API handler.
func NewHandler(log *slog.Logger, store content.Store, guard *session.Guard, mailer mail.Sender) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if mailer == nil {
		mailer = mail.NoopSender{}
	}
	return &Handler{
		log:          log,
		store:        store,
		guard:        guard,
		mailer:       mailer,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxBodyBytes: 1 << 20,
	}
}

// Register wires API routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/routine/post", h.handleCreatePost)
	mux.HandleFunc("POST /api/routine/reply/{id}", h.handleCreateReply)
	mux.HandleFunc("GET /api/routine/posts", h.handleListPosts)
	mux.HandleFunc("GET /api/blogs", h.handleListBlogs)
	mux.HandleFunc("POST /api/blogs", h.handleCreateBlog)
	mux.HandleFunc("PUT /api/blogs/{id}", h.handleUpdateBlog)
	mux.HandleFunc("DELETE /api/blogs/{id}", h.handleDeleteBlog)
	mux.HandleFunc("POST /api/contact", h.handleContact)
}

// requireAdmin aborts the request with 403 when it is not authenticated.
// It must run before any decode or store call on privileged routes.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := h.guard.RequireAdmin(r); err != nil {
		writeError(w, http.StatusForbidden, "unauthorized", "Admin login required.")
		return false
	}
	return true
}

func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, h.maxBodyBytes, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request fields")
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req postRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	post, err := h.store.CreatePost(r.Context(), req.Message, time.Now())
	if err != nil {
		h.log.Error("api.post.create.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not save post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *Handler) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid post id")
		return
	}

	var req replyRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	reply, err := h.store.CreateReply(r.Context(), id, req.Message, time.Now())
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "post_not_found", "post does not exist")
			return
		}
		h.log.Error("api.reply.create.fail", "err", err, "post_id", id)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not save reply")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.log.Error("api.posts.list.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not load posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.store.ListBlogs(r.Context())
	if err != nil {
		h.log.Error("api.blogs.list.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not load blogs")
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (h *Handler) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req blogRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	blog, err := h.store.CreateBlog(r.Context(), req.Title, req.Category, req.Content, time.Now())
	if err != nil {
		h.log.Error("api.blog.create.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not save blog")
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid blog id")
		return
	}

	var req blogRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	blog, err := h.store.UpdateBlog(r.Context(), id, req.Title, req.Category, req.Content, time.Now())
	if err != nil {
		if errors.Is(err, content.ErrBlogNotFound) {
			writeError(w, http.StatusNotFound, "blog_not_found", "blog does not exist")
			return
		}
		h.log.Error("api.blog.update.fail", "err", err, "blog_id", id)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not update blog")
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid blog id")
		return
	}

	if err := h.store.DeleteBlog(r.Context(), id); err != nil {
		h.log.Error("api.blog.delete.fail", "err", err, "blog_id", id)
		writeError(w, http.StatusInternalServerError, "storage_error", "could not delete blog")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Blog deleted successfully!"})
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	err := h.mailer.Send(r.Context(), mail.Message{
		FullName: req.FullName,
		Email:    req.Email,
		Body:     req.Message,
	})
	if err != nil {
		h.log.Error("api.contact.send.fail", "err", err)
		writeJSON(w, http.StatusOK, statusResponse{
			Status:  "error",
			Message: "Failed to send email. Please try again.",
		})
		return
	}

	h.log.Info("api.contact.sent", "from", req.Email)
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Email sent successfully!"})
}
