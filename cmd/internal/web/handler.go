// Package web serves the HTML surface of the portfolio: the public pages and
// the admin login/settings forms.
//
// Every page render carries the admin probe (IsAdmin) so templates can show
// the right navigation without handlers special-casing it.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio/cmd/identity"
	"portfolio/cmd/internal/auth/account"
	"portfolio/cmd/internal/auth/session"
	"portfolio/cmd/internal/content"
)

// Handler wires the HTML routes.
type Handler struct {
	log     *slog.Logger
	rend    *renderer
	guard   *session.Guard
	account *account.Service
	creds   identity.Store
	store   content.Store
}

// NewHandler constructs the web handler; it fails only on broken templates.
func NewHandler(log *slog.Logger, guard *session.Guard, acct *account.Service, creds identity.Store, store content.Store) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	rend, err := newRenderer(log)
	if err != nil {
		return nil, err
	}
	return &Handler{log: log, rend: rend, guard: guard, account: acct, creds: creds, store: store}, nil
}

// Register wires HTML routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("GET /about", h.handlePage("about", "About"))
	mux.HandleFunc("GET /resume", h.handlePage("resume", "Resume"))
	mux.HandleFunc("GET /contact", h.handlePage("contact", "Contact"))
	mux.HandleFunc("GET /blog", h.handleBlog)
	mux.HandleFunc("GET /daily-routine", h.handleDailyRoutine)

	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("GET /logout", h.handleLogout)

	mux.HandleFunc("GET /admin/settings", h.handleSettingsPage)
	mux.HandleFunc("POST /admin/account", h.handleAccountUpdate)
}

// base fills the fields common to every page.
func (h *Handler) base(r *http.Request, page, title string) pageData {
	return pageData{
		Title:      title,
		ActivePage: page,
		IsAdmin:    h.guard.IsAdmin(r),
	}
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/about", http.StatusTemporaryRedirect)
}

func (h *Handler) handlePage(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.rend.render(w, http.StatusOK, page, h.base(r, page, title))
	}
}

func (h *Handler) handleBlog(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.store.ListBlogs(r.Context())
	if err != nil {
		h.log.Error("web.blog.list.fail", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := h.base(r, "blog", "Blog")
	data.Blogs = blogs
	h.rend.render(w, http.StatusOK, "blog", data)
}

func (h *Handler) handleDailyRoutine(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.log.Error("web.routine.list.fail", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := h.base(r, "daily", "Daily Routine")
	data.Posts = posts
	h.rend.render(w, http.StatusOK, "daily-routine", data)
}

// renderLogin builds the login page; the current admin username is shown as a
// hint on the form.
func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string, status int) {
	data := h.base(r, "login", "Admin Login")
	data.Error = errMsg
	if cred, err := h.creds.Get(r.Context()); err == nil {
		data.AdminUsername = cred.Username
	}
	h.rend.render(w, status, "login", data)
}

func (h *Handler) renderSettings(w http.ResponseWriter, r *http.Request, errMsg, success string, status int) {
	data := h.base(r, "settings", "Admin Settings")
	data.Error = errMsg
	data.Success = success
	if cred, err := h.creds.Get(r.Context()); err == nil {
		data.AdminUsername = cred.Username
	}
	h.rend.render(w, status, "admin-settings", data)
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.guard.IsAdmin(r) {
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, "", http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, "Invalid username or password.", http.StatusUnauthorized)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	pass := r.PostFormValue("password")

	tok, err := h.account.Login(r.Context(), username, pass, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, account.ErrInvalidCredentials) {
			h.log.Error("web.login.fail", "err", err)
		}
		h.renderLogin(w, r, "Invalid username or password.", http.StatusUnauthorized)
		return
	}

	h.guard.SetCookie(w, tok)
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.guard.ClearCookie(w)
	http.Redirect(w, r, "/about", http.StatusSeeOther)
}

func (h *Handler) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.RequireAdmin(r); err != nil {
		http.Error(w, "Admin login required.", http.StatusForbidden)
		return
	}
	h.renderSettings(w, r, "", "", http.StatusOK)
}

func (h *Handler) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.RequireAdmin(r); err != nil {
		http.Error(w, "Admin login required.", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderSettings(w, r, "Invalid form submission.", "", http.StatusBadRequest)
		return
	}

	in := account.UpdateInput{
		CurrentPassword: r.PostFormValue("current_password"),
		NewUsername:     strings.TrimSpace(r.PostFormValue("new_username")),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	tok, err := h.account.Update(r.Context(), in, time.Now().UTC())
	if err != nil {
		msg, status := updateErrorPresentation(err)
		if status == http.StatusInternalServerError {
			h.log.Error("web.account.update.fail", "err", err)
		}
		h.renderSettings(w, r, msg, "", status)
		return
	}

	// The fresh cookie binds the (possibly renamed) admin; the old token is
	// already dead if the username changed.
	h.guard.SetCookie(w, tok)
	h.renderSettings(w, r, "", "Admin credentials updated successfully.", http.StatusOK)
}

// updateErrorPresentation maps account errors onto form messages and statuses.
// The wording matches what the settings form has always shown.
func updateErrorPresentation(err error) (string, int) {
	switch {
	case errors.Is(err, account.ErrUsernameTooShort):
		return "Username must be at least 3 characters.", http.StatusBadRequest
	case errors.Is(err, account.ErrCurrentPasswordIncorrect):
		return "Current password is incorrect.", http.StatusUnauthorized
	case errors.Is(err, account.ErrConfirmationRequired):
		return "Enter and confirm new password to change it.", http.StatusBadRequest
	case errors.Is(err, account.ErrPasswordTooShort):
		return "New password must be at least 6 characters.", http.StatusBadRequest
	case errors.Is(err, account.ErrPasswordMismatch):
		return "New password and confirm password do not match.", http.StatusBadRequest
	default:
		return "Something went wrong. Please try again.", http.StatusInternalServerError
	}
}
