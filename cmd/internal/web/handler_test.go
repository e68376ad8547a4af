package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"portfolio/cmd/identity"
	"portfolio/cmd/internal/auth/account"
	"portfolio/cmd/internal/auth/session"
	"portfolio/cmd/internal/content"
	"portfolio/cmd/security/password"
)

type fixture struct {
	mux   *http.ServeMux
	guard *session.Guard
	codec *session.Codec
	store content.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher := password.DefaultConfig()
	hasher.Params.Iterations = 10_000

	creds := identity.NewMemoryStore(hasher, identity.Defaults{Username: "arjun", Password: "arjun"})
	if err := creds.EnsureSeeded(context.Background(), time.Now().UTC()); err != nil {
		t.Fatalf("EnsureSeeded: %v", err)
	}

	cfg := session.DefaultConfig()
	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	codec := session.NewCodec(cfg.Secret)
	guard := session.NewGuard(log, cfg, codec, creds)
	acct := account.NewService(log, hasher, creds, codec)

	store := content.NewMemoryStore()
	h, err := NewHandler(log, guard, acct, creds, store)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mux := http.NewServeMux()
	h.Register(mux)
	return fixture{mux: mux, guard: guard, codec: codec, store: store}
}

func (f fixture) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, r)
	return rr
}

func (f fixture) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, r)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "admin_auth" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("response did not set the admin_auth cookie")
	return nil
}

func TestPublicPages(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if rr := f.get("/", nil); rr.Code != http.StatusTemporaryRedirect || rr.Header().Get("Location") != "/about" {
		t.Fatalf("home: status %d location %q", rr.Code, rr.Header().Get("Location"))
	}

	for _, path := range []string{"/about", "/resume", "/blog", "/contact", "/daily-routine", "/login"} {
		rr := f.get(path, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("GET %s: content-type %q", path, ct)
		}
	}
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	// Wrong password: re-rendered form, no cookie.
	rr := f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"wrong"}}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid username or password.") {
		t.Fatalf("bad login must render the generic error")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("bad login must not set a cookie")
	}

	// Correct credentials: redirect plus session cookie.
	rr = f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"arjun"}}, nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/admin/settings" {
		t.Fatalf("login: status %d location %q", rr.Code, rr.Header().Get("Location"))
	}
	cookie := sessionCookie(t, rr)
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.MaxAge != 86400 {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}

	// Logged-in admins skip the login form.
	if rr := f.get("/login", cookie); rr.Code != http.StatusSeeOther {
		t.Fatalf("login page while admin: status %d, want 303", rr.Code)
	}

	// Logout clears the cookie and sends the visitor home.
	rr = f.get("/logout", cookie)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/about" {
		t.Fatalf("logout: status %d location %q", rr.Code, rr.Header().Get("Location"))
	}
	cleared := rr.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("logout must expire the cookie: %+v", cleared)
	}
}

func TestSettingsRequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if rr := f.get("/admin/settings", nil); rr.Code != http.StatusForbidden {
		t.Fatalf("settings without cookie: status %d, want 403", rr.Code)
	}
	if rr := f.postForm("/admin/account", url.Values{"current_password": {"arjun"}}, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("account update without cookie: status %d, want 403", rr.Code)
	}

	rr := f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"arjun"}}, nil)
	cookie := sessionCookie(t, rr)

	if rr := f.get("/admin/settings", cookie); rr.Code != http.StatusOK {
		t.Fatalf("settings with cookie: status %d", rr.Code)
	}
}

func TestAccountUpdate_EndToEnd(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rr := f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"arjun"}}, nil)
	oldCookie := sessionCookie(t, rr)

	// Validation failures re-render the form without mutating state.
	cases := []struct {
		form   url.Values
		status int
		msg    string
	}{
		{
			url.Values{"new_username": {"ab"}, "current_password": {"arjun"}},
			http.StatusBadRequest, "Username must be at least 3 characters.",
		},
		{
			url.Values{"current_password": {"wrong"}},
			http.StatusUnauthorized, "Current password is incorrect.",
		},
		{
			url.Values{"current_password": {"arjun"}, "new_password": {"secret6"}},
			http.StatusBadRequest, "Enter and confirm new password to change it.",
		},
		{
			url.Values{"current_password": {"arjun"}, "new_password": {"five!"}, "confirm_password": {"five!"}},
			http.StatusBadRequest, "New password must be at least 6 characters.",
		},
		{
			url.Values{"current_password": {"arjun"}, "new_password": {"secret6"}, "confirm_password": {"secret7"}},
			http.StatusBadRequest, "New password and confirm password do not match.",
		},
	}
	for _, tc := range cases {
		rr := f.postForm("/admin/account", tc.form, oldCookie)
		if rr.Code != tc.status || !strings.Contains(rr.Body.String(), tc.msg) {
			t.Fatalf("form %v: status %d body lacks %q", tc.form, rr.Code, tc.msg)
		}
	}

	// The old credentials still work after all those failures.
	rr = f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"arjun"}}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("credentials must be unchanged after failed updates")
	}

	// Successful rotation: new username and password, fresh cookie.
	rr = f.postForm("/admin/account", url.Values{
		"current_password": {"arjun"},
		"new_username":     {"admin2"},
		"new_password":     {"secret6"},
		"confirm_password": {"secret6"},
	}, oldCookie)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Admin credentials updated successfully.") {
		t.Fatalf("account update: status %d body %s", rr.Code, rr.Body)
	}
	newCookie := sessionCookie(t, rr)

	// The old token is dead; the new one works.
	if rr := f.get("/admin/settings", oldCookie); rr.Code != http.StatusForbidden {
		t.Fatalf("old token after rename: status %d, want 403", rr.Code)
	}
	if rr := f.get("/admin/settings", newCookie); rr.Code != http.StatusOK {
		t.Fatalf("new token after rename: status %d", rr.Code)
	}

	// And the new credentials log in.
	rr = f.postForm("/login", url.Values{"username": {"admin2"}, "password": {"secret6"}}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login with rotated credentials: status %d", rr.Code)
	}
	rr = f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"arjun"}}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("login with stale credentials: status %d, want 401", rr.Code)
	}
}

func (f fixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	rr := f.postForm("/login", url.Values{"username": {"arjun"}, "password": {"arjun"}}, nil)
	return sessionCookie(t, rr)
}

func TestPagesCarryClientScript(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rr := f.get("/contact", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("contact page: status %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `src="/static/script.js"`) {
		t.Fatalf("contact page must include the client script")
	}
	if !strings.Contains(body, "data-form") {
		t.Fatalf("contact form is missing the submit hook")
	}
	if !strings.Contains(body, `data-is-admin="false"`) {
		t.Fatalf("anonymous page must carry the admin flag as false")
	}

	cookie := f.login(t)
	if body := f.get("/contact", cookie).Body.String(); !strings.Contains(body, `data-is-admin="true"`) {
		t.Fatalf("admin page must carry the admin flag as true")
	}
}

func TestAdminFormsRenderOnlyForAdmins(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	now := time.Now().UTC()

	if _, err := f.store.CreateBlog(context.Background(), "First", "go", "body", now); err != nil {
		t.Fatalf("CreateBlog: %v", err)
	}
	post, err := f.store.CreatePost(context.Background(), "morning run", now)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	// Anonymous visitors see content only.
	body := f.get("/blog", nil).Body.String()
	if strings.Contains(body, "data-blog-form") || strings.Contains(body, "data-edit") {
		t.Fatalf("blog admin controls leaked to anonymous visitor")
	}
	body = f.get("/daily-routine", nil).Body.String()
	if strings.Contains(body, "data-post-form") || strings.Contains(body, "data-reply-form") {
		t.Fatalf("routine admin controls leaked to anonymous visitor")
	}

	cookie := f.login(t)

	body = f.get("/blog", cookie).Body.String()
	for _, hook := range []string{"data-blog-form", "data-blog-btn", `data-edit="1"`, `data-delete="1"`} {
		if !strings.Contains(body, hook) {
			t.Fatalf("admin blog page missing %q", hook)
		}
	}

	body = f.get("/daily-routine", cookie).Body.String()
	for _, hook := range []string{
		"data-post-form",
		`data-reply-toggle="` + strconv.FormatInt(post.ID, 10) + `"`,
		`data-reply-form="` + strconv.FormatInt(post.ID, 10) + `"`,
	} {
		if !strings.Contains(body, hook) {
			t.Fatalf("admin routine page missing %q", hook)
		}
	}
}

func TestAuthFormsCarryValidationHook(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if body := f.get("/login", nil).Body.String(); !strings.Contains(body, "data-auth-form") {
		t.Fatalf("login form is missing the validation hook")
	}

	cookie := f.login(t)
	if body := f.get("/admin/settings", cookie).Body.String(); !strings.Contains(body, "data-auth-form") {
		t.Fatalf("settings form is missing the validation hook")
	}
}
