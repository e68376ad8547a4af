package session

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio/cmd/identity"
)

// Guard answers "is this request authenticated as admin" and enforces it.
//
// It composes the credential store (for the current username) with the token
// codec. Privileged handlers must call RequireAdmin before any side effect.
type Guard struct {
	log   *slog.Logger
	cfg   Config
	codec *Codec
	creds identity.Store
}

// NewGuard constructs a Guard.
func NewGuard(log *slog.Logger, cfg Config, codec *Codec, creds identity.Store) *Guard {
	if log == nil {
		log = slog.Default()
	}
	return &Guard{log: log, cfg: cfg, codec: codec, creds: creds}
}

// Authenticate extracts and verifies the bearer cookie.
// On failure it returns the verification reason; callers must not surface it.
func (g *Guard) Authenticate(r *http.Request) (Claims, error) {
	tok, ok := g.tokenFromRequest(r)
	if !ok {
		return Claims{}, ErrUnauthorized
	}

	cred, err := g.creds.Get(r.Context())
	if err != nil {
		return Claims{}, err
	}

	claims, err := g.codec.Verify(tok, cred.Username, g.cfg.MaxAge, time.Now().UTC())
	if err != nil {
		// Reason stays in the logs; the response is a uniform rejection.
		g.log.Debug("auth.token.rejected", "reason", err)
		return Claims{}, err
	}

	return claims, nil
}

// IsAdmin is the boolean probe used when building template contexts.
func (g *Guard) IsAdmin(r *http.Request) bool {
	_, err := g.Authenticate(r)
	return err == nil
}

// RequireAdmin returns ErrUnauthorized for any request not authenticated as
// admin. Handlers must abort on it (HTTP 403) before touching the database.
func (g *Guard) RequireAdmin(r *http.Request) error {
	if _, err := g.Authenticate(r); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// SetCookie installs the session cookie on a response.
func (g *Guard) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.cfg.MaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie. Logout is purely client-side:
// there is no server-side session state to revoke.
func (g *Guard) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *Guard) tokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(g.cfg.CookieName)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	return v, true
}
