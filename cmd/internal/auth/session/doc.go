// Package session implements the stateless admin session for the portfolio server.
//
// A session is a self-contained signed claim, not a server-side record:
//
//	base64url( username ":" issuedAtUnix ":" hex(HMAC-SHA256(secret, username ":" issuedAtUnix)) )
//
// carried by the client as an HttpOnly cookie. Nothing is persisted; a token is
// valid while its signature checks out against the process secret, its username
// matches the current admin username, and it is younger than the configured max
// age. Changing the admin username therefore invalidates every outstanding
// token at once, and rotating the process secret invalidates them all too.
//
// Parse and Verify return typed errors (malformed, bad signature, stale
// username, expired) so the guard can log the reason, while the HTTP surface
// rejects uniformly.
package session
