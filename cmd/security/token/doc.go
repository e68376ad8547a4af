// Package token provides signing primitives for the admin session tokens.
//
// It is the single source of truth for the process-wide MAC secret and for
// the HMAC-SHA256 signature used by the session codec.
//
// Design goals:
//   - Dev mode: a fresh random secret is generated at startup when none is
//     configured. Every restart then invalidates all outstanding tokens.
//   - Production-enforced mode: callers MUST require a configured secret of a
//     minimum byte length (no generated fallback).
//   - Stable 64-char hex signature output for constant-time comparison.
//
// Environment:
// - PORTFOLIO_SESSION_SECRET: when set, used as the MAC key for the process.
package token
