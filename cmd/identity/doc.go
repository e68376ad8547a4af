// Package identity owns the single admin credential of the portfolio server.
//
// The credential is a singleton row: one username and one password digest.
// No other package reads or writes it directly; login and account updates go
// through the Store interface.
//
// Seeding model:
//   - EnsureSeeded inserts the configured default identity exactly once at
//     startup (idempotent).
//   - An unseeded Get still answers with the default identity (digest computed
//     on the fly) but never writes; read paths stay side-effect free.
package identity
