// Package password provides password hashing and verification for the portfolio server.
//
// It implements PBKDF2-HMAC-SHA256 hashing using a compact "salthex$keyhex"
// encoded format and includes:
// - Configurable derivation parameters (via environment variables)
// - Strict digest decoding with anti-DoS bounds during Verify
//
// Security notes:
// - Stored digests are treated as untrusted input during Verify; a malformed
//   digest verifies as false, it never errors the request.
// - All digest comparisons are constant-time.
package password
