// Package token signs and verifies the compact, self-contained session
// credentials used across guideshare. Tokens are HMAC-SHA256 signed and
// structurally compatible with standard compact JWTs, so the format is
// inspectable with common tooling, but validity is decided entirely by
// this package: signature match plus unexpired, nothing else.
//
// There is deliberately no revocation state. A token is valid iff its
// signature matches the server secret and its expiry has not passed,
// which keeps verification a pure CPU-bound computation.
package token
