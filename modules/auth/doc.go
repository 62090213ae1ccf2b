// Package auth implements the credential flow that produces session
// tokens: registration, login and logout over a PostgreSQL user store
// with bcrypt password hashes.
package auth
