// Package cookie provides a small cookie manager with secure defaults
// (httpOnly, SameSite=Lax, path=/) and a functional options API for the
// attributes that vary per environment, such as the Secure flag.
package cookie
