// Package authgate is the per-request authorization decision engine. It
// runs once before any handler, classifies the request by path shape
// (API vs page), and either rejects with 403, redirects with 307, or
// passes the request through with the verified caller identity in
// context and a freshly refreshed session cookie on the response.
package authgate
