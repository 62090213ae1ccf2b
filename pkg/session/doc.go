// Package session wraps the token codec with cookie semantics: create
// on login, read per request, sliding refresh on page requests, destroy
// on logout. There is no server-side session table; the browser owns
// the only copy of the credential.
//
// Concurrent requests sharing one session cannot race here: two
// concurrent refreshes both produce valid tokens and the later Set-Cookie
// simply wins.
package session
