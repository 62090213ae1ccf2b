package authgate

import "regexp"

var (
	// skipPattern excludes internal asset paths and anything that looks
	// like a static file (trailing .<extension> segment) from the gate.
	skipPattern = regexp.MustCompile(`^/(?:_next/|_static|_vercel)|\.[A-Za-z0-9]+$`)

	// protectedPattern matches page routes that require a logged-in
	// session: guide creation and mutation pages, place management
	// under a guide, and everything under /profile.
	protectedPattern = regexp.MustCompile(`^(?:/guides/new|/guides/[^/]+/(?:edit|share|delete)|/guides/[^/]+/places(?:/.*)?|/profile(?:/.*)?)$`)
)

// shouldSkip reports whether the path is excluded from request
// classification entirely.
func shouldSkip(path string) bool {
	return skipPattern.MatchString(path)
}

// isProtectedPage reports whether the page route requires a session.
func isProtectedPage(path string) bool {
	return protectedPattern.MatchString(path)
}
