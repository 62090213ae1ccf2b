package authgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSkip(t *testing.T) {
	t.Parallel()

	skipped := []string{
		"/_next/static/chunks/main.js",
		"/_static/styles.css",
		"/_vercel/insights/script.js",
		"/favicon.ico",
		"/guides/cover.jpg",
	}
	for _, path := range skipped {
		assert.True(t, shouldSkip(path), path)
	}

	classified := []string{
		"/",
		"/guides/new",
		"/guides/1",
		"/api/guides",
		"/profile",
	}
	for _, path := range classified {
		assert.False(t, shouldSkip(path), path)
	}
}

func TestIsProtectedPage(t *testing.T) {
	t.Parallel()

	protected := []string{
		"/guides/new",
		"/guides/1/edit",
		"/guides/1/share",
		"/guides/1/delete",
		"/guides/1/places",
		"/guides/1/places/2/edit",
		"/profile",
		"/profile/settings",
	}
	for _, path := range protected {
		assert.True(t, isProtectedPage(path), path)
	}

	public := []string{
		"/",
		"/guides",
		"/guides/1",
		"/auth/login",
		"/guides/1/editors", // not an edit page
	}
	for _, path := range public {
		assert.False(t, isProtectedPage(path), path)
	}
}
