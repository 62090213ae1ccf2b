// Package redis establishes go-redis connections with startup retries
// and exposes a health probe.
package redis
