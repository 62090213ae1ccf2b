// Package guide provides the persistence-backed read models the
// authorization layer consults: guide authorization views from
// PostgreSQL and per-user share sets, optionally cached in Redis.
package guide
