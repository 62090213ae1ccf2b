// Package pg wires PostgreSQL connectivity: pgx pool construction with
// startup retries, goose schema migrations, and a health probe.
package pg
