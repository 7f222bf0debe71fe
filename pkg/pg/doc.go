// Package pg manages the PostgreSQL connection pool and schema migrations
// for upload metadata.
//
// Connect retries with linear backoff so service startup survives transient
// database unavailability; Migrate applies goose migrations through the pgx
// pool; Healthcheck returns a closure compatible with health endpoints.
package pg
