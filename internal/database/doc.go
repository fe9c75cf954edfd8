// Package database provides PostgreSQL-backed repositories.
//
// Connection pooling via pgxpool, schema migrations via tern with embedded
// SQL files. Repositories translate pgx.ErrNoRows into domain sentinel
// errors; callers never see driver errors for missing rows.
package database
