// Package storage opens the backend behind the local key/value store.
//
// Three drivers are supported:
//
//   - "sqlite"   (default) a SQLite file through modernc.org/sqlite
//   - "postgres" a PostgreSQL database through the pgx stdlib driver
//   - "memory"   process memory; nothing survives a restart
//
// SQL backends get the embedded goose migrations applied on Open. Every
// backend exposes the plain repository (KV) and a transactional variant
// (WithTx) whose writes are all-or-nothing.
package storage
