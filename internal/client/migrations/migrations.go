// Package migrations embeds the goose migrations for the local key/value
// store. The same files are applied to SQLite and PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
