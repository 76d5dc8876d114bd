// Package migrations embeds the goose migration files for the SQL-backed
// stores. SQLite and Postgres each keep their own directory because the
// blob column types differ between dialects.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
