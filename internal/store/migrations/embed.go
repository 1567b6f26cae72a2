// Package migrations embeds the schema migrations for the local client
// database, applied with goose on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
