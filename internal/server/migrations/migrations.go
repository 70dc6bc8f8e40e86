// Package migrations embeds the SQL schema bootstrap applied through goose
// when the store connection is first established.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
