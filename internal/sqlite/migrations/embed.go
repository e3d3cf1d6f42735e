package migrations

import "embed"

// FS contains the embedded tabletop schema migrations.
//
//go:embed *.sql
var FS embed.FS
