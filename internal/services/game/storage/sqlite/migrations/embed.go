package migrations

import "embed"

// FS holds the save store migrations at its root.
//
//go:embed *.sql
var FS embed.FS
