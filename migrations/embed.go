// Package migrations embeds the SQL schema migrations shipped with the
// binary so the store never depends on files on disk.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
