// Package scripts embeds the versioned goose migrations (PostgreSQL).
package scripts

import "embed"

//go:embed *.sql
var FS embed.FS
