// Package migrations embeds the versioned SQL schema shipped with the server
// binaries.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
