// Package migrations embeds the SQL schema of every service, one directory per service.
package migrations

import "embed"

//go:embed account/*.sql hospital/*.sql timetable/*.sql document/*.sql
var FS embed.FS
