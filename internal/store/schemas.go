package store

import "embed"

// sqlSchemas is an embedded file system containing the SQL migration files
// for the snapshot recorder's single table.
//
//go:embed migrations/*.sql
var sqlSchemas embed.FS
