package upload

import "embed"

// Migrations holds the uploads schema, applied at startup via pg.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
