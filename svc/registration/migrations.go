package registration

import "embed"

// Migrations holds the goose migrations for the users schema.
// Pass it to pg.Migrate with MigrationsDir.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
