// Package userapi exposes embedded assets shared by the binaries, currently
// the goose migration files.
package userapi

import "embed"

// Migrations holds the SQL migration files applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
