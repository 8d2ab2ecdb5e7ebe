package db

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the SQL migrations rooted at the migrations directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrationFiles, "migrations")
}
