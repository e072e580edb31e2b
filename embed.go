// Package elekit holds the embedded static assets shared by the CLI:
// the goose migrations for the run journal and the literal template
// files the scaffolder writes into a provisioned project.
package elekit

import "embed"

// Migrations contains the SQL migrations for the run journal database.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Templates contains the literal template files written by the
// scaffolder. File names carry no leading dot; the layout maps each
// asset to its destination path (e.g. gitignore -> .gitignore).
//
//go:embed templates
var Templates embed.FS
