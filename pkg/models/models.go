// Package models defines the FileVault domain model: users, files, and the
// sentinel errors shared between stores, services, and HTTP handlers.
package models

// AllModels returns all model types for database auto-migration.
func AllModels() []any {
	return []any{
		&User{},
		&File{},
	}
}
