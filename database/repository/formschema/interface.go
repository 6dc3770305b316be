// File: database/repository/formschema/interface.go
package formschemaRepo

import (
	"context"

	"tavola/models"
)

// Repository holds the ordered field definitions that make up the
// reservation form.
//
// Replace swaps the entire schema in one step: concurrent readers see
// either the old list or the new one, never a mix. An empty replacement
// is valid and is preserved — only a schema that was never written at
// all triggers the Init bootstrap.
type Repository interface {
	// Init installs the default schema when none has ever been saved.
	Init(ctx context.Context) error
	List(ctx context.Context) ([]models.FieldDefinition, error)
	Replace(ctx context.Context, fields []models.FieldDefinition) error
}
