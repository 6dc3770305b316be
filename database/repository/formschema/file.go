// File: database/repository/formschema/file.go
package formschemaRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"tavola/database/repository"
	"tavola/models"
)

type fileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo constructs a Repository backed by a flat JSON file holding
// the field array.
func NewFileRepo(path string) Repository {
	return &fileRepo{path: path}
}

func (r *fileRepo) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat schema file: %w", err)
	}
	return r.write(models.DefaultFields())
}

func (r *fileRepo) List(ctx context.Context) ([]models.FieldDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var out []models.FieldDefinition
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode schema file: %w", err)
	}
	return out, nil
}

func (r *fileRepo) Replace(ctx context.Context, fields []models.FieldDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(fields)
}

func (r *fileRepo) write(fields []models.FieldDefinition) error {
	if fields == nil {
		fields = []models.FieldDefinition{}
	}
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	if err := repository.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("failed to persist schema: %w", err)
	}
	return nil
}
