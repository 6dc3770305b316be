// File: database/repository/reservation/file.go
package reservationRepo

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

// fileRepo keeps the whole collection in one JSON file. The mutex spans
// the load-check-append-rename sequence, which is what serializes
// concurrent bookings for the same slot within the process.
type fileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo constructs a Repository backed by a flat JSON file. A
// missing file reads as an empty collection.
func NewFileRepo(path string) Repository {
	return &fileRepo{path: path}
}

func (r *fileRepo) load() ([]models.Reservation, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var out []models.Reservation
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reservations file: %w", err)
	}
	return out, nil
}

func (r *fileRepo) List(ctx context.Context) ([]models.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileRepo) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Reservation
	for _, res := range all {
		if res.Date == date {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fileRepo) Create(ctx context.Context, res *models.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.Date == res.Date && existing.Time == res.Time {
			return repository.ErrSlotTaken
		}
	}

	all = append(all, *res)
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reservations: %w", err)
	}
	if err := repository.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("failed to persist reservation: %w", err)
	}
	return nil
}
