// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"tavola/models"
)

// Repository stores booked reservations. The collection is append-only.
//
// Create must be durable before returning and must enforce (date, time)
// uniqueness atomically: of two concurrent creates for the same slot,
// exactly one succeeds and the other gets repository.ErrSlotTaken.
type Repository interface {
	List(ctx context.Context) ([]models.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]models.Reservation, error)
	Create(ctx context.Context, r *models.Reservation) error
}
