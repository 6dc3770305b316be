// File: services/booking/interface.go
package booking

import (
	"context"

	"tavola/models"
)

// Request carries the raw form answers keyed by schema field name, as
// submitted by the booking form or the chatbot widget.
type Request map[string]string

// Service is the booking engine: schema-driven validation, slot
// availability, and the double-booking guard.
type Service interface {
	// Book validates req against the current field schema and persists
	// the reservation. It returns *ValidationError for a missing or
	// malformed field and repository.ErrSlotTaken when the slot is gone.
	Book(ctx context.Context, req Request) (*models.Reservation, error)

	// AvailableSlots returns the configured time options not yet booked
	// on date, preserving configuration order. A missing or unparsable
	// date yields the full option list.
	AvailableSlots(ctx context.Context, date string) ([]string, error)

	// ListReservations returns every reservation in insertion order.
	ListReservations(ctx context.Context) ([]models.Reservation, error)
}
