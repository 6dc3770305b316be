// File: services/booking/availability.go
package booking

import (
	"context"
	"time"

	"tavola/models"
)

// AvailableSlots derives the free times for a date from the current
// schema and reservation state. Recomputed on every call; the stores are
// the authority and write volume is low.
func (s *DefaultService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	fields, err := s.Schema.List(ctx)
	if err != nil {
		return nil, err
	}
	allSlots := slotOptions(fields)

	// Permissive default: without a usable date there is no occupancy to
	// subtract, so every configured slot is reported.
	if _, err := time.Parse(isoDate, date); err != nil {
		return append([]string(nil), allSlots...), nil
	}

	booked, err := s.Reservations.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(booked))
	for _, r := range booked {
		taken[r.Time] = struct{}{}
	}

	free := make([]string, 0, len(allSlots))
	for _, slot := range allSlots {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}

// slotOptions returns the options of the schema's first time field, or
// the default canonical slots when the schema defines none.
func slotOptions(fields []models.FieldDefinition) []string {
	for _, f := range fields {
		if f.Type == models.FieldTypeTime && len(f.Options) > 0 {
			return f.Options
		}
	}
	return models.DefaultTimeSlots
}
