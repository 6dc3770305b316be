// File: services/booking/booking.go
package booking

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	formschemaRepo "tavola/database/repository/formschema"
	reservationRepo "tavola/database/repository/reservation"
	"tavola/models"
)

// isoDate is the layout reservation dates must use.
const isoDate = "2006-01-02"

// DefaultService implements Service on top of the two repositories.
type DefaultService struct {
	Reservations reservationRepo.Repository
	Schema       formschemaRepo.Repository
}

func (s *DefaultService) Book(ctx context.Context, req Request) (*models.Reservation, error) {
	fields, err := s.Schema.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		if f.Required && !hasAnswer(req, f.Name) {
			return nil, NewValidationError(f.Name, "required field is missing")
		}
	}

	date := strings.TrimSpace(req["date"])
	slot := strings.TrimSpace(req["time"])
	if date == "" {
		return nil, NewValidationError("date", "required field is missing")
	}
	if slot == "" {
		return nil, NewValidationError("time", "required field is missing")
	}
	if _, err := time.Parse(isoDate, date); err != nil {
		return nil, NewValidationError("date", "malformed date, expected YYYY-MM-DD")
	}
	if !contains(slotOptions(fields), slot) {
		return nil, NewValidationError("time", "not a bookable time")
	}

	res := &models.Reservation{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req["name"]),
		Contact:   resolveContact(req),
		Date:      date,
		Time:      slot,
		People:    resolvePeople(req),
		Extra:     extraAnswers(fields, req),
		CreatedAt: time.Now().UTC(),
	}

	// The repository enforces slot uniqueness atomically, so no separate
	// pre-check is needed: the racing request loses inside the store.
	if err := s.Reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	zap.L().Info("reservation booked",
		zap.String("id", res.ID),
		zap.String("date", res.Date),
		zap.String("time", res.Time))
	return res, nil
}

func (s *DefaultService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return s.Reservations.List(ctx)
}

// fieldAliases groups the names the form and the chatbot widget use
// interchangeably: the widget posts "contact" where the form posts
// "email" or "phone", and "people" stands in for "guests".
var fieldAliases = map[string][]string{
	"contact": {"contact", "email", "phone"},
	"email":   {"email", "contact", "phone"},
	"phone":   {"phone", "contact", "email"},
	"guests":  {"guests", "people"},
	"people":  {"people", "guests"},
}

// hasAnswer reports whether the request answers the named field, either
// under the field's own name or under one of its aliases.
func hasAnswer(req Request, name string) bool {
	keys, ok := fieldAliases[name]
	if !ok {
		keys = []string{name}
	}
	for _, k := range keys {
		if strings.TrimSpace(req[k]) != "" {
			return true
		}
	}
	return false
}

// resolveContact falls back through the aliases the original form and
// the chatbot widget use for the contact field.
func resolveContact(req Request) string {
	for _, key := range []string{"contact", "email", "phone"} {
		if v := strings.TrimSpace(req[key]); v != "" {
			return v
		}
	}
	return ""
}

func resolvePeople(req Request) int {
	for _, key := range []string{"people", "guests"} {
		if v := strings.TrimSpace(req[key]); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

// extraAnswers collects answers for admin-defined fields that have no
// fixed column on the reservation record.
func extraAnswers(fields []models.FieldDefinition, req Request) map[string]string {
	known := map[string]struct{}{
		"name": {}, "contact": {}, "email": {}, "phone": {},
		"date": {}, "time": {}, "people": {}, "guests": {},
	}
	var extra map[string]string
	for _, f := range fields {
		if _, ok := known[f.Name]; ok {
			continue
		}
		if v := strings.TrimSpace(req[f.Name]); v != "" {
			if extra == nil {
				extra = make(map[string]string)
			}
			extra[f.Name] = v
		}
	}
	return extra
}

func contains(slots []string, s string) bool {
	for _, v := range slots {
		if v == s {
			return true
		}
	}
	return false
}
