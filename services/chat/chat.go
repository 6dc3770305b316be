// File: services/chat/chat.go
package chat

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"tavola/services/booking"
)

// keepMessages bounds how much conversation context is retained per session.
const keepMessages = 20

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// DefaultService is a keyword-intent responder. Booking itself stays in
// the widget, which drives the availability and reservation endpoints;
// the service answers everything else and can quote free slots when the
// message names a date.
type DefaultService struct {
	Store   ContextStore
	Booking booking.Service
}

func (s *DefaultService) Respond(ctx context.Context, sessionID, message string) (string, error) {
	chatCtx, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		zap.L().Warn("chat context unavailable", zap.Error(err))
		chatCtx = &Context{}
	}

	reply := s.replyFor(ctx, message)

	now := time.Now().UTC()
	chatCtx.Messages = append(chatCtx.Messages,
		Message{Sender: "user", Text: message, At: now},
		Message{Sender: "bot", Text: reply, At: now},
	)
	if len(chatCtx.Messages) > keepMessages {
		chatCtx.Messages = chatCtx.Messages[len(chatCtx.Messages)-keepMessages:]
	}
	if err := s.Store.Set(ctx, sessionID, chatCtx); err != nil {
		zap.L().Warn("failed to save chat context", zap.Error(err))
	}
	return reply, nil
}

func (s *DefaultService) replyFor(ctx context.Context, message string) string {
	lower := strings.ToLower(message)

	// A concrete date in the message gets an availability answer even
	// outside the widget's guided flow.
	if date := datePattern.FindString(lower); date != "" {
		slots, err := s.Booking.AvailableSlots(ctx, date)
		if err == nil {
			if len(slots) == 0 {
				return "We are fully booked on " + date + ". Could you try another day?"
			}
			return "On " + date + " we still have these times free: " + strings.Join(slots, ", ") + "."
		}
		zap.L().Warn("availability lookup failed in chat", zap.Error(err))
	}

	switch {
	case containsAny(lower, "book", "reserv", "table", "prenot", "appuntamento"):
		return "I can help you book a table. Pick a date and I will show you the free times."
	case containsAny(lower, "hour", "open", "close", "orari"):
		return "We are open for lunch from 12:00 and for dinner from 19:00, Tuesday to Sunday."
	case containsAny(lower, "menu", "vegan", "vegetarian", "gluten"):
		return "Our seasonal menu changes weekly and always includes vegetarian and gluten-free dishes."
	case containsAny(lower, "where", "address", "location", "dove"):
		return "You can find us in the town centre; the booking page has a map at the bottom."
	case containsAny(lower, "hello", "hi", "ciao", "hey"):
		return "Hello! Ask me about our opening hours or say 'book a table' to make a reservation."
	default:
		return "I'm not sure I understood. I can answer questions about hours and the menu, or help you book a table."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
