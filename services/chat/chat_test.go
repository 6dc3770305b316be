package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tavola/models"
	"tavola/services/booking"
)

type stubBooking struct {
	slots map[string][]string
}

func (s *stubBooking) Book(ctx context.Context, req booking.Request) (*models.Reservation, error) {
	return nil, nil
}

func (s *stubBooking) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	return s.slots[date], nil
}

func (s *stubBooking) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return nil, nil
}

func newTestChat(slots map[string][]string) *DefaultService {
	return &DefaultService{
		Store:   NewMemoryContextStore(time.Minute),
		Booking: &stubBooking{slots: slots},
	}
}

func TestRespondBookingIntent(t *testing.T) {
	svc := newTestChat(nil)
	reply, err := svc.Respond(context.Background(), "s1", "I'd like to book a table")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(reply, "book a table") {
		t.Fatalf("unexpected booking reply: %q", reply)
	}
}

func TestRespondQuotesAvailabilityForDate(t *testing.T) {
	svc := newTestChat(map[string][]string{"2024-06-01": {"19:00", "20:00"}})
	reply, err := svc.Respond(context.Background(), "s1", "anything free on 2024-06-01?")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(reply, "19:00, 20:00") {
		t.Fatalf("expected slot listing, got %q", reply)
	}
}

func TestRespondFullyBookedDate(t *testing.T) {
	svc := newTestChat(map[string][]string{})
	reply, err := svc.Respond(context.Background(), "s1", "table on 2024-06-01")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(reply, "fully booked") {
		t.Fatalf("expected fully-booked reply, got %q", reply)
	}
}

func TestRespondFallback(t *testing.T) {
	svc := newTestChat(nil)
	reply, err := svc.Respond(context.Background(), "s1", "quantum entanglement")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(reply, "not sure") {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
}

func TestRespondKeepsBoundedContext(t *testing.T) {
	svc := newTestChat(nil)
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		if _, err := svc.Respond(ctx, "s1", "hello"); err != nil {
			t.Fatalf("Respond: %v", err)
		}
	}
	chatCtx, err := svc.Store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(chatCtx.Messages) != keepMessages {
		t.Fatalf("context grew to %d messages, cap is %d", len(chatCtx.Messages), keepMessages)
	}
}

func TestRespondConcurrentSameSession(t *testing.T) {
	svc := newTestChat(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.Respond(ctx, "s1", "hello"); err != nil {
					t.Errorf("Respond: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	chatCtx, err := svc.Store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(chatCtx.Messages) == 0 || len(chatCtx.Messages) > keepMessages {
		t.Fatalf("context holds %d messages after concurrent use, cap is %d", len(chatCtx.Messages), keepMessages)
	}
}

func TestMemoryContextStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryContextStore(time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, "s1", &Context{Messages: []Message{{Sender: "user", Text: "hi"}}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	first.Messages[0].Text = "mutated"
	first.Messages = append(first.Messages, Message{Sender: "bot", Text: "extra"})

	second, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(second.Messages) != 1 || second.Messages[0].Text != "hi" {
		t.Fatalf("stored context leaked caller mutations: %+v", second.Messages)
	}
}

func TestMemoryContextStoreExpiry(t *testing.T) {
	store := NewMemoryContextStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := store.Set(ctx, "s1", &Context{Messages: []Message{{Sender: "user", Text: "hi"}}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	chatCtx, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(chatCtx.Messages) != 0 {
		t.Fatalf("expected expired context to read empty, got %+v", chatCtx)
	}
}

func TestMemoryContextStoreSweepsAbandonedSessions(t *testing.T) {
	store := NewMemoryContextStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := store.Set(ctx, "abandoned", &Context{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	// A write on an unrelated session sweeps the expired one.
	if err := store.Set(ctx, "fresh", &Context{}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	store.mu.Lock()
	_, kept := store.sessions["abandoned"]
	total := len(store.sessions)
	store.mu.Unlock()
	if kept || total != 1 {
		t.Fatalf("expected expired session swept, have %d sessions (abandoned kept: %v)", total, kept)
	}
}
