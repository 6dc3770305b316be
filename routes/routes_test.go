package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	formschemaRepo "tavola/database/repository/formschema"
	reservationRepo "tavola/database/repository/reservation"
	"tavola/handlers"
	"tavola/models"
	"tavola/services/adminsession"
	"tavola/services/booking"
	"tavola/services/chat"
	"tavola/utils"
)

const testAdminPassword = "open sesame"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	reservations := reservationRepo.NewFileRepo(filepath.Join(dir, "reservations.json"))
	schema := formschemaRepo.NewFileRepo(filepath.Join(dir, "fields.json"))
	if err := schema.Init(context.Background()); err != nil {
		t.Fatalf("schema init: %v", err)
	}

	bookingService := &booking.DefaultService{Reservations: reservations, Schema: schema}
	chatService := &chat.DefaultService{
		Store:   chat.NewMemoryContextStore(time.Minute),
		Booking: bookingService,
	}
	sessions := adminsession.New(testAdminPassword, "")

	logger := utils.GetLogger()
	hb := &handlers.HandlerBundle{
		Reservations: handlers.NewReservationHandler(bookingService, logger),
		Schema:       handlers.NewSchemaHandler(schema, logger),
		Admin:        handlers.NewAdminHandler(sessions, logger),
		Chat:         handlers.NewChatHandler(chatService, logger),
		Sessions:     sessions,
	}

	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/admin/login", `{"password":"`+testAdminPassword+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "tavola_admin_session" {
			return c
		}
	}
	t.Fatalf("login response carried no session cookie")
	return nil
}

func TestPublicFieldsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/fields", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/fields: %d", w.Code)
	}
	var fields []models.FieldDefinition
	if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fields) != len(models.DefaultFields()) {
		t.Fatalf("expected default schema, got %d fields", len(fields))
	}
}

func TestAdminEndpointsRejectUnauthenticated(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/admin/reservations", ""},
		{http.MethodGet, "/admin/fields", ""},
		{http.MethodPost, "/admin/fields", "[]"},
		{http.MethodGet, "/admin/logout", ""},
	}
	for _, tc := range cases {
		w := doJSON(r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: got %d, want 401", tc.method, tc.path, w.Code)
		}
		if strings.Contains(w.Body.String(), "name") {
			t.Fatalf("%s %s leaked data: %s", tc.method, tc.path, w.Body.String())
		}
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/admin/login", `{"password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: got %d, want 401", w.Code)
	}
}

func TestReservationLifecycle(t *testing.T) {
	r := newTestRouter(t)

	payload := `{"name":"Ada","email":"ada@example.com","guests":2,"date":"2024-06-01","time":"19:00"}`
	w := doJSON(r, http.MethodPost, "/api/reservations", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create reservation: %d %s", w.Code, w.Body.String())
	}

	// The same slot through the widget alias is rejected as taken.
	w = doJSON(r, http.MethodPost, "/api/bookings", payload)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "SlotTaken") {
		t.Fatalf("duplicate slot: %d %s", w.Code, w.Body.String())
	}

	// Availability now excludes the booked time.
	w = doJSON(r, http.MethodGet, "/api/available-slots?date=2024-06-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("available-slots: %d", w.Code)
	}
	var slots struct {
		AvailableSlots []string `json:"availableSlots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, s := range slots.AvailableSlots {
		if s == "19:00" {
			t.Fatalf("booked slot still listed: %v", slots.AvailableSlots)
		}
	}

	// Admin sees the reservation.
	cookie := loginAdmin(t, r)
	w = doJSON(r, http.MethodGet, "/admin/reservations", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("admin reservations: %d", w.Code)
	}
	var all []models.Reservation
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Ada" {
		t.Fatalf("unexpected admin listing: %+v", all)
	}
}

func TestWidgetBookingPayloadAccepted(t *testing.T) {
	r := newTestRouter(t)

	// The chat widget posts exactly these four keys to its alias route.
	w := doJSON(r, http.MethodPost, "/api/bookings",
		`{"name":"Ada","contact":"ada@example.com","date":"2024-06-01","time":"19:00"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("widget booking: got %d %s, want 201", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestReservationValidationNamesField(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/reservations",
		`{"name":"Ada","guests":2,"date":"2024-06-01","time":"19:00"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing email: got %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"field":"email"`) {
		t.Fatalf("response does not name the failing field: %s", w.Body.String())
	}
}

func TestSchemaReplaceRoundTripOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	cookie := loginAdmin(t, r)

	replacement := `[{"name":"name","label":"Name","type":"text","required":true},` +
		`{"name":"time","label":"Time","type":"time","required":true,"options":["11:00","19:00"]}]`
	w := doJSON(r, http.MethodPost, "/admin/fields", replacement, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("replace schema: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/admin/fields", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list schema: %d", w.Code)
	}
	var fields []models.FieldDefinition
	if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fields) != 2 || fields[1].Options[0] != "11:00" {
		t.Fatalf("round trip mismatch: %+v", fields)
	}

	// Empty replacement yields an empty list.
	w = doJSON(r, http.MethodPost, "/admin/fields", "[]", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("empty replace: %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/api/fields", "")
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newTestRouter(t)
	cookie := loginAdmin(t, r)

	w := doJSON(r, http.MethodGet, "/admin/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/admin/reservations", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token survived logout: %d", w.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/chat", `{"message":"ciao","sessionId":"s1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("chat: %d %s", w.Code, w.Body.String())
	}
	var reply struct {
		Response  string `json:"response"`
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Response == "" || reply.SessionID != "s1" {
		t.Fatalf("unexpected chat reply: %+v", reply)
	}

	// Missing message is a validation failure.
	w = doJSON(r, http.MethodPost, "/api/chat", `{"sessionId":"s1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty message: got %d, want 400", w.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}
