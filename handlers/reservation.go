// File: handlers/reservation.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tavola/database/repository"
	"tavola/models"
	"tavola/services/booking"
	"tavola/utils"
)

// ReservationHandler serves the public booking endpoints and the admin
// reservation listing.
type ReservationHandler struct {
	Booking booking.Service
	Logger  *zap.Logger
}

func NewReservationHandler(svc booking.Service, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Booking: svc, Logger: logger}
}

// CreateReservationHandler accepts a booking payload keyed by schema
// field names. Both /api/reservations and the widget's /api/bookings
// route here.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError", "details": "invalid JSON body"})
		return
	}

	req := make(booking.Request, len(payload))
	for k, v := range payload {
		req[k] = stringifyValue(v)
	}

	res, err := h.Booking.Book(c.Request.Context(), req)
	if err != nil {
		var vErr *booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "ValidationError",
				"field":   vErr.Field,
				"details": vErr.Message,
			})
		case errors.Is(err, repository.ErrSlotTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "SlotTaken"})
		default:
			h.Logger.Error("failed to store reservation", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "StorageError", "could not save the reservation")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": res.ID})
}

// AvailableSlotsHandler reports the free times for the requested date.
func (h *ReservationHandler) AvailableSlotsHandler(c *gin.Context) {
	slots, err := h.Booking.AvailableSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.Logger.Error("failed to compute availability", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "StorageError", "could not read reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableSlots": slots})
}

// ListReservationsHandler returns every reservation; admin only.
func (h *ReservationHandler) ListReservationsHandler(c *gin.Context) {
	all, err := h.Booking.ListReservations(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list reservations", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "StorageError", "could not read reservations")
		return
	}
	if all == nil {
		all = []models.Reservation{}
	}
	c.JSON(http.StatusOK, all)
}

// stringifyValue flattens the JSON value types the form can produce into
// the string form the schema validation works with.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
