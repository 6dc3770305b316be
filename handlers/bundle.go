// File: handlers/bundle.go
package handlers

import "tavola/services/adminsession"

// HandlerBundle aggregates the handlers wired in main so route
// registration takes a single argument.
type HandlerBundle struct {
	Reservations *ReservationHandler
	Schema       *SchemaHandler
	Admin        *AdminHandler
	Chat         *ChatHandler

	// Sessions is exposed for the admin auth middleware.
	Sessions adminsession.Service
}
