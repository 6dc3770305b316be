package models

import "time"

// Reservation is one booked table. The collection is append-only: no
// update or cancel exists, and at most one reservation may hold a given
// (date, time) slot.
type Reservation struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Contact string `json:"contact" bson:"contact"`
	// Date is an ISO calendar date, "2006-01-02".
	Date string `json:"date" bson:"date"`
	// Time must match one of the schema's configured slot options.
	Time   string `json:"time" bson:"time"`
	People int    `json:"people,omitempty" bson:"people,omitempty"`
	// Extra holds answers to admin-defined fields beyond the fixed columns.
	Extra     map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
}
