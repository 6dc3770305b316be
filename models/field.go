package models

// FieldType names the input types the booking form understands. Unknown
// values are stored as-is; they only affect client-side rendering.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeEmail  FieldType = "email"
	FieldTypeTel    FieldType = "tel"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeTime   FieldType = "time"
)

// FieldDefinition describes one input of the reservation form. The admin
// panel replaces the whole list at once; list order is rendering order.
type FieldDefinition struct {
	Name     string    `json:"name" bson:"name"`
	Label    string    `json:"label" bson:"label"`
	Type     FieldType `json:"type" bson:"type"`
	Required bool      `json:"required" bson:"required"`
	Options  []string  `json:"options,omitempty" bson:"options,omitempty"`
	Min      *float64  `json:"min,omitempty" bson:"min,omitempty"`
	Max      *float64  `json:"max,omitempty" bson:"max,omitempty"`
}

// DefaultTimeSlots are the bookable times used when the schema defines no
// time field, or the time field carries no options.
var DefaultTimeSlots = []string{"12:00", "12:30", "13:00", "19:00", "19:30", "20:00"}

// DefaultFields returns the schema installed on first startup.
func DefaultFields() []FieldDefinition {
	one := 1.0
	twenty := 20.0
	return []FieldDefinition{
		{Name: "name", Label: "Full name", Type: FieldTypeText, Required: true},
		{Name: "email", Label: "Email", Type: FieldTypeEmail, Required: true},
		{Name: "phone", Label: "Phone", Type: FieldTypeTel, Required: false},
		// Not required: the chatbot widget books without a party size.
		{Name: "guests", Label: "Guests", Type: FieldTypeNumber, Required: false, Min: &one, Max: &twenty},
		{Name: "date", Label: "Date", Type: FieldTypeDate, Required: true},
		{Name: "time", Label: "Time", Type: FieldTypeTime, Required: true, Options: append([]string(nil), DefaultTimeSlots...)},
	}
}
