package repository

import "errors"

// ErrSlotTaken is returned by the reservation Create operation when
// another reservation already holds the same (date, time) slot. Every
// driver enforces the uniqueness check atomically inside the store, so
// concurrent creates for one slot cannot both succeed.
var ErrSlotTaken = errors.New("slot already taken")
