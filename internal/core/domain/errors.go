// Package domain defines the reservation core's entities and the
// sentinel errors shared by every layer. Handlers translate these
// values into HTTP status codes with errors.Is, so wrapping them with
// fmt.Errorf("...: %w", err) is safe anywhere in the stack.
package domain

import "errors"

// ErrInvalidDateRange is returned when a check-out date is not
// strictly after the check-in date. It is raised before any store
// access.
var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// ErrRoomNotFound is returned when a referenced room id is absent
// from the catalog.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a referenced reservation id
// does not exist in the store.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRoomUnavailable is returned when a requested interval conflicts
// with an existing confirmed reservation for the same room.
var ErrRoomUnavailable = errors.New("room not available for the requested dates")

// ErrValidation signals a store-level invariant violation, such as an
// insert with invalid dates that bypassed manager validation.
var ErrValidation = errors.New("validation failed")
