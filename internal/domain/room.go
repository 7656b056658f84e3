// Package domain contains entities without transport or storage logic.
package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const MaxRoomIDLen = 64

type RoomID string

// Room is a seating location. Values are immutable once validated.
type Room struct {
	ID           RoomID `json:"roomId" validate:"required,max=64,excludesall=/"`
	Capacity     int    `json:"capacity" validate:"gt=0"`
	FloorNo      int    `json:"floorNo" validate:"gte=0"`
	NearWashroom bool   `json:"nearWashroom"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewRoom trims the identifier and validates every field.
func NewRoom(id string, capacity, floorNo int, nearWashroom bool) (Room, error) {
	r := Room{
		ID:           RoomID(strings.TrimSpace(id)),
		Capacity:     capacity,
		FloorNo:      floorNo,
		NearWashroom: nearWashroom,
	}
	if err := r.Validate(); err != nil {
		return Room{}, err
	}
	return r, nil
}

// Validate reports the first invalid field as a *ValidationError. IDs are
// used as URL path segments, so they may not contain '/' and must already be
// trimmed.
func (r Room) Validate() error {
	if id := string(r.ID); id != strings.TrimSpace(id) {
		return &ValidationError{Field: "roomId", Reason: "must not start or end with whitespace"}
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &ValidationError{Field: "room", Reason: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: fieldName(fe.Field()), Reason: reason(fe)}
}

func fieldName(structField string) string {
	switch structField {
	case "ID":
		return "roomId"
	case "Capacity":
		return "capacity"
	case "FloorNo":
		return "floorNo"
	default:
		return strings.ToLower(structField)
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must not be negative"
	case "excludesall":
		return "must not contain " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
