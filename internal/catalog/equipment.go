// Package catalog stores laser cutting equipment, answers filtered listings
// and side-by-side comparisons, and backs the admin back-office: CRUD,
// bulk import and review of user submissions.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laser-compare/internal/laser"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrConflict = errors.New("conflict")
)

// FieldError reports the first invalid field of an equipment record.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

// Equipment is one machine in the catalog.
type Equipment struct {
	ID string `json:"id"`
	EquipmentInput
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquipmentInput holds the editable fields of a machine. Price is nil when
// the vendor does not publish one.
type EquipmentInput struct {
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	LaserType      laser.LaserType `json:"laser_type"`
	PowerKw        float64         `json:"power_kw"`
	MaxThicknessMm float64         `json:"max_thickness_mm"`
	BedWidthMm     float64         `json:"bed_width_mm"`
	BedLengthMm    float64         `json:"bed_length_mm"`
	Price          *float64        `json:"price,omitempty"`
	Description    string          `json:"description,omitempty"`
}

const maxPowerKw = 60

// Normalize trims text fields and lower-cases the laser type.
func (in *EquipmentInput) Normalize() {
	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	in.Description = strings.TrimSpace(in.Description)
	in.LaserType = laser.LaserType(strings.ToLower(strings.TrimSpace(string(in.LaserType))))
}

// Validate checks the record; the error matches ErrInvalid.
func (in EquipmentInput) Validate() error {
	switch {
	case in.Brand == "":
		return &FieldError{"brand", "is required"}
	case in.Model == "":
		return &FieldError{"model", "is required"}
	case !in.LaserType.Valid():
		return &FieldError{"laser_type", fmt.Sprintf("unsupported value %q", in.LaserType)}
	case !(in.PowerKw > 0 && in.PowerKw <= maxPowerKw):
		return &FieldError{"power_kw", fmt.Sprintf("must be in (0, %d]", maxPowerKw)}
	case !(in.MaxThicknessMm >= 0):
		return &FieldError{"max_thickness_mm", "must be >= 0"}
	case !(in.BedWidthMm > 0):
		return &FieldError{"bed_width_mm", "must be > 0"}
	case !(in.BedLengthMm > 0):
		return &FieldError{"bed_length_mm", "must be > 0"}
	case in.Price != nil && !(*in.Price >= 0):
		return &FieldError{"price", "must be >= 0"}
	}
	return nil
}

// BedAreaM2 is the working area of the machine bed.
func (e Equipment) BedAreaM2() float64 {
	return e.BedWidthMm * e.BedLengthMm / 1e6
}
