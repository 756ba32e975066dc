// Package units converts lengths between the linear units a document can be
// measured in.
//
// Every conversion goes through points (1/72 inch), the canonical document
// unit. No rounding is applied; callers format for display with
// [Value.Format].
//
//	mm, err := units.Convert(72, units.Pt, units.MM) // 25.4
//	v, err := units.ParseValue("12.5mm", units.Pt)
//	in, err := v.In(units.In)
package units

import (
	"fmt"
	"strings"

	"github.com/matzehuels/artkit/pkg/errors"
)

// Unit is a linear length unit.
type Unit int

// Supported units. The zero value is Pt, the canonical document unit.
const (
	Pt Unit = iota
	Px
	Pc
	In
	MM
	CM
	M
	Ft
	Yd
)

// All lists every supported unit in declaration order.
var All = []Unit{Pt, Px, Pc, In, MM, CM, M, Ft, Yd}

// pointsPer holds the size of one unit in points.
var pointsPer = map[Unit]float64{
	Pt: 1,
	Px: 1,
	Pc: 12,
	In: 72,
	MM: 72 / 25.4,
	CM: 720 / 25.4,
	M:  72000 / 25.4,
	Ft: 864,
	Yd: 2592,
}

var unitNames = map[Unit]string{
	Pt: "pt",
	Px: "px",
	Pc: "pc",
	In: "in",
	MM: "mm",
	CM: "cm",
	M:  "m",
	Ft: "ft",
	Yd: "yd",
}

var unitAliases = map[string]Unit{
	"pt": Pt, "point": Pt, "points": Pt,
	"px": Px, "pixel": Px, "pixels": Px,
	"pc": Pc, "pica": Pc, "picas": Pc,
	"in": In, "inch": In, "inches": In, "\"": In,
	"mm": MM, "millimeter": MM, "millimeters": MM, "millimetre": MM, "millimetres": MM,
	"cm": CM, "centimeter": CM, "centimeters": CM, "centimetre": CM, "centimetres": CM,
	"m": M, "meter": M, "meters": M, "metre": M, "metres": M,
	"ft": Ft, "foot": Ft, "feet": Ft, "'": Ft,
	"yd": Yd, "yard": Yd, "yards": Yd,
}

// String returns the short tag of u ("mm", "pt", ...).
func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, ok := pointsPer[u]
	return ok
}

// Points returns the size of one u in points.
func (u Unit) Points() float64 { return pointsPer[u] }

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidUnit, "unknown unit: %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(b []byte) error {
	parsed, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUnit resolves a unit tag. Matching is case-insensitive and accepts
// long names ("millimeters") as well as the inch and foot marks.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if u, ok := unitAliases[key]; ok {
		return u, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUnit, "unknown unit: %q", s)
}

// Convert converts v from one unit to another via points.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidUnit, "unknown source unit: %v", from)
	}
	if !to.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidUnit, "unknown target unit: %v", to)
	}
	if from == to {
		return v, nil
	}
	return v * pointsPer[from] / pointsPer[to], nil
}

// ToPoints converts v in unit u to points.
func ToPoints(v float64, u Unit) (float64, error) { return Convert(v, u, Pt) }

// FromPoints converts v points to unit u.
func FromPoints(v float64, u Unit) (float64, error) { return Convert(v, Pt, u) }

// ConvertTags converts between two textual unit tags.
func ConvertTags(v float64, from, to string) (float64, error) {
	f, err := ParseUnit(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseUnit(to)
	if err != nil {
		return 0, err
	}
	return Convert(v, f, t)
}
