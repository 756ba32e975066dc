package units

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/artkit/pkg/errors"
)

// Value is a magnitude paired with its unit.
type Value struct {
	Magnitude float64
	Unit      Unit
}

// V is shorthand for Value{m, u}.
func V(m float64, u Unit) Value { return Value{Magnitude: m, Unit: u} }

// Points returns v in points.
func (v Value) Points() float64 { return v.Magnitude * v.Unit.Points() }

// In returns v converted to u. Unknown units are ErrCodeInvalidUnit.
func (v Value) In(u Unit) (Value, error) {
	m, err := Convert(v.Magnitude, v.Unit, u)
	if err != nil {
		return Value{}, err
	}
	return Value{Magnitude: m, Unit: u}, nil
}

// String formats v in its shortest exact form followed by the unit tag.
func (v Value) String() string {
	return strconv.FormatFloat(v.Magnitude, 'f', -1, 64) + v.Unit.String()
}

// Format renders v with a fixed number of decimals, trimming trailing zeros.
func (v Value) Format(precision int) string {
	s := strconv.FormatFloat(v.Magnitude, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s + " " + v.Unit.String()
}

// MarshalJSON encodes v as a string such as "12.5mm".
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts either "12.5mm" or a bare number in points.
func (v *Value) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*v = Value{Magnitude: n, Unit: Pt}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode length")
	}
	parsed, err := ParseValue(s, Pt)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var valuePattern = regexp.MustCompile(`^\s*([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+\-]?[0-9]+)?)\s*([A-Za-z"']*)\s*$`)

// ParseValue parses a length such as "12mm", "0.5 in" or "3". Bare numbers
// take the unit def.
func ParseValue(s string, def Unit) (Value, error) {
	m := valuePattern.FindStringSubmatch(s)
	if m == nil {
		return Value{}, errors.New(errors.ErrCodeInvalidInput, "cannot parse length: %q", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot parse length: %q", s)
	}
	u := def
	if m[2] != "" {
		if u, err = ParseUnit(m[2]); err != nil {
			return Value{}, err
		}
	}
	return Value{Magnitude: n, Unit: u}, nil
}
