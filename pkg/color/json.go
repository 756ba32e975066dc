package color

import (
	"encoding/json"

	"github.com/matzehuels/artkit/pkg/errors"
)

// jsonColor is the wire form of a Color. Exactly one field is set; a JSON
// null or empty object is None.
type jsonColor struct {
	RGB      *[3]float64   `json:"rgb,omitempty"`
	CMYK     *[4]float64   `json:"cmyk,omitempty"`
	Gray     *float64      `json:"gray,omitempty"`
	Hex      string        `json:"hex,omitempty"`
	Spot     *jsonSpot     `json:"spot,omitempty"`
	Gradient *jsonGradient `json:"gradient,omitempty"`
}

type jsonSpot struct {
	Name string  `json:"name"`
	Tint float64 `json:"tint"`
	Base Color   `json:"base"`
}

type jsonGradient struct {
	Type  string     `json:"type,omitempty"`
	Stops []jsonStop `json:"stops"`
}

type jsonStop struct {
	Ramp     float64  `json:"ramp"`
	Midpoint *float64 `json:"midpoint,omitempty"`
	Color    Color    `json:"color"`
}

// MarshalJSON encodes c as {"rgb":[r,g,b]}, {"cmyk":[...]}, {"gray":g},
// {"spot":{...}}, {"gradient":{...}} or null.
func (c Color) MarshalJSON() ([]byte, error) {
	var j jsonColor
	switch c.Kind {
	case KindNone:
		return []byte("null"), nil
	case KindRGB:
		j.RGB = &[3]float64{c.RGB.R, c.RGB.G, c.RGB.B}
	case KindCMYK:
		j.CMYK = &[4]float64{c.CMYK.C, c.CMYK.M, c.CMYK.Y, c.CMYK.K}
	case KindGray:
		g := c.Gray
		j.Gray = &g
	case KindSpot:
		j.Spot = &jsonSpot{Name: c.Spot.Name, Tint: c.Spot.Tint, Base: c.Spot.Base}
	case KindGradient:
		jg := &jsonGradient{Type: c.Gradient.Type.String()}
		for _, s := range c.Gradient.Stops {
			mid := s.Midpoint
			jg.Stops = append(jg.Stops, jsonStop{Ramp: s.Ramp, Midpoint: &mid, Color: s.Color})
		}
		j.Gradient = jg
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes the forms written by MarshalJSON, plus
// {"hex":"#rrggbb"} as a convenience for hand-written documents.
func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = None
		return nil
	}
	var j jsonColor
	if err := json.Unmarshal(data, &j); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "decode color")
	}
	switch {
	case j.RGB != nil:
		*c = NewRGB(j.RGB[0], j.RGB[1], j.RGB[2])
	case j.CMYK != nil:
		*c = NewCMYK(j.CMYK[0], j.CMYK[1], j.CMYK[2], j.CMYK[3])
	case j.Gray != nil:
		*c = NewGray(*j.Gray)
	case j.Hex != "":
		parsed, err := ParseHex(j.Hex)
		if err != nil {
			return err
		}
		*c = parsed
	case j.Spot != nil:
		if !j.Spot.Base.IsSolid() {
			return errors.New(errors.ErrCodeInvalidColor, "spot %q needs a solid base color", j.Spot.Name)
		}
		*c = NewSpot(j.Spot.Name, j.Spot.Base, j.Spot.Tint)
	case j.Gradient != nil:
		g := Gradient{}
		if j.Gradient.Type == "radial" {
			g.Type = Radial
		}
		for _, s := range j.Gradient.Stops {
			mid := 50.0
			if s.Midpoint != nil {
				mid = *s.Midpoint
			}
			g.Stops = append(g.Stops, Stop{Ramp: s.Ramp, Midpoint: mid, Color: s.Color})
		}
		*c = NewGradient(g)
	default:
		*c = None
	}
	return nil
}
