package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/artkit/pkg/errors"
)

// Space is a document color space.
type Space int

const (
	SpaceRGB Space = iota
	SpaceCMYK
	SpaceGray
)

// String returns the lowercase name of the space.
func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceCMYK:
		return "cmyk"
	case SpaceGray:
		return "gray"
	}
	return fmt.Sprintf("space(%d)", int(s))
}

// ParseSpace resolves "rgb", "cmyk" or "gray".
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb", "":
		return SpaceRGB, nil
	case "cmyk":
		return SpaceCMYK, nil
	case "gray", "grey", "grayscale":
		return SpaceGray, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidColor, "unknown color space: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Space) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Space) UnmarshalText(b []byte) error {
	v, err := ParseSpace(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Kind identifies which variant a Color holds.
type Kind int

const (
	KindNone Kind = iota
	KindRGB
	KindCMYK
	KindGray
	KindSpot
	KindGradient
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRGB:
		return "rgb"
	case KindCMYK:
		return "cmyk"
	case KindGray:
		return "gray"
	case KindSpot:
		return "spot"
	case KindGradient:
		return "gradient"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RGB channels, 0..255.
type RGB struct{ R, G, B float64 }

// CMYK channels, 0..100.
type CMYK struct{ C, M, Y, K float64 }

// Spot is a named ink. Base is always a solid RGB, CMYK or Gray color.
type Spot struct {
	Name string
	Base Color
	Tint float64 // 0..100
}

// Color is a tagged union; only the field matching Kind is meaningful.
type Color struct {
	Kind     Kind
	RGB      RGB
	CMYK     CMYK
	Gray     float64
	Spot     *Spot
	Gradient *Gradient
}

// None is the absence of paint.
var None = Color{}

// NewRGB returns an RGB color.
func NewRGB(r, g, b float64) Color { return Color{Kind: KindRGB, RGB: RGB{r, g, b}} }

// NewCMYK returns a CMYK color.
func NewCMYK(c, m, y, k float64) Color { return Color{Kind: KindCMYK, CMYK: CMYK{c, m, y, k}} }

// NewGray returns a gray color (percent black).
func NewGray(g float64) Color { return Color{Kind: KindGray, Gray: g} }

// NewSpot returns a spot color of base at tint percent.
func NewSpot(name string, base Color, tint float64) Color {
	return Color{Kind: KindSpot, Spot: &Spot{Name: name, Base: base, Tint: tint}}
}

// NewGradient returns a gradient color.
func NewGradient(g Gradient) Color { return Color{Kind: KindGradient, Gradient: &g} }

// IsSolid reports whether c is an RGB, CMYK or Gray value.
func (c Color) IsSolid() bool {
	return c.Kind == KindRGB || c.Kind == KindCMYK || c.Kind == KindGray
}

// Clone returns a deep copy of c.
func (c Color) Clone() Color {
	out := c
	if c.Spot != nil {
		s := *c.Spot
		s.Base = c.Spot.Base.Clone()
		out.Spot = &s
	}
	if c.Gradient != nil {
		g := c.Gradient.Clone()
		out.Gradient = &g
	}
	return out
}

// String renders c compactly, e.g. "rgb(255,0,0)".
func (c Color) String() string {
	switch c.Kind {
	case KindNone:
		return "none"
	case KindRGB:
		return fmt.Sprintf("rgb(%g,%g,%g)", c.RGB.R, c.RGB.G, c.RGB.B)
	case KindCMYK:
		return fmt.Sprintf("cmyk(%g,%g,%g,%g)", c.CMYK.C, c.CMYK.M, c.CMYK.Y, c.CMYK.K)
	case KindGray:
		return fmt.Sprintf("gray(%g)", c.Gray)
	case KindSpot:
		return fmt.Sprintf("spot(%q,%g%%)", c.Spot.Name, c.Spot.Tint)
	case KindGradient:
		return fmt.Sprintf("gradient(%d stops)", len(c.Gradient.Stops))
	}
	return c.Kind.String()
}

// Resolve turns a spot color into the equivalent solid color by moving its
// base toward white by (1 - tint/100). Solid colors are returned unchanged.
// None and gradients are an error.
func Resolve(c Color) (Color, error) {
	switch c.Kind {
	case KindRGB, KindCMYK, KindGray:
		return c, nil
	case KindSpot:
		if c.Spot == nil || !c.Spot.Base.IsSolid() {
			return Color{}, errors.New(errors.ErrCodeInvalidColor, "spot color has no solid base")
		}
		paper := 1 - clamp(c.Spot.Tint, 0, 100)/100
		b := c.Spot.Base
		switch b.Kind {
		case KindRGB:
			return NewRGB(
				b.RGB.R+(255-b.RGB.R)*paper,
				b.RGB.G+(255-b.RGB.G)*paper,
				b.RGB.B+(255-b.RGB.B)*paper,
			), nil
		case KindCMYK:
			ink := 1 - paper
			return NewCMYK(b.CMYK.C*ink, b.CMYK.M*ink, b.CMYK.Y*ink, b.CMYK.K*ink), nil
		default:
			return NewGray(b.Gray * (1 - paper)), nil
		}
	case KindNone:
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "cannot resolve an empty color")
	case KindGradient:
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "cannot resolve a gradient to a single color")
	}
	return Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown color kind: %v", c.Kind)
}

// Flatten expands gradients into their stop colors, resolves spot colors and
// drops None, returning only solid colors.
func Flatten(colors []Color) ([]Color, error) {
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		switch c.Kind {
		case KindNone:
			continue
		case KindGradient:
			for _, s := range c.Gradient.Stops {
				solid, err := Resolve(s.Color)
				if err != nil {
					return nil, err
				}
				out = append(out, solid)
			}
		default:
			solid, err := Resolve(c)
			if err != nil {
				return nil, err
			}
			out = append(out, solid)
		}
	}
	return out, nil
}

// Convert converts a solid (or spot) color into space. The formulas are the
// naive device conversions, not ICC-managed.
func Convert(c Color, space Space) (Color, error) {
	solid, err := Resolve(c)
	if err != nil {
		return Color{}, err
	}
	switch space {
	case SpaceRGB:
		return toRGB(solid), nil
	case SpaceCMYK:
		return toCMYK(solid), nil
	case SpaceGray:
		return toGray(solid), nil
	}
	return Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown color space: %v", space)
}

func toRGB(c Color) Color {
	switch c.Kind {
	case KindCMYK:
		k := 1 - c.CMYK.K/100
		return NewRGB(
			255*(1-c.CMYK.C/100)*k,
			255*(1-c.CMYK.M/100)*k,
			255*(1-c.CMYK.Y/100)*k,
		)
	case KindGray:
		v := 255 * (1 - c.Gray/100)
		return NewRGB(v, v, v)
	}
	return c
}

func toCMYK(c Color) Color {
	switch c.Kind {
	case KindRGB:
		r, g, b := c.RGB.R/255, c.RGB.G/255, c.RGB.B/255
		k := 1 - max(r, g, b)
		if k >= 1 {
			return NewCMYK(0, 0, 0, 100)
		}
		return NewCMYK(
			100*(1-r-k)/(1-k),
			100*(1-g-k)/(1-k),
			100*(1-b-k)/(1-k),
			100*k,
		)
	case KindGray:
		return NewCMYK(0, 0, 0, c.Gray)
	}
	return c
}

func toGray(c Color) Color {
	switch c.Kind {
	case KindRGB:
		return NewGray(100 * (1 - luma(c.RGB)/255))
	case KindCMYK:
		return toGray(toRGB(c))
	}
	return c
}

// luma is the Rec. 601 weighted brightness, 0..255.
func luma(c RGB) float64 { return 0.299*c.R + 0.587*c.G + 0.114*c.B }

// Channels returns the channel values of a solid color in order.
func (c Color) Channels() []float64 {
	switch c.Kind {
	case KindRGB:
		return []float64{c.RGB.R, c.RGB.G, c.RGB.B}
	case KindCMYK:
		return []float64{c.CMYK.C, c.CMYK.M, c.CMYK.Y, c.CMYK.K}
	case KindGray:
		return []float64{c.Gray}
	}
	return nil
}

func fromChannels(space Space, ch []float64) Color {
	switch space {
	case SpaceCMYK:
		return NewCMYK(ch[0], ch[1], ch[2], ch[3])
	case SpaceGray:
		return NewGray(ch[0])
	}
	return NewRGB(ch[0], ch[1], ch[2])
}

// Average returns the channel-wise mean of colors in space, each channel
// floored. Gradients contribute every stop; spot colors contribute their
// tinted equivalent; None is ignored. An empty (or all-None) input is an
// ErrCodeInvalidInput error.
func Average(colors []Color, space Space) (Color, error) {
	flat, err := Flatten(colors)
	if err != nil {
		return Color{}, err
	}
	if len(flat) == 0 {
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "no colors to average")
	}

	var sum []float64
	for _, c := range flat {
		conv, err := Convert(c, space)
		if err != nil {
			return Color{}, err
		}
		ch := conv.Channels()
		if sum == nil {
			sum = make([]float64, len(ch))
		}
		for i, v := range ch {
			sum[i] += v
		}
	}
	for i := range sum {
		sum[i] = math.Floor(sum[i] / float64(len(flat)))
	}
	return fromChannels(space, sum), nil
}

// Equal reports whether two solid colors of the same kind match within eps.
func Equal(a, b Color, eps float64) bool {
	if a.Kind != b.Kind {
		return false
	}
	ca, cb := a.Channels(), b.Channels()
	if ca == nil {
		return a.Kind == KindNone
	}
	for i := range ca {
		if math.Abs(ca[i]-cb[i]) > eps {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 { return max(lo, min(v, hi)) }
