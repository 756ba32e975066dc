package color

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/artkit/pkg/errors"
)

// Hex formats c as "#rrggbb", converting to RGB first.
func Hex(c Color) (string, error) {
	cf, err := toColorful(c)
	if err != nil {
		return "", err
	}
	return cf.Clamped().Hex(), nil
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse hex color %q", s)
	}
	r, g, b := cf.RGB255()
	return NewRGB(float64(r), float64(g), float64(b)), nil
}

// Swatch is a named color.
type Swatch struct {
	Name  string
	Color Color
}

// Nearest returns the swatch perceptually closest to c (CIE Lab distance)
// and that distance.
func Nearest(c Color, swatches []Swatch) (Swatch, float64, error) {
	if len(swatches) == 0 {
		return Swatch{}, 0, errors.New(errors.ErrCodeInvalidInput, "no swatches to match against")
	}
	target, err := toColorful(c)
	if err != nil {
		return Swatch{}, 0, err
	}
	best, bestDist := -1, math.Inf(1)
	for i, s := range swatches {
		cf, err := toColorful(s.Color)
		if err != nil {
			continue
		}
		if d := target.DistanceLab(cf); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Swatch{}, 0, errors.New(errors.ErrCodeInvalidColor, "no swatch resolves to a solid color")
	}
	return swatches[best], bestDist, nil
}

func toColorful(c Color) (colorful.Color, error) {
	rgb, err := Convert(c, SpaceRGB)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{R: rgb.RGB.R / 255, G: rgb.RGB.G / 255, B: rgb.RGB.B / 255}, nil
}
