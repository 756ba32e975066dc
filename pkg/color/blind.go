package color

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f64"

	"github.com/matzehuels/artkit/pkg/errors"
)

// Deficiency is a color vision deficiency to simulate.
type Deficiency int

const (
	Protanopia Deficiency = iota
	Protanomaly
	Deuteranopia
	Deuteranomaly
	Tritanopia
	Tritanomaly
	Achromatopsia
	Achromatomaly
)

// Deficiencies lists every supported deficiency.
var Deficiencies = []Deficiency{
	Protanopia, Protanomaly,
	Deuteranopia, Deuteranomaly,
	Tritanopia, Tritanomaly,
	Achromatopsia, Achromatomaly,
}

var deficiencyNames = map[Deficiency]string{
	Protanopia:    "protanopia",
	Protanomaly:   "protanomaly",
	Deuteranopia:  "deuteranopia",
	Deuteranomaly: "deuteranomaly",
	Tritanopia:    "tritanopia",
	Tritanomaly:   "tritanomaly",
	Achromatopsia: "achromatopsia",
	Achromatomaly: "achromatomaly",
}

func (d Deficiency) String() string {
	if s, ok := deficiencyNames[d]; ok {
		return s
	}
	return fmt.Sprintf("deficiency(%d)", int(d))
}

// ParseDeficiency resolves a deficiency by name, case-insensitively.
func ParseDeficiency(s string) (Deficiency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range deficiencyNames {
		if name == s {
			return d, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown color deficiency: %q", s)
}

// confusion describes a dichromat confusion point and the axis of the
// remaining color plane in uv chromaticity.
type confusion struct {
	cpu, cpv float64
	am, ayi  float64
}

var (
	protan = confusion{cpu: 0.735, cpv: 0.265, am: 1.273463, ayi: -0.073894}
	deutan = confusion{cpu: 1.14, cpv: -0.14, am: 0.968437, ayi: 0.003331}
	tritan = confusion{cpu: 0.171, cpv: -0.003, am: 0.062921, ayi: 0.292119}
)

const (
	gamma       = 2.2
	whiteX      = 0.312713
	whiteY      = 0.329016
	whiteZ      = 0.358271
	anomalyMix  = 1.75
	anomalyNorm = anomalyMix + 1
)

var (
	rgbToXYZ = f64.Mat3{
		0.430574, 0.341550, 0.178325,
		0.222015, 0.706655, 0.071330,
		0.020183, 0.129553, 0.939180,
	}
	xyzToRGB = f64.Mat3{
		3.063218, -1.393325, -0.475802,
		-0.969243, 1.875966, 0.041555,
		0.067871, -0.228834, 1.069251,
	}
)

func mul(m f64.Mat3, v f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Simulate returns c as perceived with deficiency d. Non-RGB inputs are
// converted to RGB, simulated and converted back to their original space.
// Spot colors resolve to their tinted equivalent first. Gradients map stop
// by stop. None is returned unchanged.
func Simulate(c Color, d Deficiency) (Color, error) {
	switch c.Kind {
	case KindNone:
		return c, nil
	case KindGradient:
		g, err := c.Gradient.Map(func(s Color) (Color, error) { return Simulate(s, d) })
		if err != nil {
			return Color{}, err
		}
		return NewGradient(g), nil
	}

	solid, err := Resolve(c)
	if err != nil {
		return Color{}, err
	}
	rgb := toRGB(solid).RGB
	in := f64.Vec3{rgb.R, rgb.G, rgb.B}

	var out f64.Vec3
	switch d {
	case Protanopia:
		out = dichromat(in, protan)
	case Protanomaly:
		out = anomalize(in, dichromat(in, protan))
	case Deuteranopia:
		out = dichromat(in, deutan)
	case Deuteranomaly:
		out = anomalize(in, dichromat(in, deutan))
	case Tritanopia:
		out = dichromat(in, tritan)
	case Tritanomaly:
		out = anomalize(in, dichromat(in, tritan))
	case Achromatopsia:
		out = monochrome(in)
	case Achromatomaly:
		out = anomalize(in, monochrome(in))
	default:
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "unknown color deficiency: %v", d)
	}

	return Convert(NewRGB(out[0], out[1], out[2]), spaceOf(solid))
}

// dichromat projects an 0..255 RGB color onto the confusion line of cb.
func dichromat(rgb f64.Vec3, cb confusion) f64.Vec3 {
	lin := f64.Vec3{
		math.Pow(rgb[0]/255, gamma),
		math.Pow(rgb[1]/255, gamma),
		math.Pow(rgb[2]/255, gamma),
	}
	xyz := mul(rgbToXYZ, lin)
	y := xyz[1]

	var u, v float64
	if sum := xyz[0] + xyz[1] + xyz[2]; sum != 0 {
		u, v = xyz[0]/sum, xyz[1]/sum
	}

	// Neutral gray with the same luminance.
	nx := whiteX * y / whiteY
	nz := whiteZ * y / whiteY

	var clm float64
	if u < cb.cpu {
		clm = (cb.cpv - v) / (cb.cpu - u)
	} else {
		clm = (v - cb.cpv) / (u - cb.cpu)
	}
	clyi := v - u*clm
	du := (cb.ayi - clyi) / (clm - cb.am)
	dv := clm*du + clyi

	sim := f64.Vec3{du * y / dv, y, (1 - (du + dv)) * y / dv}
	diff := f64.Vec3{nx - sim[0], 0, nz - sim[2]}

	s := mul(xyzToRGB, sim)
	dd := mul(xyzToRGB, diff)

	// Shift toward neutral until every channel fits the gamut.
	adjust := 0.0
	for i := 0; i < 3; i++ {
		if dd[i] == 0 {
			continue
		}
		target := 1.0
		if s[i] < 0 {
			target = 0
		}
		a := (target - s[i]) / dd[i]
		if a >= 0 && a <= 1 && a > adjust {
			adjust = a
		}
	}

	var out f64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = delinearize(s[i] + adjust*dd[i])
	}
	return out
}

func delinearize(v float64) float64 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	}
	return 255 * math.Pow(v, 1/gamma)
}

func anomalize(orig, sim f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		(anomalyMix*sim[0] + orig[0]) / anomalyNorm,
		(anomalyMix*sim[1] + orig[1]) / anomalyNorm,
		(anomalyMix*sim[2] + orig[2]) / anomalyNorm,
	}
}

func monochrome(rgb f64.Vec3) f64.Vec3 {
	z := math.Round(0.299*rgb[0] + 0.587*rgb[1] + 0.114*rgb[2])
	return f64.Vec3{z, z, z}
}
