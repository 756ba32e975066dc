package color

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/artkit/pkg/errors"
)

func TestAverageRedBlue(t *testing.T) {
	avg, err := Average([]Color{NewRGB(255, 0, 0), NewRGB(0, 0, 255)}, SpaceRGB)
	require.NoError(t, err)
	assert.Equal(t, NewRGB(127, 0, 127), avg)
}

func TestAverageEmpty(t *testing.T) {
	_, err := Average(nil, SpaceRGB)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = Average([]Color{None, None}, SpaceRGB)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestAverageGradientAndSpot(t *testing.T) {
	grad := NewGradient(Gradient{Stops: []Stop{
		{Ramp: 0, Midpoint: 50, Color: NewRGB(0, 0, 0)},
		{Ramp: 100, Midpoint: 50, Color: NewRGB(255, 255, 255)},
	}})
	// 50% tint of pure red is (255, 127.5, 127.5).
	spot := NewSpot("Warm Red", NewRGB(255, 0, 0), 50)

	avg, err := Average([]Color{grad, spot, None}, SpaceRGB)
	require.NoError(t, err)
	// (0 + 255 + 255) / 3 = 170; (0 + 255 + 127.5) / 3 = 127.5 -> 127
	assert.Equal(t, NewRGB(170, 127, 127), avg)
}

func TestAverageCMYKSpace(t *testing.T) {
	avg, err := Average([]Color{NewCMYK(0, 100, 100, 0), NewCMYK(100, 0, 0, 0)}, SpaceCMYK)
	require.NoError(t, err)
	assert.Equal(t, NewCMYK(50, 50, 50, 0), avg)

	gray, err := Average([]Color{NewGray(10), NewGray(25)}, SpaceGray)
	require.NoError(t, err)
	assert.Equal(t, NewGray(17), gray)
}

func TestResolveSpot(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want Color
	}{
		{"full tint rgb", NewSpot("a", NewRGB(10, 20, 30), 100), NewRGB(10, 20, 30)},
		{"zero tint rgb", NewSpot("a", NewRGB(10, 20, 30), 0), NewRGB(255, 255, 255)},
		{"half tint cmyk", NewSpot("a", NewCMYK(0, 100, 80, 20), 50), NewCMYK(0, 50, 40, 10)},
		{"quarter tint gray", NewSpot("a", NewGray(80), 25), NewGray(20)},
		{"solid passthrough", NewGray(5), NewGray(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.in)
			require.NoError(t, err)
			assert.True(t, Equal(got, tt.want, 1e-9), "Resolve = %v, want %v", got, tt.want)
		})
	}

	_, err := Resolve(None)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidColor))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		in    Color
		space Space
		want  Color
	}{
		{"rgb red to cmyk", NewRGB(255, 0, 0), SpaceCMYK, NewCMYK(0, 100, 100, 0)},
		{"rgb black to cmyk", NewRGB(0, 0, 0), SpaceCMYK, NewCMYK(0, 0, 0, 100)},
		{"cmyk to rgb", NewCMYK(0, 100, 100, 0), SpaceRGB, NewRGB(255, 0, 0)},
		{"gray to rgb", NewGray(100), SpaceRGB, NewRGB(0, 0, 0)},
		{"gray to cmyk", NewGray(40), SpaceCMYK, NewCMYK(0, 0, 0, 40)},
		{"white to gray", NewRGB(255, 255, 255), SpaceGray, NewGray(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in, tt.space)
			require.NoError(t, err)
			assert.True(t, Equal(got, tt.want, 1e-9), "Convert = %v, want %v", got, tt.want)
		})
	}
}

func TestGradientAt(t *testing.T) {
	g := Gradient{Stops: []Stop{
		{Ramp: 100, Midpoint: 50, Color: NewRGB(200, 0, 0)},
		{Ramp: 0, Midpoint: 50, Color: NewRGB(0, 0, 0)},
	}}

	mid, err := g.At(50)
	require.NoError(t, err)
	assert.InDelta(t, 100, mid.RGB.R, 1e-9)

	before, err := g.At(-10)
	require.NoError(t, err)
	assert.Equal(t, NewRGB(0, 0, 0), before)

	after, err := g.At(150)
	require.NoError(t, err)
	assert.Equal(t, NewRGB(200, 0, 0), after)

	// Moving the midpoint to 25% puts the half blend at ramp 25.
	g.Stops[1].Midpoint = 25
	warped, err := g.At(25)
	require.NoError(t, err)
	assert.InDelta(t, 100, warped.RGB.R, 1e-9)

	_, err = Gradient{}.At(0)
	assert.Error(t, err)
}

func TestHex(t *testing.T) {
	h, err := Hex(NewRGB(255, 128, 0))
	require.NoError(t, err)
	assert.Equal(t, "#ff8000", h)

	c, err := ParseHex("#0f0")
	require.NoError(t, err)
	assert.Equal(t, NewRGB(0, 255, 0), c)

	c, err = ParseHex("336699")
	require.NoError(t, err)
	assert.Equal(t, NewRGB(0x33, 0x66, 0x99), c)

	_, err = ParseHex("#zzzzzz")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidColor))
}

func TestNearest(t *testing.T) {
	swatches := []Swatch{
		{Name: "black", Color: NewRGB(0, 0, 0)},
		{Name: "red", Color: NewRGB(255, 0, 0)},
		{Name: "blue", Color: NewCMYK(100, 100, 0, 0)},
	}
	got, dist, err := Nearest(NewRGB(230, 20, 10), swatches)
	require.NoError(t, err)
	assert.Equal(t, "red", got.Name)
	assert.Greater(t, dist, 0.0)

	_, _, err = Nearest(NewRGB(0, 0, 0), nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestSpaceParse(t *testing.T) {
	for _, s := range []Space{SpaceRGB, SpaceCMYK, SpaceGray} {
		got, err := ParseSpace(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSpace("lab")
	assert.Error(t, err)
}

func TestColorJSON(t *testing.T) {
	in := []Color{
		None,
		NewRGB(1, 2, 3),
		NewCMYK(10, 20, 30, 40),
		NewGray(55),
		NewSpot("PANTONE 185 C", NewCMYK(0, 91, 76, 0), 60),
		NewGradient(Gradient{Type: Radial, Stops: []Stop{
			{Ramp: 0, Midpoint: 50, Color: NewRGB(0, 0, 0)},
			{Ramp: 100, Midpoint: 30, Color: NewGray(10)},
		}}),
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Color
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestColorJSONHexInput(t *testing.T) {
	var c Color
	require.NoError(t, json.Unmarshal([]byte(`{"hex":"#ff0000"}`), &c))
	assert.Equal(t, NewRGB(255, 0, 0), c)

	err := json.Unmarshal([]byte(`{"spot":{"name":"x","tint":10,"base":null}}`), &c)
	assert.Error(t, err)
}
