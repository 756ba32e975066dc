// Package color models document colors and implements the color math behind
// averaging, gradient interpolation and color-blindness simulation.
//
// # Color Model
//
// [Color] is a tagged union over the paint kinds a document can hold:
//
//   - RGB: channels 0..255
//   - CMYK: channels 0..100
//   - Gray: 0..100 percent black
//   - Spot: a named ink with a solid base color and a tint percentage
//   - Gradient: a sequence of color stops along a 0..100 ramp
//   - None: no paint
//
// Spot colors resolve to their base moved toward paper white by
// (1 - tint/100). Gradients flatten to their stop colors wherever a single
// representative color is needed.
//
// # Averaging
//
// [Average] computes the channel-wise arithmetic mean in the requested
// document space and floors every channel:
//
//	avg, err := color.Average([]color.Color{color.NewRGB(255, 0, 0), color.NewRGB(0, 0, 255)}, color.SpaceRGB)
//	// avg = RGB(127, 0, 127)
//
// # Color Blindness
//
// [Simulate] implements the Wickline/HCIRN confusion-line algorithm with
// fixed RGB/XYZ matrices and gamma 2.2. Anomalous trichromacies blend the
// dichromat result with the original at 1.75:1.
package color
