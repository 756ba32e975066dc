package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/ops"
)

func (c *CLI) colorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Recolor the selection or inspect colors",
	}
	cmd.AddCommand(c.colorAverageCommand())
	cmd.AddCommand(c.colorBlindCommand())
	cmd.AddCommand(c.colorHexCommand())
	return cmd
}

func (c *CLI) colorAverageCommand() *cobra.Command {
	var (
		target string
		out    outputFlags
	)

	cmd := &cobra.Command{
		Use:   "average <document.json>",
		Short: "Replace selected colors with their average",
		Long: `Replace the fill or stroke of every painted item in the selection with the
average of those colors, computed in the document color space. Spot colors
resolve to their tinted base; gradients contribute every stop.`,
		Example: `  artkit color average poster.json
  artkit color average poster.json --target stroke --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			return c.mutate(cmd, mutation{
				input: args[0],
				flags: out,
				build: func() (ops.Operation, error) {
					t, err := ops.ParseTarget(target)
					if err != nil {
						return nil, err
					}
					return ops.AverageColors{Target: t}, nil
				},
			})
		},
	}

	cmd.Flags().StringVar(&target, "target", "fill", "paint to average: fill or stroke")
	out.register(cmd, false)
	remember(cmd, "target")
	return cmd
}

func deficiencyNames() []string {
	names := make([]string, len(color.Deficiencies))
	for i, d := range color.Deficiencies {
		names[i] = d.String()
	}
	return names
}

func (c *CLI) colorBlindCommand() *cobra.Command {
	var (
		kind string
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "blind <document.json>",
		Short: "Simulate a color vision deficiency on the selection",
		Long: `Recolor fills and strokes of the selection as seen with a color vision
deficiency. Gradients are converted stop by stop.

Types: ` + strings.Join(deficiencyNames(), ", "),
		Example: `  artkit color blind poster.json --type deuteranopia
  artkit color blind poster.json -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			d, err := color.ParseDeficiency(kind)
			if err != nil {
				return err
			}
			start := 0
			for i, x := range color.Deficiencies {
				if x == d {
					start = i
				}
			}
			last := float64(len(color.Deficiencies) - 1)
			at := func(v float64) color.Deficiency { return color.Deficiencies[int(v)] }
			return c.mutate(cmd, mutation{
				input: args[0],
				flags: out,
				build: func() (ops.Operation, error) {
					return ops.SimulateBlindness{Deficiency: d}, nil
				},
				tune: &tuner{
					label:  "type",
					value:  float64(start),
					step:   1,
					max:    last,
					format: func(v float64) string { return at(v).String() },
					build: func(v float64) (ops.Operation, error) {
						return ops.SimulateBlindness{Deficiency: at(v)}, nil
					},
				},
				flag:      "type",
				flagValue: func(v float64) string { return at(v).String() },
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", color.Deuteranopia.String(), "deficiency to simulate")
	out.register(cmd, true)
	remember(cmd, "type")
	return cmd
}

// swatches collects the solid fills of every item in doc, one per color.
func swatches(doc *document.Document) []color.Swatch {
	seen := map[string]bool{}
	var out []color.Swatch
	for _, it := range doc.Items() {
		if !it.Filled || !it.Fill.IsSolid() {
			continue
		}
		hex, err := color.Hex(it.Fill)
		if err != nil || seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, color.Swatch{Name: it.Label(), Color: it.Fill})
	}
	return out
}

func (c *CLI) colorHexCommand() *cobra.Command {
	var nearest string

	cmd := &cobra.Command{
		Use:   "hex <color>...",
		Short: "Show hex colors in every color space",
		Long: `Print each hex color as RGB, CMYK and grayscale. With --nearest, also
report the closest solid fill in a document by perceptual distance.`,
		Example: `  artkit color hex '#ff8800' 0af
  artkit color hex '#ff8800' --nearest poster.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var palette []color.Swatch
			if nearest != "" {
				doc, err := c.loadDocument(nearest)
				if err != nil {
					return err
				}
				if palette = swatches(doc); len(palette) == 0 {
					return errors.New(errors.ErrCodeInvalidInput, "%s has no solid fills", nearest)
				}
			}

			w := cmd.OutOrStdout()
			for _, arg := range args {
				col, err := color.ParseHex(arg)
				if err != nil {
					return err
				}
				hex, err := color.Hex(col)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, StyleTitle.Render(hex))
				for _, space := range []color.Space{color.SpaceRGB, color.SpaceCMYK, color.SpaceGray} {
					conv, err := color.Convert(col, space)
					if err != nil {
						return err
					}
					printKeyValue(w, space.String(), conv.String())
				}
				if palette != nil {
					s, dist, err := color.Nearest(col, palette)
					if err != nil {
						return err
					}
					sh, _ := color.Hex(s.Color)
					printKeyValue(w, "nearest", fmt.Sprintf("%s %s (ΔE %.3f)", s.Name, sh, dist))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&nearest, "nearest", "", "document whose fills to match against")
	return cmd
}
