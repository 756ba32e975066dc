package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/ops"
	"github.com/matzehuels/artkit/pkg/units"
)

// lengthTuner adjusts a length in unit u.
func lengthTuner(label string, v units.Value, step, hi float64, build func(units.Value) (ops.Operation, error)) *tuner {
	u := v.Unit
	return &tuner{
		label:  label,
		value:  v.Magnitude,
		step:   step,
		max:    hi,
		format: func(x float64) string { return units.V(x, u).Format(3) },
		build:  func(x float64) (ops.Operation, error) { return build(units.V(x, u)) },
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (c *CLI) alignCommand() *cobra.Command {
	var (
		horizontal string
		vertical   string
		artboard   int
		kind       string
		out        outputFlags
	)

	cmd := &cobra.Command{
		Use:   "align <document.json>",
		Short: "Align the selection to an artboard",
		Long: `Move the selection as one unit so its bounds line up with an edge or the
center of an artboard. Clipped groups align by their clipping path.`,
		Example: `  artkit align poster.json --horizontal center --vertical center
  artkit align poster.json --horizontal left --kind geometric --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			return c.mutate(cmd, mutation{
				input: args[0],
				flags: out,
				build: func() (ops.Operation, error) {
					h, err := ops.ParseHAlign(horizontal)
					if err != nil {
						return nil, err
					}
					v, err := ops.ParseVAlign(vertical)
					if err != nil {
						return nil, err
					}
					k, err := c.boundsKind(kind)
					if err != nil {
						return nil, err
					}
					return ops.Align{Artboard: artboard, Kind: k, Horizontal: h, Vertical: v}, nil
				},
			})
		},
	}

	cmd.Flags().StringVar(&horizontal, "horizontal", "", "horizontal: left, center or right")
	cmd.Flags().StringVar(&vertical, "vertical", "", "vertical: top, center or bottom")
	cmd.Flags().IntVar(&artboard, "artboard", 0, "artboard index")
	cmd.Flags().StringVar(&kind, "kind", "", "bounds kind: visible or geometric (default from config)")
	out.register(cmd, false)
	remember(cmd, "horizontal", "vertical", "kind")
	return cmd
}

func (c *CLI) resizeCommand() *cobra.Command {
	var (
		size         string
		side         string
		proportional bool
		kind         string
		out          outputFlags
	)

	cmd := &cobra.Command{
		Use:   "resize <document.json>",
		Short: "Resize each selected item to a target size",
		Long: `Scale every selected item about its center so one side of its bounds
matches --size. Bare numbers use the configured unit. Stroke widths scale
with the item.`,
		Example: `  artkit resize poster.json --size 50mm
  artkit resize poster.json --size 2in --side height --proportional=false
  artkit resize poster.json --size 50mm -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			v, err := units.ParseValue(size, c.Config.Unit())
			if err != nil {
				return err
			}
			s, err := ops.ParseSide(side)
			if err != nil {
				return err
			}
			k, err := c.boundsKind(kind)
			if err != nil {
				return err
			}
			build := func(v units.Value) (ops.Operation, error) {
				return ops.Resize{Size: v, Kind: k, Side: s, Proportional: proportional}, nil
			}
			return c.mutate(cmd, mutation{
				input:     args[0],
				flags:     out,
				build:     func() (ops.Operation, error) { return build(v) },
				tune:      lengthTuner("size", v, 1, 10*v.Magnitude+100, build),
				flag:      "size",
				flagValue: func(x float64) string { return units.V(x, v.Unit).String() },
			})
		},
	}

	cmd.Flags().StringVar(&size, "size", "100", "target size, e.g. 50mm")
	cmd.Flags().StringVar(&side, "side", "longest", "side to match: width, height or longest")
	cmd.Flags().BoolVar(&proportional, "proportional", true, "keep the aspect ratio")
	cmd.Flags().StringVar(&kind, "kind", "", "bounds kind: visible or geometric (default from config)")
	out.register(cmd, true)
	remember(cmd, "size", "side", "proportional", "kind")
	return cmd
}

func (c *CLI) fitArtboardCommand() *cobra.Command {
	var (
		artboard int
		margin   string
		kind     string
		out      outputFlags
	)

	cmd := &cobra.Command{
		Use:   "fit-artboard <document.json>",
		Short: "Fit an artboard to the selection",
		Long:  `Resize an artboard to the bounds of the selection plus a margin on every side.`,
		Example: `  artkit fit-artboard poster.json --margin 5mm
  artkit fit-artboard poster.json -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			m, err := units.ParseValue(margin, c.Config.Unit())
			if err != nil {
				return err
			}
			k, err := c.boundsKind(kind)
			if err != nil {
				return err
			}
			build := func(v units.Value) (ops.Operation, error) {
				return ops.FitArtboard{Artboard: artboard, Kind: k, Margin: v}, nil
			}
			return c.mutate(cmd, mutation{
				input:     args[0],
				flags:     out,
				build:     func() (ops.Operation, error) { return build(m) },
				tune:      lengthTuner("margin", m, 1, 10*m.Magnitude+100, build),
				flag:      "margin",
				flagValue: func(x float64) string { return units.V(x, m.Unit).String() },
			})
		},
	}

	cmd.Flags().IntVar(&artboard, "artboard", 0, "artboard index")
	cmd.Flags().StringVar(&margin, "margin", "0", "margin around the selection, e.g. 5mm")
	cmd.Flags().StringVar(&kind, "kind", "", "bounds kind: visible or geometric (default from config)")
	out.register(cmd, true)
	remember(cmd, "margin", "kind")
	return cmd
}

func (c *CLI) polygonCommand() *cobra.Command {
	var (
		layer string
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:   "polygon <document.json>",
		Short: "Build a closed polygon through the selected anchors",
		Long: `Collect the anchors of every selected path, order them by angle around
their centroid and add a closed polygon through them. The polygon becomes
the new selection.`,
		Example: `  artkit polygon points.json --layer Outline`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			return c.mutate(cmd, mutation{
				input: args[0],
				flags: out,
				build: func() (ops.Operation, error) { return ops.PointsToPolygon{Layer: layer}, nil },
			})
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "layer for the polygon (default first layer)")
	out.register(cmd, false)
	remember(cmd, "layer")
	return cmd
}

func (c *CLI) smoothCommand() *cobra.Command {
	var (
		tension float64
		out     outputFlags
	)

	cmd := &cobra.Command{
		Use:   "smooth <document.json>",
		Short: "Turn selected paths into smooth splines",
		Long: `Replace every selected path with a Catmull-Rom spline through its anchors.
Tension 0 keeps straight segments; higher values round the corners more.`,
		Example: `  artkit smooth sketch.json --tension 0.5
  artkit smooth sketch.json -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			build := func(t float64) (ops.Operation, error) { return ops.SmoothPoints{Tension: t}, nil }
			return c.mutate(cmd, mutation{
				input: args[0],
				flags: out,
				build: func() (ops.Operation, error) { return build(tension) },
				tune: &tuner{
					label: "tension",
					value: tension,
					step:  0.05,
					max:   1,
					build: build,
				},
				flag:      "tension",
				flagValue: formatFloat,
			})
		},
	}

	cmd.Flags().Float64Var(&tension, "tension", 1, "curve tension")
	out.register(cmd, true)
	remember(cmd, "tension")
	return cmd
}

func (c *CLI) scatterCommand() *cobra.Command {
	var (
		count  int
		radius string
		seed   uint64
		kind   string
		layer  string
		out    outputFlags
	)

	cmd := &cobra.Command{
		Use:   "scatter <document.json>",
		Short: "Scatter circles inside the selection bounds",
		Long: `Add randomly placed circles inside the bounds of the selection, grouped and
selected. The same seed always produces the same layout.`,
		Example: `  artkit scatter poster.json --count 200 --radius 1.5mm
  artkit scatter poster.json --seed 7 -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			r, err := units.ParseValue(radius, c.Config.Unit())
			if err != nil {
				return err
			}
			k, err := c.boundsKind(kind)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = c.Config.Seed
			}
			build := func(n float64) (ops.Operation, error) {
				return ops.Scatter{Count: int(n), Radius: r, Seed: seed, Kind: k, Layer: layer}, nil
			}
			return c.mutate(cmd, mutation{
				input: args[0],
				flags: out,
				build: func() (ops.Operation, error) { return build(float64(count)) },
				tune: &tuner{
					label:  "count",
					value:  float64(count),
					step:   1,
					min:    1,
					max:    10000,
					format: func(v float64) string { return strconv.Itoa(int(v)) },
					build:  build,
				},
				flag:      "count",
				flagValue: func(v float64) string { return strconv.Itoa(int(v)) },
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 50, "number of circles")
	cmd.Flags().StringVar(&radius, "radius", "2", "circle radius, e.g. 1.5mm")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVar(&kind, "kind", "", "bounds kind: visible or geometric (default from config)")
	cmd.Flags().StringVar(&layer, "layer", "", "layer for the circles (default first layer)")
	out.register(cmd, true)
	remember(cmd, "count", "radius", "kind")
	return cmd
}
