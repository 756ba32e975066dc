package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/ops"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

// boundsKind resolves a --kind flag, falling back to the configured kind.
func (c *CLI) boundsKind(s string) (shape.BoundsKind, error) {
	if s == "" {
		return c.Config.BoundsKind(), nil
	}
	return shape.ParseBoundsKind(s)
}

// unit resolves a --units flag, falling back to the configured unit.
func (c *CLI) unit(s string) (units.Unit, error) {
	if s == "" {
		return c.Config.Unit(), nil
	}
	return units.ParseUnit(s)
}

// precision resolves a --precision flag; negative means configured.
func (c *CLI) precision(p int) int {
	if p < 0 {
		return c.Config.Precision
	}
	return p
}

type boundsJSON struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

func toBoundsJSON(m ops.Measurement, u units.Unit) (boundsJSON, error) {
	// Bounds are in points; Width and Height already carry their own unit.
	vals := []units.Value{
		units.V(m.Bounds.Left, units.Pt), units.V(m.Bounds.Top, units.Pt),
		units.V(m.Bounds.Right, units.Pt), units.V(m.Bounds.Bottom, units.Pt),
		m.Width, m.Height,
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		c, err := v.In(u)
		if err != nil {
			return boundsJSON{}, err
		}
		out[i] = c.Magnitude
	}
	return boundsJSON{
		ID:     m.ID,
		Label:  m.Label,
		Left:   out[0],
		Top:    out[1],
		Right:  out[2],
		Bottom: out[3],
		Width:  out[4],
		Height: out[5],
		Unit:   u.String(),
	}, nil
}

func (c *CLI) boundsCommand() *cobra.Command {
	var (
		kind      string
		unitName  string
		precision int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "bounds <document.json>",
		Short: "Measure the bounds of the selection",
		Long: `Measure the bounds of every selected item and of the selection as a whole.

Visible bounds include stroke width; geometric bounds follow the path only.
Clipped groups measure as their clipping path.`,
		Example: `  artkit bounds poster.json
  artkit bounds poster.json --kind geometric --units mm --precision 1
  artkit bounds poster.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			k, err := c.boundsKind(kind)
			if err != nil {
				return err
			}
			u, err := c.unit(unitName)
			if err != nil {
				return err
			}
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			_, sum, err := c.newOpsRunner().Run(cmd.Context(), doc, ops.Measure{Kind: k, Unit: u})
			if err != nil {
				return err
			}

			c.savePrefs(cmd)
			w := cmd.OutOrStdout()
			if asJSON {
				out := struct {
					Kind      string       `json:"kind"`
					Items     []boundsJSON `json:"items"`
					Selection *boundsJSON  `json:"selection,omitempty"`
				}{Kind: k.String()}
				for _, m := range sum.Measurements {
					b, err := toBoundsJSON(m, u)
					if err != nil {
						return err
					}
					out.Items = append(out.Items, b)
				}
				if sum.Combined != nil {
					b, err := toBoundsJSON(*sum.Combined, u)
					if err != nil {
						return err
					}
					out.Selection = &b
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			table, err := measurementTable(sum.Measurements, sum.Combined, u, c.precision(precision))
			if err != nil {
				return err
			}
			fmt.Fprintln(w, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "bounds kind: visible or geometric (default from config)")
	cmd.Flags().StringVarP(&unitName, "units", "u", "", "display unit (default from config)")
	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "decimal places (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print machine-readable JSON")
	remember(cmd, "kind", "units", "precision")
	return cmd
}

func (c *CLI) convertCommand() *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "convert <value> [unit]",
		Short: "Convert a length between units",
		Long: `Convert a length such as "12mm" or "0.5in" to another unit.

A bare number takes the configured unit. Without a target unit the value is
printed in every supported unit.`,
		Example: `  artkit convert 25.4mm in
  artkit convert 72 --precision 4`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := units.ParseValue(args[0], c.Config.Unit())
			if err != nil {
				return err
			}
			p := c.precision(precision)
			w := cmd.OutOrStdout()
			if len(args) == 2 {
				to, err := units.ParseUnit(args[1])
				if err != nil {
					return err
				}
				out, err := v.In(to)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out.Format(p))
				return nil
			}
			for _, u := range units.All {
				out, err := v.In(u)
				if err != nil {
					return err
				}
				printKeyValue(w, u.String(), out.Format(p))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "decimal places (default from config)")
	return cmd
}
