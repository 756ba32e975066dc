package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rememberKey marks flags whose last value is stored as a preference.
const rememberKey = "artkit_remember"

// remember marks flags of cmd whose values are saved after a successful
// run and restored as defaults on the next one.
func remember(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		_ = cmd.Flags().SetAnnotation(n, rememberKey, []string{"true"})
	}
}

// prefsName is the preference set name of cmd, e.g. "color-blind".
func prefsName(cmd *cobra.Command) string {
	path := strings.TrimPrefix(cmd.CommandPath(), appName+" ")
	return strings.ReplaceAll(path, " ", "-")
}

// applyPrefs sets every remembered flag the user did not pass explicitly
// to its stored value.
func (c *CLI) applyPrefs(cmd *cobra.Command) {
	if c.Prefs == nil {
		return
	}
	var saved map[string]string
	ok, err := c.Prefs.Load(prefsName(cmd), &saved)
	if err != nil {
		c.Logger.Warn("ignoring stored preferences", "command", prefsName(cmd), "error", err)
		return
	}
	if !ok {
		return
	}
	for name, value := range saved {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed || f.Annotations[rememberKey] == nil {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			c.Logger.Warn("ignoring stored preference", "flag", name, "value", value, "error", err)
			continue
		}
		c.Logger.Debug("restored preference", "flag", name, "value", value)
	}
}

// savePrefs stores the current value of every remembered flag.
func (c *CLI) savePrefs(cmd *cobra.Command) {
	if c.Prefs == nil {
		return
	}
	values := map[string]string{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Annotations[rememberKey] != nil {
			values[f.Name] = f.Value.String()
		}
	})
	if len(values) == 0 {
		return
	}
	if err := c.Prefs.Save(prefsName(cmd), values); err != nil {
		c.Logger.Warn("could not save preferences", "error", err)
	}
}

func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset the options remembered between runs",
	}
	cmd.AddCommand(c.prefsShowCommand())
	cmd.AddCommand(c.prefsPathCommand())
	cmd.AddCommand(c.prefsResetCommand())
	return cmd
}

func (c *CLI) prefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [command]",
		Short: "Print stored preferences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Prefs == nil {
				printInfo(cmd.OutOrStdout(), "Preferences are disabled")
				return nil
			}
			names := args
			if len(names) == 0 {
				all, err := c.Prefs.List()
				if err != nil {
					return err
				}
				names = all
			}
			if len(names) == 0 {
				printInfo(cmd.OutOrStdout(), "No stored preferences")
				return nil
			}
			w := cmd.OutOrStdout()
			for _, name := range names {
				var values map[string]any
				ok, err := c.Prefs.Load(name, &values)
				if err != nil {
					return err
				}
				if !ok {
					printWarning(w, "No preferences stored for %s", name)
					continue
				}
				data, _ := json.MarshalIndent(values, "", "  ")
				fmt.Fprintln(w, StyleTitle.Render(name))
				fmt.Fprintln(w, string(data))
			}
			return nil
		},
	}
}

func (c *CLI) prefsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path [command]",
		Short: "Print the preferences directory, or the file of one command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Prefs == nil {
				printInfo(cmd.OutOrStdout(), "Preferences are disabled")
				return nil
			}
			if len(args) == 1 {
				p, err := c.Prefs.Path(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Prefs.Dir())
			return nil
		},
	}
}

func (c *CLI) prefsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [command]",
		Short: "Forget stored preferences of one command, or all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Prefs == nil {
				printInfo(cmd.OutOrStdout(), "Preferences are disabled")
				return nil
			}
			names := args
			if len(names) == 0 {
				all, err := c.Prefs.List()
				if err != nil {
					return err
				}
				names = all
			}
			for _, name := range names {
				if err := c.Prefs.Delete(name); err != nil {
					return err
				}
			}
			printSuccess(cmd.OutOrStdout(), "Reset %d preference sets", len(names))
			return nil
		},
	}
}
