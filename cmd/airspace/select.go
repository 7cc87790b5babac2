package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

var selectCmd = &cobra.Command{
	Use:   "select FILE...",
	Short: "Select the volumes to draw",
	Long: "Loads the files, applies the display settings and altitude window, and prints " +
		"the visible volumes in draw order. With --at only the volumes containing that " +
		"position are printed.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, warnings, err := openStore(args, nil)
		if err != nil {
			return err
		}

		rule, labels, _, err := selectionFlags(cmd)
		if err != nil {
			return err
		}
		sel := store.Select(rule, labels)

		entries := sel.Visible()
		if at, _ := cmd.Flags().GetString("at"); at != "" {
			p, err := parsePoint(at)
			if err != nil {
				return err
			}
			entries = sel.At(p)
		}

		out := cmd.OutOrStdout()
		printEntries(out, entries)
		printWarnings(cmd.ErrOrStderr(), warnings)
		return nil
	},
}

func init() {
	addSelectionFlags(selectCmd)
	selectCmd.Flags().String("at", "", "only volumes containing this position (lat,lon)")
	rootCmd.AddCommand(selectCmd)
}

// addSelectionFlags registers the flags shared by select and compose.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("classes", nil, "classes to draw (default all)")
	cmd.Flags().Int("lower", 0, "bottom of the altitude window in feet")
	cmd.Flags().Int("upper", 0, "top of the altitude window in feet (default from max_level)")
	cmd.Flags().StringArray("set", nil, "display setting as name=value, repeatable (e.g. atz=classd, max_level=100, loa=LOA NORTH)")
}

// selectionFlags builds the filter rule, label options and settings from
// the shared flags and the configuration.
func selectionFlags(cmd *cobra.Command) (airspace.FilterRule, airspace.LabelOptions, airspace.Settings, error) {
	codes, _ := cmd.Flags().GetStringSlice("classes")
	classes, err := parseClasses(codes)
	if err != nil {
		return airspace.FilterRule{}, airspace.LabelOptions{}, airspace.Settings{}, err
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	settings, err := parseSettings(sets)
	if err != nil {
		return airspace.FilterRule{}, airspace.LabelOptions{}, airspace.Settings{}, err
	}

	rule := settings.FilterRule(classes...)
	if cmd.Flags().Changed("lower") {
		rule.Window.Lower, _ = cmd.Flags().GetInt("lower")
	}
	if cmd.Flags().Changed("upper") {
		rule.Window.Upper, _ = cmd.Flags().GetInt("upper")
	}
	if rule.Window.Lower > rule.Window.Upper {
		return airspace.FilterRule{}, airspace.LabelOptions{}, airspace.Settings{},
			eris.Errorf("altitude window %d-%d is inverted", rule.Window.Lower, rule.Window.Upper)
	}

	labels := cfg.LabelOptions()
	labels.Radio = labels.Radio || settings.Radio
	return rule, labels, settings, nil
}

// parseSettings applies name=value pairs to the default settings. The
// names loa, rat and wave enable one opt-in zone each.
func parseSettings(pairs []string) (airspace.Settings, error) {
	s := airspace.DefaultSettings()
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return airspace.Settings{}, eris.Errorf("setting %q: want name=value", pair)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		var action airspace.Action
		switch name {
		case "loa":
			action = airspace.SetLoa{Name: value, Checked: true}
		case "rat":
			action = airspace.SetRat{Name: value, Checked: true}
		case "wave":
			action = airspace.SetWave{Name: value, Checked: true}
		default:
			action = airspace.Set{Name: name, Value: value}
		}
		s = airspace.Reduce(s, action)
	}
	return s, nil
}

// printEntries writes one row per entry. Multi-line labels are joined with
// " / " to keep one row each.
func printEntries(out io.Writer, entries []airspace.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No airspace.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CLASS\tNAME\tLOWER\tUPPER\tLABEL")
	_, _ = fmt.Fprintln(w, "-----\t----\t-----\t-----\t-----")
	for _, e := range entries {
		alt := e.Volume.Altitude()
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Class, e.Volume.Name(), alt.Lower, alt.Upper,
			strings.ReplaceAll(e.Label, "\n", " / "))
	}
	_ = w.Flush()
}
