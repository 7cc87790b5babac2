package airspace

import (
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
)

// DefaultLabelWidth is the default label line width in characters.
const DefaultLabelWidth = 24

// LabelOptions controls label text.
type LabelOptions struct {
	// Width wraps labels to lines of at most this many characters. Words
	// longer than a line are truncated. Zero disables wrapping.
	Width int

	// Budget caps the total characters of all visible labels. When the
	// full labels exceed it, the lowest-priority entries are abbreviated
	// to their name first. Zero means no cap.
	Budget int

	// Radio appends the controlling frequency when one is published.
	Radio bool
}

// DefaultLabelOptions returns label options with defaults.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{Width: DefaultLabelWidth}
}

// fullLabel renders "NAME LOWER-UPPER [FREQ]" wrapped to the width.
func (o LabelOptions) fullLabel(v Volume) string {
	text := v.name + " " + v.altitude.String()
	if o.Radio && v.frequency != "" {
		text += " " + v.frequency
	}
	return o.wrap(text)
}

// shortLabel is the name alone, on one line.
func (o LabelOptions) shortLabel(v Volume) string {
	return truncate(v.name, o.Width)
}

func (o LabelOptions) wrap(text string) string {
	if o.Width <= 0 {
		return text
	}
	lines := strings.Split(wordwrap.WrapString(text, uint(o.Width)), "\n")
	for i, line := range lines {
		lines[i] = truncate(line, o.Width)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// labelCost counts the characters a label occupies, ignoring line breaks.
func labelCost(label string) int {
	return utf8.RuneCountInString(label) - strings.Count(label, "\n")
}

// applyBudget abbreviates visible labels from the lowest priority up until
// the total fits. entries must already be in selection order.
func (o LabelOptions) applyBudget(entries []Entry) {
	if o.Budget <= 0 {
		return
	}

	total := 0
	for _, e := range entries {
		total += labelCost(e.Label)
	}

	for i := len(entries) - 1; i >= 0 && total > o.Budget; i-- {
		e := &entries[i]
		if !e.Visible {
			continue
		}
		short := o.shortLabel(e.Volume)
		total -= labelCost(e.Label) - labelCost(short)
		e.Label = short
		e.Abbreviated = true
	}
}
