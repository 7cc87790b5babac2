package airspace

import (
	"cmp"
	"slices"
	"strings"
)

// Entry is one volume in a selection.
type Entry struct {
	Volume Volume
	// Class is the effective class after any remapping.
	Class Class
	// Visible reports whether the rule lets the volume be drawn.
	Visible bool
	// Label is the display text; empty for invisible entries.
	Label string
	// Abbreviated is set when the label budget shortened Label.
	Abbreviated bool
}

// SelectionResult is every catalog volume, in display order, with its
// visibility and label. It is immutable.
type SelectionResult struct {
	entries []Entry
}

// Select applies rule to every volume in c with default label options.
//
// The result is deterministic: the same catalog and rule always give the
// same entries in the same order.
func Select(c *Catalog, rule FilterRule) SelectionResult {
	return SelectWithOptions(c, rule, DefaultLabelOptions())
}

// SelectWithOptions is Select with explicit label options.
//
// Entries are ordered by class priority (prohibited, restricted and danger
// areas first), then lower limit ascending, then name, then catalog order.
func SelectWithOptions(c *Catalog, rule FilterRule, opts LabelOptions) SelectionResult {
	if c == nil || len(c.volumes) == 0 {
		return SelectionResult{}
	}

	type ranked struct {
		entry Entry
		pos   int
	}
	rs := make([]ranked, len(c.volumes))
	for i, v := range c.volumes {
		class := rule.effectiveClass(v)
		e := Entry{Volume: v, Class: class, Visible: rule.visible(v, class)}
		if e.Visible {
			e.Label = opts.fullLabel(v)
		}
		rs[i] = ranked{entry: e, pos: i}
	}

	slices.SortFunc(rs, func(a, b ranked) int {
		return cmp.Or(
			cmp.Compare(a.entry.Class.Priority(), b.entry.Class.Priority()),
			cmp.Compare(a.entry.Volume.altitude.Lower.Level(), b.entry.Volume.altitude.Lower.Level()),
			strings.Compare(a.entry.Volume.name, b.entry.Volume.name),
			cmp.Compare(a.pos, b.pos),
		)
	})

	entries := make([]Entry, len(rs))
	for i, r := range rs {
		entries[i] = r.entry
	}
	opts.applyBudget(entries)

	return SelectionResult{entries: entries}
}

// Len returns the number of entries, visible or not.
func (s SelectionResult) Len() int { return len(s.entries) }

// Entries returns every entry in display order.
func (s SelectionResult) Entries() []Entry { return slices.Clone(s.entries) }

// Visible returns the visible entries in display order.
func (s SelectionResult) Visible() []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Visible {
			out = append(out, e)
		}
	}
	return out
}

// At returns the visible entries whose boundary contains p, in display
// order: the airspace the aircraft is currently inside.
func (s SelectionResult) At(p Point) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Visible && e.Volume.Contains(p) {
			out = append(out, e)
		}
	}
	return out
}

// visibleVolume returns the first visible volume whose normalised name is
// key.
func (s SelectionResult) visibleVolume(key string) (Volume, bool) {
	for _, e := range s.entries {
		if e.Visible && e.Volume.key == key {
			return e.Volume, true
		}
	}
	return Volume{}, false
}

// Equal reports whether two results hold the same entries in the same
// order.
func (s SelectionResult) Equal(other SelectionResult) bool {
	return slices.EqualFunc(s.entries, other.entries, func(a, b Entry) bool {
		return a.Volume.Equal(b.Volume) &&
			a.Class == b.Class &&
			a.Visible == b.Visible &&
			a.Label == b.Label &&
			a.Abbreviated == b.Abbreviated
	})
}
