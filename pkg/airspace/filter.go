package airspace

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// FilterRule says which volumes are visible.
//
// A volume is visible when its effective class is in Classes and its
// altitude bound intersects Window. The effective class is the published
// class unless Remap names the volume's local type. Volumes whose local
// type is in Hidden, or whose name is in Excluded, are never visible.
// With Remap, Hidden and Excluded empty the rule is exactly
// "class in Classes and altitude intersects Window".
type FilterRule struct {
	Classes []Class
	Window  Window

	// Remap assigns a class to a local type, e.g. "ATZ" drawn as class D.
	Remap map[string]Class
	// Hidden lists local types that are never drawn.
	Hidden []string
	// Excluded lists volume names that are never drawn, e.g. the pilot's
	// home airfield.
	Excluded []string
}

// effectiveClass returns the class v is filtered and ordered by.
func (r FilterRule) effectiveClass(v Volume) Class {
	if v.localType == "" {
		return v.class
	}
	if c, ok := r.Remap[v.localType]; ok {
		return c
	}
	for _, t := range slices.Sorted(maps.Keys(r.Remap)) {
		if strings.EqualFold(t, v.localType) {
			return r.Remap[t]
		}
	}
	return v.class
}

// visible evaluates the rule for v.
func (r FilterRule) visible(v Volume, class Class) bool {
	if v.localType != "" && slices.ContainsFunc(r.Hidden, func(t string) bool {
		return strings.EqualFold(t, v.localType)
	}) {
		return false
	}
	if slices.ContainsFunc(r.Excluded, func(n string) bool {
		return nameKey(n) == v.key
	}) {
		return false
	}
	return slices.Contains(r.Classes, class) && v.altitude.Intersects(r.Window)
}

// fingerprint renders the rule canonically; equal rules give equal
// strings regardless of slice or map ordering.
func (r FilterRule) fingerprint() string {
	var b strings.Builder

	classes := slices.Clone(r.Classes)
	slices.Sort(classes)
	fmt.Fprintf(&b, "c%v|w%d-%d|", slices.Compact(classes), r.Window.Lower, r.Window.Upper)

	for _, k := range slices.Sorted(maps.Keys(r.Remap)) {
		fmt.Fprintf(&b, "r%q=%d,", k, r.Remap[k])
	}
	b.WriteString("|h")
	for _, h := range sortedKeys(r.Hidden, strings.ToUpper) {
		b.WriteString(strconv.Quote(h) + ",")
	}
	b.WriteString("|x")
	for _, x := range sortedKeys(r.Excluded, nameKey) {
		b.WriteString(strconv.Quote(x) + ",")
	}
	return b.String()
}

func sortedKeys(values []string, key func(string) string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, key(v))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
