package airspace

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/beetlebugorg/airspace/internal/parser"
)

// ComposeOptions controls which opt-in overlay zones are drawn.
type ComposeOptions struct {
	// Enabled lists opt-in zones to draw, by zone name or group name
	// (case-insensitive). Always-active and referencing zones ignore it.
	Enabled []string
}

func (o ComposeOptions) enabled(z parser.OverlayZone) bool {
	for _, name := range o.Enabled {
		if nameKey(name) == nameKey(z.Name) || strings.EqualFold(name, z.Group) {
			return true
		}
	}
	return false
}

// Compose layers overlay zones over a selection with no opt-in zones
// enabled. See ComposeWithOptions.
func Compose(c *Catalog, sel SelectionResult, overlays []Source) (*DrawableSet, []Warning) {
	return ComposeWithOptions(c, sel, overlays, ComposeOptions{})
}

// ComposeWithOptions builds the DrawableSet: the visible volumes of sel in
// selection order, then overlay zones in source and file order.
//
// Zones are handled by their activation:
//   - always-active zones are always drawn;
//   - referencing zones name a base volume. A name the catalog does not
//     hold gives an UnresolvedOverlayReference warning and the zone is
//     dropped. Otherwise the zone is drawn while its base is visible; a
//     zone with no vertex inside its base is drawn with an
//     OverlayOutsideBase warning;
//   - opt-in zones are drawn when enabled in opts.
//
// Overlay files are best-effort: bad zones are reported and skipped.
func ComposeWithOptions(c *Catalog, sel SelectionResult, overlays []Source, opts ComposeOptions) (*DrawableSet, []Warning) {
	set := &DrawableSet{}
	var warnings []Warning

	for _, e := range sel.entries {
		if !e.Visible {
			continue
		}
		set.add(Drawable{
			Kind:     DrawableVolume,
			Name:     e.Volume.name,
			Rings:    []Ring{e.Volume.ring},
			Label:    e.Label,
			Class:    e.Class,
			Altitude: e.Volume.altitude,
			Source:   e.Volume.source,
		})
	}

	for _, src := range overlays {
		zones, errs := parser.ParseOverlays(src.Data, src.Name)
		for _, err := range errs {
			warnings = append(warnings, recordWarning(src.Name, err))
		}
		if len(zones) == 0 {
			warnings = append(warnings, Warning{
				Kind:   WarningEmptySource,
				Source: src.Name,
				Err:    eris.New("no overlay zones"),
			})
		}

		for _, z := range zones {
			switch z.Activation {
			case parser.ActivationAlways:
				set.add(overlayDrawable(z))

			case parser.ActivationReference:
				key := nameKey(z.Reference)
				if c == nil || len(c.byKey[key]) == 0 {
					warnings = append(warnings, Warning{
						Kind:   WarningUnresolvedOverlayReference,
						Source: z.Source,
						Record: z.Name,
						Line:   z.Line,
						Err:    eris.Errorf("zone %q references unknown volume %q", z.Name, z.Reference),
					})
					continue
				}
				base, ok := sel.visibleVolume(key)
				if !ok {
					continue
				}
				if !touchesBase(z, base) {
					warnings = append(warnings, Warning{
						Kind:   WarningOverlayOutsideBase,
						Source: z.Source,
						Record: z.Name,
						Line:   z.Line,
						Err:    eris.Errorf("zone %q has no point inside %q", z.Name, base.name),
					})
				}
				set.add(overlayDrawable(z))

			case parser.ActivationOptIn:
				if opts.enabled(z) {
					set.add(overlayDrawable(z))
				}
			}
		}
	}

	return set, warnings
}

func overlayDrawable(z parser.OverlayZone) Drawable {
	return Drawable{
		Kind:      DrawableOverlay,
		Name:      z.Name,
		Rings:     z.Rings,
		Label:     z.Name,
		Reference: z.Reference,
		Group:     z.Group,
		Source:    z.Source,
	}
}

// touchesBase reports whether any vertex of z lies inside base.
func touchesBase(z parser.OverlayZone, base Volume) bool {
	for _, r := range z.Rings {
		for _, p := range r {
			if base.Contains(p) {
				return true
			}
		}
	}
	return false
}
