package airspace

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxLevel is the default ceiling of the altitude window, as a
// flight level.
const DefaultMaxLevel = 660

// OverlayLayer selects an altitude-layer overlay drawn over the base map.
type OverlayLayer string

const (
	OverlayNone  OverlayLayer = ""
	OverlayFL195 OverlayLayer = "FL195"
	OverlayFL105 OverlayLayer = "FL105"
	OverlayATZDZ OverlayLayer = "ATZDZ"
)

// Local type tags the settings act on.
const (
	TypeATZ        = "ATZ"
	TypeILS        = "ILS"
	TypeUnlicensed = "NOATZ"
	TypeMicrolight = "UL"
	TypeGliding    = "GLIDER"
	TypeHIRTA      = "HIRTA"
	TypeGVS        = "GVS"
	TypeObstacle   = "OBSTACLE"
)

// Settings are the pilot's display choices. A Settings value is never
// modified in place; Reduce returns a new one.
//
// The optional types (ILS feathers, unlicensed airfields, microlight
// strips, gliding sites, HIRTA/GVS and obstacles) are hidden while their
// class is ClassUnknown, and drawn as that class otherwise.
type Settings struct {
	ATZ        Class
	ILS        Class
	Unlicensed Class
	Microlight Class
	Gliding    Class
	HirtaGVS   Class
	Obstacle   Class

	// Home is the pilot's home site, left off the map. Empty for none.
	Home string
	// MaxLevel is the top of the altitude window as a flight level.
	MaxLevel int
	// Radio adds frequencies to labels.
	Radio bool
	// Overlay is the altitude-layer overlay to draw.
	Overlay OverlayLayer

	// LOA, RAT and Wave list the enabled opt-in zones, sorted.
	LOA  []string
	RAT  []string
	Wave []string
}

// DefaultSettings returns the settings a new session starts with: ATZs
// drawn like control zones, optional types hidden, FL660 ceiling.
func DefaultSettings() Settings {
	return Settings{
		ATZ:      ClassOther,
		MaxLevel: DefaultMaxLevel,
	}
}

func (s Settings) clone() Settings {
	s.LOA = slices.Clone(s.LOA)
	s.RAT = slices.Clone(s.RAT)
	s.Wave = slices.Clone(s.Wave)
	return s
}

// Action is a settings change.
type Action interface {
	apply(s *Settings)
}

// Set changes a named option from its form value. Unknown names and
// unparsable values leave the settings unchanged.
//
// Names: atz, ils, unlicensed, microlight, gliding, hirta_gvs, obstacle
// (values classd, classf, classg, ctr, danger, restricted, gsec; anything
// else hides the type, except atz which falls back to ctr), max_level,
// radio (yes/no), home (a name, or "no"), overlay (fl195, fl105, atzdz).
type Set struct {
	Name  string
	Value string
}

// SetLoa enables or disables one LOA zone.
type SetLoa struct {
	Name    string
	Checked bool
}

// SetRat enables or disables one RAT zone.
type SetRat struct {
	Name    string
	Checked bool
}

// SetWave enables or disables one wave box.
type SetWave struct {
	Name    string
	Checked bool
}

// ClearLoa disables every LOA zone.
type ClearLoa struct{}

// ClearRat disables every RAT zone.
type ClearRat struct{}

// ClearWave disables every wave box.
type ClearWave struct{}

// Reduce returns the settings after action. s is not modified.
func Reduce(s Settings, action Action) Settings {
	next := s.clone()
	if action != nil {
		action.apply(&next)
	}
	return next
}

func (a Set) apply(s *Settings) {
	value := strings.TrimSpace(a.Value)

	switch a.Name {
	case "atz":
		c, ok := settingClass(value)
		if !ok {
			c = ClassOther
		}
		s.ATZ = c
	case "ils":
		s.ILS, _ = settingClass(value)
	case "unlicensed":
		s.Unlicensed, _ = settingClass(value)
	case "microlight":
		s.Microlight, _ = settingClass(value)
	case "gliding":
		s.Gliding, _ = settingClass(value)
	case "hirta_gvs":
		s.HirtaGVS, _ = settingClass(value)
	case "obstacle":
		s.Obstacle, _ = settingClass(value)
	case "max_level":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			s.MaxLevel = n
		}
	case "radio":
		s.Radio = value == "yes"
	case "home":
		if value == "no" {
			s.Home = ""
		} else {
			s.Home = value
		}
	case "overlay":
		switch value {
		case "fl195":
			s.Overlay = OverlayFL195
		case "fl105":
			s.Overlay = OverlayFL105
		case "atzdz":
			s.Overlay = OverlayATZDZ
		default:
			s.Overlay = OverlayNone
		}
	}
}

func (a SetLoa) apply(s *Settings)  { s.LOA = toggle(s.LOA, a.Name, a.Checked) }
func (a SetRat) apply(s *Settings)  { s.RAT = toggle(s.RAT, a.Name, a.Checked) }
func (a SetWave) apply(s *Settings) { s.Wave = toggle(s.Wave, a.Name, a.Checked) }

func (ClearLoa) apply(s *Settings)  { s.LOA = nil }
func (ClearRat) apply(s *Settings)  { s.RAT = nil }
func (ClearWave) apply(s *Settings) { s.Wave = nil }

// toggle adds or removes name, keeping set sorted and unique.
func toggle(set []string, name string, on bool) []string {
	i, found := slices.BinarySearch(set, name)
	switch {
	case on && !found:
		return slices.Insert(set, i, name)
	case !on && found:
		return slices.Delete(set, i, i+1)
	default:
		return set
	}
}

// settingClass maps a form value to the class a type is drawn as. Control
// zones and gliding sectors have no class of their own and draw as Other.
func settingClass(value string) (Class, bool) {
	switch value {
	case "classd":
		return ClassD, true
	case "classf":
		return ClassF, true
	case "classg":
		return ClassG, true
	case "ctr", "gsec":
		return ClassOther, true
	case "danger":
		return ClassDanger, true
	case "restricted":
		return ClassRestricted, true
	default:
		return ClassUnknown, false
	}
}

// FilterRule translates the settings into a filter rule over classes,
// every class when none are given. The window runs from the surface to
// MaxLevel.
func (s Settings) FilterRule(classes ...Class) FilterRule {
	if len(classes) == 0 {
		classes = AllClasses()
	}

	rule := FilterRule{
		Classes: slices.Clone(classes),
		Window:  Window{Lower: 0, Upper: s.MaxLevel * 100},
		Remap:   map[string]Class{TypeATZ: s.ATZ},
	}

	optional := []struct {
		class Class
		types []string
	}{
		{s.ILS, []string{TypeILS}},
		{s.Unlicensed, []string{TypeUnlicensed}},
		{s.Microlight, []string{TypeMicrolight}},
		{s.Gliding, []string{TypeGliding}},
		{s.HirtaGVS, []string{TypeHIRTA, TypeGVS}},
		{s.Obstacle, []string{TypeObstacle}},
	}
	for _, o := range optional {
		for _, t := range o.types {
			if o.class == ClassUnknown {
				rule.Hidden = append(rule.Hidden, t)
			} else {
				rule.Remap[t] = o.class
			}
		}
	}

	if s.Home != "" {
		rule.Excluded = []string{s.Home}
	}
	return rule
}

// LabelOptions returns label options with the given width and budget and
// the radio choice from the settings.
func (s Settings) LabelOptions(width, budget int) LabelOptions {
	return LabelOptions{Width: width, Budget: budget, Radio: s.Radio}
}

// ComposeOptions enables the chosen altitude-layer overlay and the checked
// LOA, RAT and wave zones.
func (s Settings) ComposeOptions() ComposeOptions {
	var enabled []string
	if s.Overlay != OverlayNone {
		enabled = append(enabled, string(s.Overlay))
	}
	enabled = append(enabled, s.LOA...)
	enabled = append(enabled, s.RAT...)
	enabled = append(enabled, s.Wave...)
	return ComposeOptions{Enabled: enabled}
}
