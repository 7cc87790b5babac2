package parser

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Activation says when an overlay zone is drawn.
type Activation int

const (
	// ActivationAlways zones are drawn whatever the filter.
	ActivationAlways Activation = iota
	// ActivationReference zones are drawn when the named base volume is
	// visible.
	ActivationReference
	// ActivationOptIn zones are drawn only when the pilot enables them.
	ActivationOptIn
)

func (a Activation) String() string {
	switch a {
	case ActivationAlways:
		return "always"
	case ActivationReference:
		return "reference"
	case ActivationOptIn:
		return "opt-in"
	default:
		return "unknown"
	}
}

// OverlayZone is supplementary geometry layered over the catalog. It is not
// an airspace class and is never stored in a catalog.
type OverlayZone struct {
	Name  string
	Rings []Ring

	Activation Activation
	// Reference names the base volume for ActivationReference. It is a
	// lookup key resolved at compose time, not a link.
	Reference string
	// Group names the opt-in set for ActivationOptIn, e.g. "LOA".
	Group string

	Source string
	Line   int
}

// overlayRecord mirrors one zone record before validation.
type overlayRecord struct {
	Name       string        `yaml:"name"`
	Geometry   []yamlPoint   `yaml:"geometry"`
	Rings      [][]yamlPoint `yaml:"rings"`
	References string        `yaml:"references"`
	Group      string        `yaml:"group"`
}

// ParseOverlays reads an overlay document:
//
//	zones:
//	  - name: LONDON CTR FEATHER
//	    references: LONDON CTR
//	    geometry: [[51.6, -0.6], [51.7, -0.6], [51.7, -0.5]]
//	  - name: LOA NORTH
//	    group: LOA
//	    rings:
//	      - [[52.0, -1.0], [52.1, -1.0], [52.1, -0.9]]
//
// The list may also sit under "airspace" or be the whole document. Bad
// records are reported and skipped.
func ParseOverlays(data []byte, source string) ([]OverlayZone, []error) {
	nodes, err := recordNodes(data, "zones", "airspace")
	if err != nil {
		return nil, []error{&ErrMalformedRecord{Reason: err.Error()}}
	}

	var (
		zones []OverlayZone
		errs  []error
	)
	for _, node := range nodes {
		z, err := parseOverlayRecord(node)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		z.Source = source
		zones = append(zones, z)
	}
	return zones, errs
}

func parseOverlayRecord(node *yaml.Node) (OverlayZone, error) {
	name := nodeField(node, "name")
	line := node.Line

	var rec overlayRecord
	if err := node.Decode(&rec); err != nil {
		return OverlayZone{}, &ErrMalformedRecord{Record: name, Line: line, Reason: err.Error()}
	}
	name = strings.TrimSpace(rec.Name)
	ref := strings.TrimSpace(rec.References)
	group := strings.TrimSpace(rec.Group)

	switch {
	case name == "":
		return OverlayZone{}, &ErrMalformedRecord{Line: line, Reason: "missing name"}
	case len(rec.Geometry) == 0 && len(rec.Rings) == 0:
		return OverlayZone{}, &ErrMalformedRecord{Record: name, Line: line, Reason: "missing geometry"}
	case len(rec.Geometry) > 0 && len(rec.Rings) > 0:
		return OverlayZone{}, &ErrMalformedRecord{Record: name, Line: line, Reason: "both geometry and rings given"}
	case ref != "" && group != "":
		return OverlayZone{}, &ErrMalformedRecord{Record: name, Line: line, Reason: "a zone cannot both reference a volume and belong to a group"}
	}

	raw := rec.Rings
	if len(rec.Geometry) > 0 {
		raw = [][]yamlPoint{rec.Geometry}
	}
	rings := make([]Ring, 0, len(raw))
	for i, r := range raw {
		ring, err := buildRing(r)
		if err != nil {
			var ge *ErrInvalidGeometry
			if len(raw) > 1 && errors.As(err, &ge) {
				err = &ErrInvalidGeometry{Reason: fmt.Sprintf("ring %d: %s", i, ge.Reason)}
			}
			return OverlayZone{}, withRecord(err, name, line)
		}
		rings = append(rings, ring)
	}

	z := OverlayZone{Name: name, Rings: rings, Line: line}
	switch {
	case ref != "":
		z.Activation = ActivationReference
		z.Reference = ref
	case group != "":
		z.Activation = ActivationOptIn
		z.Group = strings.ToUpper(group)
	default:
		z.Activation = ActivationAlways
	}
	return z, nil
}
