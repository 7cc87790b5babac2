package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// structuredParser reads the hierarchical airspace format. The document is
// YAML (JSON, being a YAML subset, is accepted too):
//
//	airspace:
//	  - name: LONDON CTR
//	    class: A
//	    type: CTR
//	    frequency: "118.905"
//	    lower: SFC
//	    upper: {value: 2500, unit: ft, ref: AMSL}
//	    geometry:
//	      - [51.6, -0.6]
//	      - [51.6, -0.1]
//	      - [51.3, -0.1]
//	      - [51.3, -0.6]
type structuredParser struct {
	opts ParseOptions
}

// structuredRecord mirrors one airspace record before validation. Pointer
// fields distinguish "absent" from "zero".
type structuredRecord struct {
	Name      string      `yaml:"name"`
	Class     string      `yaml:"class"`
	Type      string      `yaml:"type"`
	Frequency string      `yaml:"frequency"`
	Geometry  []yamlPoint `yaml:"geometry"`
	Lower     *yamlLimit  `yaml:"lower"`
	Upper     *yamlLimit  `yaml:"upper"`
}

func (p *structuredParser) Format() Format { return FormatStructured }

func (p *structuredParser) Parse(data []byte, source string) *Result {
	res := &Result{}

	nodes, err := recordNodes(data, "airspace")
	if err != nil {
		res.fail(&ErrMalformedRecord{Reason: err.Error()})
		return res
	}

	for _, node := range nodes {
		v, err := p.parseRecord(node)
		if err != nil {
			res.fail(err)
			continue
		}
		v.Source = source
		res.emit(v)
	}

	p.opts.filterClasses(res)
	return res
}

// parseRecord decodes and validates a single record node. Each record is
// decoded on its own so a type error in one cannot abort the file.
func (p *structuredParser) parseRecord(node *yaml.Node) (Volume, error) {
	name := nodeField(node, "name")
	line := node.Line

	var rec structuredRecord
	if err := node.Decode(&rec); err != nil {
		return Volume{}, &ErrMalformedRecord{Record: name, Line: line, Reason: err.Error()}
	}
	name = strings.TrimSpace(rec.Name)

	switch {
	case name == "":
		return Volume{}, &ErrMalformedRecord{Line: line, Reason: "missing name"}
	case strings.TrimSpace(rec.Class) == "":
		return Volume{}, &ErrMalformedRecord{Record: name, Line: line, Reason: "missing class"}
	case len(rec.Geometry) == 0:
		return Volume{}, &ErrMalformedRecord{Record: name, Line: line, Reason: "missing geometry"}
	case rec.Lower == nil || rec.Upper == nil:
		return Volume{}, &ErrMalformedRecord{Record: name, Line: line, Reason: "missing lower or upper altitude"}
	}

	class, ok := ClassFromCode(rec.Class)
	if !ok {
		return Volume{}, &ErrMalformedRecord{Record: name, Line: line, Reason: fmt.Sprintf("unknown class %q", rec.Class)}
	}

	ring, err := buildRing(rec.Geometry)
	if err != nil {
		return Volume{}, withRecord(err, name, line)
	}

	alt, err := NewAltitudeBound(rec.Lower.limit, rec.Upper.limit)
	if err != nil {
		return Volume{}, withRecord(err, name, line)
	}

	return Volume{
		Name:      name,
		Class:     class,
		LocalType: strings.ToUpper(strings.TrimSpace(rec.Type)),
		Frequency: strings.TrimSpace(rec.Frequency),
		Ring:      ring,
		Altitude:  alt,
		Format:    FormatStructured,
		Line:      line,
	}, nil
}

func buildRing(raw []yamlPoint) (Ring, error) {
	points := make([]Point, 0, len(raw))
	for i, rp := range raw {
		pt, err := NewPoint(rp.lat, rp.lon)
		if err != nil {
			return nil, &ErrInvalidGeometry{Reason: fmt.Sprintf("point %d: %v", i, err)}
		}
		points = append(points, pt)
	}
	return NormalizeRing(points)
}

// recordNodes returns the record nodes of a structured document: the
// sequence under the first of keys present, or the document itself when it
// is a bare sequence. An empty document has no records and is not an error.
func recordNodes(data []byte, keys ...string) ([]*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return root.Content, nil
	case yaml.MappingNode:
		for _, key := range keys {
			for i := 0; i+1 < len(root.Content); i += 2 {
				if root.Content[i].Value != key {
					continue
				}
				seq := root.Content[i+1]
				if seq.Kind != yaml.SequenceNode {
					return nil, fmt.Errorf("document: %q must be a list (line %d)", key, seq.Line)
				}
				return seq.Content, nil
			}
		}
		return nil, fmt.Errorf("document: missing top-level %q list", keys[0])
	default:
		return nil, fmt.Errorf("document: expected a mapping or list at line %d", root.Line)
	}
}

// nodeField returns the scalar value of key in a mapping node, for error
// context before the node has been decoded.
func nodeField(node *yaml.Node, key string) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key && node.Content[i+1].Kind == yaml.ScalarNode {
			return strings.TrimSpace(node.Content[i+1].Value)
		}
	}
	return ""
}

// yamlPoint accepts either a [lat, lon] pair or a {lat, lon} mapping.
type yamlPoint struct {
	lat, lon float64
}

func (p *yamlPoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: point needs [lat, lon], got %d values", node.Line, len(pair))
		}
		p.lat, p.lon = pair[0], pair[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			Lat *float64 `yaml:"lat"`
			Lon *float64 `yaml:"lon"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		if m.Lat == nil || m.Lon == nil {
			return fmt.Errorf("line %d: point needs both lat and lon", node.Line)
		}
		p.lat, p.lon = *m.Lat, *m.Lon
		return nil
	default:
		return fmt.Errorf("line %d: point must be [lat, lon] or {lat, lon}", node.Line)
	}
}

// yamlLimit accepts a symbolic scalar ("SFC", "FL195", "2500 ft") or a
// {value, unit, ref} mapping.
type yamlLimit struct {
	limit Limit
}

func (l *yamlLimit) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		limit, err := ParseLimit(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		l.limit = limit
		return nil
	case yaml.MappingNode:
		var m struct {
			Value *float64 `yaml:"value"`
			Unit  string   `yaml:"unit"`
			Ref   string   `yaml:"ref"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		value := 0.0
		if m.Value != nil {
			value = *m.Value
		} else if !isSymbolicRef(m.Ref) {
			return fmt.Errorf("line %d: altitude needs a value or a symbolic ref", node.Line)
		}
		limit, err := MakeLimit(value, m.Unit, m.Ref)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		l.limit = limit
		return nil
	default:
		return fmt.Errorf("line %d: altitude must be a scalar or a mapping", node.Line)
	}
}

func isSymbolicRef(ref string) bool {
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "SFC", "GND", "SURFACE", "UNL", "UNLIMITED":
		return true
	}
	return false
}
