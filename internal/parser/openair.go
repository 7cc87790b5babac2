package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// legacyParser reads the line-oriented OpenAir command language:
//
//	AC D
//	AN EXAMPLE CTA
//	AL 1500ft
//	AH FL65
//	DP 51:30:00 N 000:30:00 W
//	V X=51:20:00 N 000:20:00 W
//	DB 51:30:00 N 000:30:00 W, 51:10:00 N 000:10:00 W
//	DC 2.0
//
// Each AC line starts a record; the record ends at the next AC or at the end
// of input.
type legacyParser struct {
	opts ParseOptions
}

func (p *legacyParser) Format() Format { return FormatLegacy }

// legacyState is the tagged state of the directive stream.
type legacyState int

const (
	// stateAwaitingHeader: no record open; only AC is valid.
	stateAwaitingHeader legacyState = iota
	// stateBuildingRing: a record is open and accepts every directive.
	stateBuildingRing
	// stateClosed: a circle has completed the ring. Metadata directives are
	// still accepted but further geometry is not.
	stateClosed
	// stateRecordError: the current record is broken and has been reported.
	// Directives are discarded until the next AC.
	stateRecordError
)

func (s legacyState) String() string {
	switch s {
	case stateAwaitingHeader:
		return "awaiting-header"
	case stateBuildingRing:
		return "building-ring"
	case stateClosed:
		return "closed"
	case stateRecordError:
		return "record-error"
	default:
		return "unknown"
	}
}

// legacyRecord accumulates one record's directives.
type legacyRecord struct {
	line      int
	name      string
	class     Class
	localType string
	frequency string
	lower     *Limit
	upper     *Limit
	points    []Point

	// arc variables set by "V X=" and "V D="
	center    *Point
	clockwise bool
}

// legacyScanner drives the state machine over one buffer.
type legacyScanner struct {
	step   float64
	source string
	res    *Result
	state  legacyState
	rec    *legacyRecord
}

func (p *legacyParser) Parse(data []byte, source string) *Result {
	s := &legacyScanner{
		step:   p.opts.arcStep(),
		source: source,
		res:    &Result{},
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		s.line(lineNo, sc.Text())
	}
	if err := sc.Err(); err != nil {
		s.res.fail(&ErrMalformedRecord{Line: lineNo + 1, Reason: fmt.Sprintf("read: %v", err)})
	}
	s.finish()

	p.opts.filterClasses(s.res)
	return s.res
}

// line handles one input line.
func (s *legacyScanner) line(n int, text string) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "*") {
		return
	}
	// Trailing comments are allowed after any directive.
	if i := strings.Index(text, "*"); i > 0 {
		text = strings.TrimSpace(text[:i])
	}

	cmd, arg, _ := strings.Cut(text, " ")
	cmd = strings.ToUpper(cmd)
	arg = strings.TrimSpace(arg)

	if cmd == "AC" {
		s.finish()
		s.header(n, arg)
		return
	}

	switch s.state {
	case stateAwaitingHeader:
		s.res.fail(&ErrMalformedRecord{Line: n, Reason: fmt.Sprintf("%s directive before any AC header", cmd)})
		s.state = stateRecordError
	case stateRecordError:
		// discarded until the next header
	case stateBuildingRing, stateClosed:
		if err := s.directive(cmd, arg); err != nil {
			s.abort(n, err)
		}
	}
}

// header opens a new record from an AC line.
func (s *legacyScanner) header(n int, code string) {
	class, localType, ok := classFromLegacy(code)
	if !ok {
		s.rec = nil
		s.res.fail(&ErrMalformedRecord{Line: n, Reason: fmt.Sprintf("unknown class %q", code)})
		s.state = stateRecordError
		return
	}
	s.rec = &legacyRecord{line: n, class: class, localType: localType, clockwise: true}
	s.state = stateBuildingRing
}

// abort reports err for the current record and discards the rest of it.
func (s *legacyScanner) abort(n int, err error) {
	name := ""
	if s.rec != nil {
		name = s.rec.name
	}
	switch e := err.(type) {
	case *ErrInvalidGeometry:
		s.res.fail(&ErrInvalidGeometry{Record: name, Line: n, Reason: e.Reason})
	case *ErrInvalidCoordinate:
		s.res.fail(&ErrInvalidGeometry{Record: name, Line: n, Reason: e.Error()})
	default:
		s.res.fail(&ErrMalformedRecord{Record: name, Line: n, Reason: err.Error()})
	}
	s.rec = nil
	s.state = stateRecordError
}

// directive applies one directive to the open record.
func (s *legacyScanner) directive(cmd, arg string) error {
	rec := s.rec
	switch cmd {
	case "AN":
		rec.name = arg
	case "AY":
		rec.localType = strings.ToUpper(arg)
	case "AF":
		rec.frequency = arg
	case "AL", "AH":
		limit, err := ParseLimit(arg)
		if err != nil {
			return err
		}
		if cmd == "AL" {
			rec.lower = &limit
		} else {
			rec.upper = &limit
		}
	case "AG", "AT", "AA", "SP", "SB":
		// call sign, label placement, activation and styling carry nothing
		// the model keeps
	case "V":
		return s.variable(arg)
	case "DP", "DA", "DB", "DC":
		if s.state == stateClosed {
			return fmt.Errorf("%s after the ring was closed by DC", cmd)
		}
		return s.geometry(cmd, arg)
	default:
		return fmt.Errorf("unsupported directive %q", cmd)
	}
	return nil
}

func (s *legacyScanner) variable(arg string) error {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("malformed variable %q", arg)
	}
	value = strings.TrimSpace(value)

	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "X":
		center, err := parseLegacyCoordinate(value)
		if err != nil {
			return err
		}
		s.rec.center = &center
	case "D":
		switch value {
		case "+":
			s.rec.clockwise = true
		case "-":
			s.rec.clockwise = false
		default:
			return fmt.Errorf("arc direction must be + or -, got %q", value)
		}
	case "W", "Z":
		// airway width and display zoom
	default:
		return fmt.Errorf("unknown variable %q", key)
	}
	return nil
}

func (s *legacyScanner) geometry(cmd, arg string) error {
	rec := s.rec
	switch cmd {
	case "DP":
		pt, err := parseLegacyCoordinate(arg)
		if err != nil {
			return err
		}
		rec.points = append(rec.points, pt)

	case "DA":
		if rec.center == nil {
			return fmt.Errorf("DA without a centre (V X=)")
		}
		fields := splitArgs(arg)
		if len(fields) != 3 {
			return fmt.Errorf("DA needs radius, start and end angles, got %q", arg)
		}
		var vals [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("DA: %w", err)
			}
			vals[i] = v
		}
		if !finite(vals[0]) || vals[0] <= 0 {
			return &ErrInvalidGeometry{Reason: fmt.Sprintf("arc radius must be positive, got %v", vals[0])}
		}
		if !finite(vals[1]) || !finite(vals[2]) {
			return &ErrInvalidGeometry{Reason: fmt.Sprintf("arc angles must be finite, got %v,%v", vals[1], vals[2])}
		}
		rec.points = append(rec.points,
			arcPoints(*rec.center, vals[0], normalizeBearing(vals[1]), normalizeBearing(vals[2]), rec.clockwise, s.step)...)

	case "DB":
		if rec.center == nil {
			return fmt.Errorf("DB without a centre (V X=)")
		}
		fields := strings.Split(arg, ",")
		if len(fields) != 2 {
			return fmt.Errorf("DB needs two coordinates, got %q", arg)
		}
		from, err := parseLegacyCoordinate(fields[0])
		if err != nil {
			return err
		}
		to, err := parseLegacyCoordinate(fields[1])
		if err != nil {
			return err
		}
		center := *rec.center
		radius := distanceNM(center, from)
		if radius == 0 {
			return &ErrInvalidGeometry{Reason: "arc start point is the centre"}
		}
		arc := arcPoints(center, radius, bearing(center, from), bearing(center, to), rec.clockwise, s.step)
		arc[0], arc[len(arc)-1] = from, to
		rec.points = append(rec.points, arc...)

	case "DC":
		if rec.center == nil {
			return fmt.Errorf("DC without a centre (V X=)")
		}
		radius, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return fmt.Errorf("DC: %w", err)
		}
		if !finite(radius) || radius <= 0 {
			return &ErrInvalidGeometry{Reason: fmt.Sprintf("circle radius must be positive, got %v", radius)}
		}
		if len(rec.points) > 0 {
			return fmt.Errorf("DC in a record that already has points")
		}
		rec.points = circlePoints(*rec.center, radius, s.step)
		s.state = stateClosed
	}
	return nil
}

// finish closes the open record, if any, and emits it.
func (s *legacyScanner) finish() {
	defer func() {
		s.rec = nil
		s.state = stateAwaitingHeader
	}()
	if s.rec == nil || (s.state != stateBuildingRing && s.state != stateClosed) {
		return
	}

	rec := s.rec
	name := strings.TrimSpace(rec.name)
	switch {
	case name == "":
		s.res.fail(&ErrMalformedRecord{Line: rec.line, Reason: "missing AN name"})
		return
	case rec.lower == nil || rec.upper == nil:
		s.res.fail(&ErrMalformedRecord{Record: name, Line: rec.line, Reason: "missing AL or AH altitude"})
		return
	}

	ring, err := NormalizeRing(rec.points)
	if err != nil {
		s.res.fail(withRecord(err, name, rec.line))
		return
	}
	alt, err := NewAltitudeBound(*rec.lower, *rec.upper)
	if err != nil {
		s.res.fail(withRecord(err, name, rec.line))
		return
	}

	s.res.emit(Volume{
		Name:      name,
		Class:     rec.class,
		LocalType: rec.localType,
		Frequency: rec.frequency,
		Ring:      ring,
		Altitude:  alt,
		Format:    FormatLegacy,
		Source:    s.source,
		Line:      rec.line,
	})
}

func splitArgs(arg string) []string {
	parts := strings.Split(arg, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

var legacyCoordinatePattern = regexp.MustCompile(
	`^(\d+(?:\.\d+)?)(?::(\d+(?:\.\d+)?))?(?::(\d+(?:\.\d+)?))?\s*([NS])\s*` +
		`(\d+(?:\.\d+)?)(?::(\d+(?:\.\d+)?))?(?::(\d+(?:\.\d+)?))?\s*([EW])$`)

// parseLegacyCoordinate parses "51:30:00 N 000:30:00 W", "51:30.5N 0:30.2W"
// and "51.5 N 0.5 W".
func parseLegacyCoordinate(s string) (Point, error) {
	m := legacyCoordinatePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return Point{}, &ErrInvalidGeometry{Reason: fmt.Sprintf("unrecognised coordinate %q", s)}
	}

	lat := sexagesimal(m[1], m[2], m[3])
	if m[4] == "S" {
		lat = -lat
	}
	lon := sexagesimal(m[5], m[6], m[7])
	if m[8] == "W" {
		lon = -lon
	}
	return NewPoint(lat, lon)
}

func sexagesimal(deg, min, sec string) float64 {
	d, _ := strconv.ParseFloat(deg, 64)
	if min != "" {
		m, _ := strconv.ParseFloat(min, 64)
		d += m / 60
	}
	if sec != "" {
		sv, _ := strconv.ParseFloat(sec, 64)
		d += sv / 3600
	}
	return d
}
