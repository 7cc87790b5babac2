package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultArcStep is the angular step, in degrees, used to approximate
// legacy arc directives with straight segments. Five degrees keeps the
// chord error below 0.1% of the radius (about 4m on a 2nm ATZ circle)
// while a full circle costs only 72 points.
const DefaultArcStep = 5.0

// MinArcStep and MaxArcStep bound the arc step accepted from options.
const (
	MinArcStep = 0.1
	MaxArcStep = 90.0
)

// Parser turns raw airspace-definition bytes into volumes.
//
// Implementations are pure: they perform no I/O and hold no state between
// calls, so one Parser may be shared. A bad record never aborts the
// parse; it is reported in Result.Errors and parsing moves on.
type Parser interface {
	// Parse reads one source buffer. source names the buffer in errors
	// and on every emitted volume.
	Parse(data []byte, source string) *Result

	// Format returns the format this parser reads.
	Format() Format
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// ArcStep is the arc subdivision step in degrees for the legacy
	// format. Values <= 0 fall back to DefaultArcStep; other values are
	// clamped to [MinArcStep, MaxArcStep].
	ArcStep float64

	// ClassFilter: if non-empty, only volumes of these classes are emitted.
	// Empty means emit every class.
	ClassFilter []Class
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ArcStep:     DefaultArcStep,
		ClassFilter: nil,
	}
}

func (o ParseOptions) arcStep() float64 {
	if math.IsNaN(o.ArcStep) || o.ArcStep <= 0 {
		return DefaultArcStep
	}
	return min(max(o.ArcStep, MinArcStep), MaxArcStep)
}

// NewParser returns the parser for format with default options.
func NewParser(format Format) (Parser, error) {
	return NewParserWithOptions(format, DefaultParseOptions())
}

// NewParserWithOptions returns the parser for format.
func NewParserWithOptions(format Format, opts ParseOptions) (Parser, error) {
	switch format {
	case FormatStructured:
		return &structuredParser{opts: opts}, nil
	case FormatLegacy:
		return &legacyParser{opts: opts}, nil
	default:
		return nil, fmt.Errorf("no volume parser for %s format", format)
	}
}

// filterClasses drops volumes outside the class filter.
func (o ParseOptions) filterClasses(res *Result) {
	if len(o.ClassFilter) == 0 {
		return
	}
	res.Volumes = slices.DeleteFunc(res.Volumes, func(v Volume) bool {
		return !slices.Contains(o.ClassFilter, v.Class)
	})
}

// DetectFormat guesses the format of a buffer, first from the file
// extension of name and then from the first significant line of data.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return sniffStructured(data)
	case ".txt", ".air", ".openair":
		return FormatLegacy
	}

	line := firstSignificantLine(data)
	switch {
	case line == "":
		return FormatUnknown
	case isLegacyDirective(line):
		return FormatLegacy
	default:
		return sniffStructured(data)
	}
}

// sniffStructured tells overlay documents apart from volume documents by
// their top-level key.
func sniffStructured(data []byte) Format {
	line := firstSignificantLine(data)
	if strings.HasPrefix(line, "zones:") || strings.Contains(line, `"zones"`) {
		return FormatOverlay
	}
	return FormatStructured
}

func firstSignificantLine(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "#") || line == "---" {
			continue
		}
		return line
	}
	return ""
}

func isLegacyDirective(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "AC", "AN", "AL", "AH", "DP", "DC", "DA", "DB", "V", "SP", "SB":
		return true
	}
	return false
}
