package airspace

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/beetlebugorg/airspace/internal/parser"
)

// Source is one already-read input buffer. The package never touches the
// filesystem; callers read files and hand the bytes over.
type Source struct {
	// Name identifies the buffer in warnings, usually the file name. Its
	// extension also drives format detection.
	Name string
	// Data is the raw content.
	Data []byte
	// Format forces a format. FormatUnknown detects it from Name and Data.
	Format Format
}

// NewSource returns a source whose format is detected on load.
func NewSource(name string, data []byte) Source {
	return Source{Name: name, Data: data}
}

// DetectFormat reports the format a source would be read as.
func (s Source) DetectFormat() Format {
	if s.Format != FormatUnknown {
		return s.Format
	}
	return parser.DetectFormat(s.Name, s.Data)
}

// nameKey normalises a name for matching: Unicode NFC, runs of whitespace
// collapsed to one space, upper case. Volumes are deduplicated and overlay
// references resolved on this key.
func nameKey(name string) string {
	s := norm.NFC.String(name)
	s = strings.Join(strings.Fields(s), " ")
	// A Caser holds state, so each call gets its own.
	return cases.Upper(language.Und).String(s)
}
