package parser

// Format identifies which airspace-definition format a record came from.
type Format int

const (
	// FormatUnknown asks DetectFormat to decide.
	FormatUnknown Format = iota
	// FormatStructured is the hierarchical YAML/JSON format.
	FormatStructured
	// FormatLegacy is the line-oriented OpenAir format.
	FormatLegacy
	// FormatOverlay is a structured document of overlay zones.
	FormatOverlay
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatStructured:
		return "structured"
	case FormatLegacy:
		return "legacy"
	case FormatOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Volume is one airspace volume as emitted by a parser.
type Volume struct {
	// Name identifies the volume together with Class, e.g. "LONDON CTR".
	Name string
	// Class is the regulatory class.
	Class Class
	// LocalType is a free-form type tag such as "CTR", "ATZ" or "ILS".
	// Empty when the source gives none.
	LocalType string
	// Frequency is the controlling radio frequency, if published.
	Frequency string
	// Ring is the lateral boundary.
	Ring Ring
	// Altitude is the vertical extent.
	Altitude AltitudeBound
	// Format records which parser produced the volume.
	Format Format
	// Source names the input buffer, usually a file name.
	Source string
	// Line is the 1-based line where the record starts in its source.
	Line int
}

// Result is the output of one parse: the volumes that survived and one
// error per record that did not.
type Result struct {
	Volumes []Volume
	Errors  []error
}

func (r *Result) fail(err error) {
	r.Errors = append(r.Errors, err)
}

func (r *Result) emit(v Volume) {
	if err := ValidateVolume(&v); err != nil {
		r.fail(err)
		return
	}
	r.Volumes = append(r.Volumes, v)
}
