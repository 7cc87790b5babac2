package airspace

import (
	"runtime"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/beetlebugorg/airspace/internal/parser"
)

// parsedSource is the outcome of parsing one source.
type parsedSource struct {
	name     string
	format   Format
	volumes  []parser.Volume
	warnings []Warning
}

// parseSources parses every source, concurrently when opts.Parallel is set.
// Results are indexed by source position, so the merge that follows sees
// the same order either way.
func parseSources(sources []Source, opts LoadOptions) []parsedSource {
	results := make([]parsedSource, len(sources))

	if !opts.Parallel || len(sources) < 2 {
		for i, src := range sources {
			results[i] = parseSource(src, opts)
		}
		return results
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = parseSource(src, opts)
			return nil
		})
	}
	// Parsers report per-record failures in their results; no task errors.
	_ = g.Wait()

	return results
}

func parseSource(src Source, opts LoadOptions) parsedSource {
	out := parsedSource{name: src.Name, format: src.DetectFormat()}

	switch out.format {
	case FormatUnknown:
		// Nothing recognisable; the merge reports it as an empty source.
		return out
	case FormatOverlay:
		out.warnings = append(out.warnings, Warning{
			Kind:   WarningMalformedRecord,
			Source: src.Name,
			Err:    eris.New("overlay document given as a catalog source"),
		})
		return out
	}

	p, err := parser.NewParserWithOptions(out.format, opts.parseOptions())
	if err != nil {
		out.warnings = append(out.warnings, Warning{
			Kind:   WarningMalformedRecord,
			Source: src.Name,
			Err:    eris.Wrap(err, "select parser"),
		})
		return out
	}

	res := p.Parse(src.Data, src.Name)
	for _, err := range res.Errors {
		out.warnings = append(out.warnings, recordWarning(src.Name, err))
	}
	out.volumes = res.Volumes
	return out
}
