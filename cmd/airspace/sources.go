package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

// readSources reads each path into a source named by its base name.
func readSources(paths []string) ([]airspace.Source, error) {
	sources := make([]airspace.Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", p)
		}
		sources = append(sources, airspace.NewSource(filepath.Base(p), data))
	}
	return sources, nil
}

// openStore loads paths into a new store built from the configuration.
func openStore(paths []string, classes []airspace.Class) (*airspace.Store, []airspace.Warning, error) {
	sources, err := readSources(paths)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.StoreOptions()
	opts.Load.Classes = classes
	store, err := airspace.NewStore(opts)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := store.Reload(sources)
	if err != nil {
		return nil, nil, eris.Wrap(err, "load catalog")
	}
	zap.L().Debug("catalog loaded", zap.Strings("files", paths), zap.Int("volumes", store.Catalog().Len()))
	return store, warnings, nil
}

// parseClasses converts class codes, accepting comma-separated lists. No
// codes means every class.
func parseClasses(codes []string) ([]airspace.Class, error) {
	var classes []airspace.Class
	for _, code := range codes {
		for _, c := range strings.Split(code, ",") {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			class, ok := airspace.ParseClass(c)
			if !ok {
				return nil, eris.Errorf("unknown class %q", c)
			}
			classes = append(classes, class)
		}
	}
	if len(classes) == 0 {
		return airspace.AllClasses(), nil
	}
	return classes, nil
}

// parsePoint parses "lat,lon" in decimal degrees.
func parsePoint(s string) (airspace.Point, error) {
	latText, lonText, ok := strings.Cut(s, ",")
	if !ok {
		return airspace.Point{}, eris.Errorf("position %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return airspace.Point{}, eris.Wrapf(err, "position %q: latitude", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return airspace.Point{}, eris.Wrapf(err, "position %q: longitude", s)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return airspace.Point{}, eris.Errorf("position %q: out of range", s)
	}
	return airspace.Point{Lat: lat, Lon: lon}, nil
}

// printWarnings writes one line per warning, then a count per kind.
func printWarnings(out io.Writer, warnings []airspace.Warning) {
	if len(warnings) == 0 {
		return
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintln(out, "warning:", w.Error())
	}

	counts := airspace.CountWarnings(warnings)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, kind := range []airspace.WarningKind{
		airspace.WarningInvalidGeometry,
		airspace.WarningMalformedRecord,
		airspace.WarningUnresolvedOverlayReference,
		airspace.WarningCatalogConflict,
		airspace.WarningEmptySource,
		airspace.WarningOverlayOutsideBase,
	} {
		if n := counts[kind]; n > 0 {
			_, _ = fmt.Fprintf(w, "%s:\t%d\n", kind, n)
		}
	}
	_ = w.Flush()
}
