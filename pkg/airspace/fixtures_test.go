package airspace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const ukStructured = `airspace:
  - name: LONDON CTR
    class: A
    type: CTR
    frequency: "118.905"
    lower: SFC
    upper: 2500ft
    geometry: [[51.6, -0.6], [51.6, -0.1], [51.3, -0.1], [51.3, -0.6]]
  - name: EGR101
    class: R
    lower: SFC
    upper: FL95
    geometry: [[51.0, -1.0], [51.0, -0.9], [51.1, -0.9], [51.1, -1.0]]
  - name: SOLENT CTA
    class: D
    lower: 2000ft
    upper: FL55
    geometry: [[50.75, -1.5], [50.75, -1.25], [51.0, -1.25], [51.0, -1.5]]
`

// ukLegacy repeats LONDON CTR with a different boundary.
const ukLegacy = `AC A
AN LONDON CTR
AL SFC
AH 2500ft
DP 51:40:00 N 000:40:00 W
DP 51:40:00 N 000:05:00 W
DP 51:15:00 N 000:05:00 W

AC Q
AN D123
AL SFC
AH FL100
DP 50:55:00 N 000:50:00 E
DP 50:55:00 N 001:00:00 E
DP 51:00:00 N 001:00:00 E

AC CTR
AN BIGGIN HILL ATZ
AY ATZ
AL SFC
AH 2000ft
V X=51:19:51 N 000:01:57 E
DC 2.0
`

func ukSources() []Source {
	return []Source{
		NewSource("uk.yaml", []byte(ukStructured)),
		NewSource("uk.txt", []byte(ukLegacy)),
	}
}

func serialOptions() LoadOptions {
	opts := DefaultLoadOptions()
	opts.Parallel = false
	return opts
}

func loadUK(t *testing.T) *Catalog {
	t.Helper()
	c, warnings := LoadCatalog(ukSources(), serialOptions())
	require.Len(t, warnings, 1, "warnings: %v", warnings)
	require.Equal(t, 5, c.Len())
	return c
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Volume.Name())
	}
	return out
}

func volumeNames(volumes []Volume) []string {
	out := make([]string, 0, len(volumes))
	for _, v := range volumes {
		out = append(out, v.Name())
	}
	return out
}

func kinds(warnings []Warning) []WarningKind {
	out := make([]WarningKind, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Kind)
	}
	return out
}
