package output

import (
	"time"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// testTimestamp is a fixed time for deterministic test output.
var testTimestamp = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

// newTestReport builds scenario A: docB.mxd has two broken links.
func newTestReport() *types.ScanReport {
	return &types.ScanReport{
		RunID:     "3f2c9a4e-7d1b-4c55-9a0e-2b8f6d4e1c7a",
		Version:   "1.0.0",
		Timestamp: testTimestamp,
		Root:      "maps",
		Host: types.HostInfo{
			Hostname: "gis-01",
			OS:       "windows",
			Arch:     "amd64",
		},
		Summary: types.ScanSummary{
			DocumentsChecked: 3,
			DocumentsBroken:  2,
			BrokenLinks:      3,
			DurationMS:       42,
		},
		Documents: []types.DocumentResult{
			{
				Path: "maps/docB.mxd",
				BrokenLinks: []types.BrokenLink{
					{Name: "Roads", DataSource: `D:\data\roads.shp`},
					{Name: "Parcels"},
				},
			},
			{
				Path:        "maps/sub/docC.mxd",
				BrokenLinks: []types.BrokenLink{{Name: "Hydrants"}},
			},
		},
	}
}

// newEmptyReport builds a report with no findings.
func newEmptyReport() *types.ScanReport {
	return &types.ScanReport{
		RunID:     "3f2c9a4e-7d1b-4c55-9a0e-2b8f6d4e1c7a",
		Version:   "1.0.0",
		Timestamp: testTimestamp,
		Root:      "maps",
		Host:      types.HostInfo{Hostname: "gis-01", OS: "windows", Arch: "amd64"},
		Summary:   types.ScanSummary{DocumentsChecked: 1},
	}
}

// newFailureReport builds a report with one unreadable document.
func newFailureReport() *types.ScanReport {
	r := newTestReport()
	r.Failures = []types.DocumentFailure{{Path: "maps/locked.mxd", Error: "document is locked"}}
	r.Summary.Failed = 1
	return r
}
