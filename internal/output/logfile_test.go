package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioA = "Documents with broken layers found\n\nmaps/docB.mxd\n\tRoads\n\tParcels\n"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLogFileName(t *testing.T) {
	tests := []struct {
		when time.Time
		want string
	}{
		{time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local), "brokenLayers_20261015.log"},
		{time.Date(2026, 10, 15, 23, 59, 59, 0, time.Local), "brokenLayers_20261015.log"},
		{time.Date(2026, 10, 16, 0, 0, 1, 0, time.Local), "brokenLayers_20261016.log"},
		{time.Date(2013, 1, 5, 12, 0, 0, 0, time.Local), "brokenLayers_20130105.log"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFileName(tt.when))
		})
	}
}

func TestLogFile_FirstRun(t *testing.T) {
	dir := t.TempDir()
	lf := &LogFile{Dir: dir, Hostname: "gis-01", Now: fixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))}

	path, err := lf.Append(scenarioA)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "brokenLayers_20261015.log"), path)
	assert.Equal(t, path, lf.Path())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "WARNING:brokenlayers:"+scenarioA, string(data))
}

func TestLogFile_SameDayAppendsWithSeparator(t *testing.T) {
	dir := t.TempDir()
	first := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 10, 15, 17, 30, 0, 0, time.UTC)
	lf := &LogFile{Dir: dir, Hostname: "gis-01", Now: fixedClock(first)}

	p1, err := lf.Append(scenarioA)
	require.NoError(t, err)
	lf.Now = fixedClock(second)
	p2, err := lf.Append(scenarioA)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t,
		"WARNING:brokenlayers:"+scenarioA+
			"--- run 2026-10-15T17:30:00Z on gis-01 ---\n"+
			"WARNING:brokenlayers:"+scenarioA,
		string(data))
}

func TestLogFile_DifferentDaysDifferentFiles(t *testing.T) {
	dir := t.TempDir()
	lf := &LogFile{Dir: dir, Now: fixedClock(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))}
	p1, err := lf.Append(scenarioA)
	require.NoError(t, err)

	lf.Now = fixedClock(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	p2, err := lf.Append(scenarioA)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	data, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(data), "---"), "new day starts without separator")
}

func TestLogFile_AddsTrailingNewline(t *testing.T) {
	lf := NewLogFile(t.TempDir(), "gis-01")

	path, err := lf.Append("no newline")

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "WARNING:brokenlayers:no newline\n", string(data))
}

func TestLogFile_MissingDirectory(t *testing.T) {
	lf := NewLogFile(filepath.Join(t.TempDir(), "missing"), "gis-01")

	_, err := lf.Append(scenarioA)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}
