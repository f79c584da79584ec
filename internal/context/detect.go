// Package context detects information about the host a scan runs on.
package context

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// HostDetector abstracts host detection so the coordinator can be tested
// without touching the real system.
type HostDetector interface {
	// DetectPlatform returns OS and platform details.
	DetectPlatform() (types.HostInfo, error)

	// DetectHostname returns the system hostname.
	DetectHostname() (string, error)
}

// GopsutilDetector implements HostDetector using gopsutil.
type GopsutilDetector struct{}

// NewHostDetector returns the gopsutil-backed detector.
func NewHostDetector() HostDetector {
	return &GopsutilDetector{}
}

// DetectPlatform returns platform details via gopsutil.
func (d *GopsutilDetector) DetectPlatform() (types.HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return types.HostInfo{}, err
	}
	return types.HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Arch:            runtime.GOARCH,
	}, nil
}

// DetectHostname returns os.Hostname.
func (d *GopsutilDetector) DetectHostname() (string, error) {
	return os.Hostname()
}

// DetectHost coordinates layered host detection using the provided detector.
//   - Layer 1: platform detection (failure falls back to runtime values)
//   - Layer 2: hostname, only when layer 1 did not provide one
//
// Detection never fails a scan; problems come back as warnings.
func DetectHost(detector HostDetector) (types.HostInfo, []string) {
	var warnings []string

	info, err := detector.DetectPlatform()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("platform detection failed: %v", err))
		info = types.HostInfo{}
	}
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	if info.Hostname == "" {
		h, err := detector.DetectHostname()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("hostname detection failed: %v", err))
			h = "unknown"
		}
		info.Hostname = h
	}

	return info, warnings
}
