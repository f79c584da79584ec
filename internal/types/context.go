package types

// HostInfo identifies the machine a scan ran on.
type HostInfo struct {
	// Hostname is the system hostname.
	Hostname string `json:"hostname"`

	// OS is the operating system identifier (e.g., "linux", "windows").
	OS string `json:"os"`

	// Platform is the distribution or product name (e.g., "ubuntu", "Microsoft Windows Server 2019").
	Platform string `json:"platform,omitempty"`

	// PlatformVersion is the platform release.
	PlatformVersion string `json:"platform_version,omitempty"`

	// Arch is the CPU architecture.
	Arch string `json:"arch"`
}
