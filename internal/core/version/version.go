// Package version reports build information for the maintparse binaries
package version

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for service. Version, commit and date
// are set at build time:
//
//	-ldflags "-X 'maintnotice/internal/core/version.version=v0.1.0'
//	-X 'maintnotice/internal/core/version.commit=abcd' -X 'maintnotice/internal/core/version.date=2026-10-17'"
func Info(service string) BuildInfo {
	if service == "" {
		service = "maintparse"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
