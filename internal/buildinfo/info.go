package buildinfo

import "runtime/debug"

// set via -ldflags "-X github.com/darmiel/gatecheck/internal/buildinfo.Version=..."
var (
	Version    = ""
	CommitHash = "unknown"
)

// UnknownVersion is reported when neither ldflags nor module metadata carry a version.
const UnknownVersion = "unknown"

type Info struct {
	About      string `json:"about,omitempty"`
	Service    string `json:"service,omitempty"`
	Version    string `json:"version,omitempty"`
	CommitHash string `json:"commit_hash,omitempty"`
}

func GetBuildInfo() Info {
	return Info{
		About:      "https://github.com/darmiel/gatecheck",
		Service:    "gatecheck",
		Version:    ResolveVersion(),
		CommitHash: CommitHash,
	}
}

// ResolveVersion returns the linker-provided version, then the main module
// version from the embedded build info, then UnknownVersion.
// Resolve it once per process and pass the result along.
func ResolveVersion() string {
	return resolveVersion(Version, debug.ReadBuildInfo)
}

func resolveVersion(linked string, read func() (*debug.BuildInfo, bool)) string {
	if linked != "" {
		return linked
	}
	if info, ok := read(); ok && info != nil {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return UnknownVersion
}
