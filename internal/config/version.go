package config

// Build metadata, set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags overrides the build metadata.
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}
