package config

// version is set via ldflags at build time
var version string

func Version() string {
	if version == "" {
		return "dev"
	}
	return version
}
