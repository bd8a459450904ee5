// Package config loads, lists, and applies LinX OS SDK build
// configurations. The active configuration lives in a line-oriented
// sdkconfig file at the SDK root; named presets live alongside the build
// support files and are applied by copying them over the active file.
package config

// Keys recognized in sdkconfig files. Unknown keys are preserved by the
// parser but ignored here.
const (
	KeyTargetPlatform  = "CONFIG_TARGET_PLATFORM"
	KeyBoardPlatform   = "CONFIG_BOARD_PLATFORM"
	KeyBuildType       = "CONFIG_BUILD_TYPE"
	KeyToolchainFile   = "CONFIG_TOOLCHAIN_FILE"
	KeyToolchainPrefix = "CONFIG_TOOLCHAIN_PREFIX"
	KeyDescription     = "CONFIG_DESCRIPTION"
)

// Config is a fully-populated build configuration. Missing keys fall back
// to defaults when loading, so callers never have to test for absence.
type Config struct {
	Target          string
	Board           string
	BuildType       string
	ToolchainFile   string
	ToolchainPrefix string
	Description     string
}

// Default is the configuration assumed when no sdkconfig file exists.
func Default() Config {
	return Config{
		Target:      "native",
		Board:       "mac",
		BuildType:   "Release",
		Description: "default configuration",
	}
}

// FromValues builds a Config from parsed key/value pairs. Keys absent from
// values keep their defaults; the description falls back to fallbackDesc.
func FromValues(values map[string]string, fallbackDesc string) Config {
	cfg := Default()
	cfg.Description = fallbackDesc
	if v, ok := values[KeyTargetPlatform]; ok {
		cfg.Target = v
	}
	if v, ok := values[KeyBoardPlatform]; ok {
		cfg.Board = v
	}
	if v, ok := values[KeyBuildType]; ok {
		cfg.BuildType = v
	}
	if v, ok := values[KeyToolchainFile]; ok {
		cfg.ToolchainFile = v
	}
	if v, ok := values[KeyToolchainPrefix]; ok {
		cfg.ToolchainPrefix = v
	}
	if v, ok := values[KeyDescription]; ok {
		cfg.Description = v
	}
	return cfg
}

// LoadActive reads the active configuration from path. A missing,
// unreadable, or empty file yields the defaults; loading never fails.
func LoadActive(path string) Config {
	values, err := ParseFile(path)
	if err != nil || len(values) == 0 {
		return Default()
	}
	return FromValues(values, "current configuration")
}
