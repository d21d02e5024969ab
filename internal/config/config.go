package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/coffmap/coffmap/internal/mapfile"
)

// Default configuration values.
const (
	// DefaultPageSize is the align figure shown on output-section rows.
	// It mirrors the renderer's own default; the constant lives there
	// because the value is a property of the report format, not of the
	// CLI.
	DefaultPageSize = mapfile.DefaultPageSize

	// DefaultJobs is the number of concurrent renders in batch mode.
	// Rendering is I/O-light, so a small fixed degree of parallelism is
	// enough to overlap snapshot decoding with file publishing without
	// tying the default to the host's core count.
	DefaultJobs = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "coffmap"

	// MapFileExt is the extension used when deriving a map file path
	// from a layout snapshot path.
	MapFileExt = ".map"
)

// Config holds all configuration options for coffmap.
// It is populated from CLI flags and an optional config file, then
// passed through the application by value rather than via global state.
//
// Design decision: We use a single flat struct instead of nested
// sub-structs. The number of options is small, and nesting would add
// complexity without benefit.
type Config struct {
	// Targets are the layout snapshot files to render.
	Targets []string

	// Output is the destination map file path. It applies only when a
	// single target is given; batch runs derive one output per target.
	// An empty Output with Stdout unset derives the path from the
	// target; an Output explicitly set to "" via the config file's
	// map_file key disables map output entirely.
	Output string

	// OutputSet records whether Output carries an explicit value (from
	// the --output flag or the config file's map_file key). This is
	// what distinguishes "derive a path" from "map output disabled".
	OutputSet bool

	// Stdout writes the report to standard output instead of a file,
	// bypassing the atomic writer. Mutually exclusive with Output.
	Stdout bool

	// PageSize is the align figure shown on output-section rows.
	PageSize uint64

	// Jobs is the maximum number of concurrent renders in batch mode.
	Jobs int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is an explicitly requested config file, or empty
	// to search the standard locations.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		PageSize: DefaultPageSize,
		Jobs:     DefaultJobs,
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes the
// rest irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}
	if c.Stdout && c.OutputSet {
		return ErrOutputConflict
	}
	if c.OutputSet && c.Output != "" && len(c.Targets) > 1 {
		return ErrOutputWithMultipleTargets
	}
	if c.PageSize == 0 {
		return ErrInvalidPageSize
	}
	if c.Jobs < 1 {
		return ErrInvalidJobs
	}
	return nil
}

// MapPathFor derives the map file path for a layout snapshot: the
// snapshot's path with its extension replaced by MapFileExt, so
// "build/kernel.yaml" becomes "build/kernel.map".
func MapPathFor(target string) string {
	ext := filepath.Ext(target)
	return strings.TrimSuffix(target, ext) + MapFileExt
}

// XDGConfigDir returns the XDG config directory for coffmap.
// On Linux: ~/.config/coffmap
// On macOS: ~/Library/Application Support/coffmap
// On Windows: %APPDATA%\coffmap
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
