// Package agconfig loads this tool's optional TOML config file with
// BurntSushi/toml.
package agconfig

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/attrflow/internal/agerrors"
)

// Config holds the settings a user may override via a TOML file rather
// than repeating them on every invocation.
type Config struct {
	// WrapWidth is the column width used by the --groups pretty-printer.
	WrapWidth int `toml:"wrap_width"`

	// CacheFile, if set, is used as the default --cache path when one is
	// not given on the command line.
	CacheFile string `toml:"cache_file"`

	// DumpKind selects which of "dependencies", "order", or "groups" is
	// printed by default.
	DumpKind string `toml:"dump_kind"`
}

// Default returns the configuration used when no file is found. DumpKind is
// left empty, meaning "print both the dependency and execution-order dumps"
// (see cmd/attrflow's printDump) unless a file or the --dump flag narrows it
// to one of "dependencies", "order", or "groups".
func Default() Config {
	return Config{WrapWidth: 80, DumpKind: ""}
}

// DefaultPath returns ~/.attrflow.toml, or an error if the home directory
// cannot be determined.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", agerrors.Wrap(err, "locating home directory for config")
	}
	return filepath.Join(home, ".attrflow.toml"), nil
}

// Load reads and decodes the TOML file at path on top of Default(). A
// missing file is not an error: Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, agerrors.Wrap(err, "reading config file "+path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, agerrors.Wrap(err, "parsing config file "+path)
	}
	return cfg, nil
}
