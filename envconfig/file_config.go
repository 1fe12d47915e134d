package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the TOML configuration structure
type Config struct {
	Train struct {
		VocabSize int `toml:"vocab_size"`
	} `toml:"train"`

	Logging struct {
		Debug bool `toml:"debug"`
		Trace bool `toml:"trace"`
	} `toml:"logging"`
}

// GetConfigPaths returns the list of possible config file paths for the current OS
func GetConfigPaths() []string {
	if path := clean("MINBPE_CONFIG"); path != "" {
		return []string{path}
	}

	var paths []string
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "minbpe", "config.toml"))
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			paths = append(paths, filepath.Join(xdgConfig, "minbpe", "config.toml"))
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "minbpe", "config.toml"),
			filepath.Join(home, ".minbpe", "config.toml"),
		)
	}

	return paths
}

// ReadConfigFile decodes the first configuration file that exists. It
// returns a nil Config when there is none.
func ReadConfigFile() (*Config, string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			var cfg Config
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, "", fmt.Errorf("error parsing config file %s: %w", path, err)
			}
			return &cfg, path, nil
		}
	}
	return nil, "", nil
}

func loadConfigFile() *Config {
	cfg, path, err := ReadConfigFile()
	if err != nil {
		slog.Warn("failed to load config file", "error", err)
	} else if cfg != nil {
		slog.Debug("loaded config file", "path", path)
	}

	return cfg
}

// value returns the file setting for an environment variable key, or ""
// when the file leaves it unset.
func (c *Config) value(key string) string {
	if c == nil {
		return ""
	}

	switch key {
	case "MINBPE_VOCAB_SIZE":
		if c.Train.VocabSize > 0 {
			return fmt.Sprintf("%d", c.Train.VocabSize)
		}
	case "MINBPE_DEBUG":
		if c.Logging.Debug {
			return "true"
		}
	case "MINBPE_TRACE":
		if c.Logging.Trace {
			return "true"
		}
	}

	return ""
}
