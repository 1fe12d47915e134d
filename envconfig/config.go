package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DefaultVocabSize is the 256 byte tokens plus three merges.
const DefaultVocabSize = 256 + 3

var (
	// Set via MINBPE_DEBUG in the environment
	Debug bool
	// Set via MINBPE_TRACE in the environment
	Trace bool
	// Set via MINBPE_VOCAB_SIZE in the environment
	VocabSize int
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"MINBPE_CONFIG":     {"MINBPE_CONFIG", os.Getenv("MINBPE_CONFIG"), "Path to a TOML configuration file"},
		"MINBPE_DEBUG":      {"MINBPE_DEBUG", Debug, "Show additional debug information (e.g. MINBPE_DEBUG=1)"},
		"MINBPE_TRACE":      {"MINBPE_TRACE", Trace, "Log every merge and encode step"},
		"MINBPE_VOCAB_SIZE": {"MINBPE_VOCAB_SIZE", VocabSize, fmt.Sprintf("Default vocabulary size (default %d)", DefaultVocabSize)},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

type settings struct {
	Debug     bool `mapstructure:"MINBPE_DEBUG"`
	Trace     bool `mapstructure:"MINBPE_TRACE"`
	VocabSize int  `mapstructure:"MINBPE_VOCAB_SIZE"`
}

func init() {
	LoadConfig()
}

// LoadConfig resets every setting to its default, then applies the
// configuration file followed by the environment. Values that fail to
// parse are logged and skipped.
func LoadConfig() {
	file := loadConfigFile()

	s := settings{VocabSize: DefaultVocabSize}
	for _, key := range []string{"MINBPE_DEBUG", "MINBPE_TRACE", "MINBPE_VOCAB_SIZE"} {
		value := clean(key)
		if value == "" {
			value = file.value(key)
		}

		if value == "" {
			continue
		}

		if err := mapstructure.WeakDecode(map[string]any{key: value}, &s); err != nil {
			slog.Warn("ignoring invalid setting", "key", key, "value", value, "error", err)
		}
	}

	Debug, Trace, VocabSize = s.Debug, s.Trace, s.VocabSize
}
