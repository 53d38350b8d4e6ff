// Package config loads the sharevote settings from defaults, an optional
// config file, SHAREVOTE_* environment variables and command line flags,
// in increasing order of precedence.
package config

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "SHAREVOTE"

// setting keys, also used as flag names
const (
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
	KeyWorkers         = "workers"
	KeyMaxCombinations = "max-combinations"
	KeyOutput          = "output"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"

	OutputText = "text"
	OutputJSON = "json"
)

// ErrInvalidConfig is returned when a setting has an unusable value.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the resolved settings.
type Config struct {
	LogLevel        string `mapstructure:"log-level" json:"log_level"`
	LogFormat       string `mapstructure:"log-format" json:"log_format"`
	Workers         int    `mapstructure:"workers" json:"workers"`
	MaxCombinations int64  `mapstructure:"max-combinations" json:"max_combinations"`
	Output          string `mapstructure:"output" json:"output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:        zerolog.InfoLevel.String(),
		LogFormat:       LogFormatConsole,
		Workers:         runtime.NumCPU(),
		MaxCombinations: 1 << 20,
		Output:          OutputText,
	}
}

// RegisterFlags adds the setting flags to fs with their default values.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String(KeyLogLevel, def.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.String(KeyLogFormat, def.LogFormat, "log format (console, json)")
	fs.Int(KeyWorkers, def.Workers, "goroutines interpolating combinations")
	fs.Int64(KeyMaxCombinations, def.MaxCombinations, "refuse share sets with more k-subsets than this, 0 disables")
	fs.StringP(KeyOutput, "o", def.Output, "report format (text, json)")
}

// Load resolves the settings. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeyWorkers, def.Workers)
	v.SetDefault(KeyMaxCombinations, def.MaxCombinations)
	v.SetDefault(KeyOutput, def.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, errors.Wrap(err, "bind flags")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return errors.Wrapf(ErrInvalidConfig, "log format %q", c.LogFormat)
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	}
	if c.MaxCombinations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "max combinations must not be negative, got %d", c.MaxCombinations)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return errors.Wrapf(ErrInvalidConfig, "output %q", c.Output)
	}
	return nil
}
