// Package settings loads run configuration from flags, environment variables
// and a .env file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/simonhull/firebird-suite/nest/internal/logger"
	"github.com/simonhull/firebird-suite/nest/internal/tree"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Environment variables are the upper-cased key (JSON_SCHEMA).
const (
	KeyFolder         = "folder"
	KeyJSONSchema     = "json_schema"
	KeyRaiseError     = "raise_error"
	KeyStrict         = "strict"
	KeyYAMLExtensions = "yaml_extensions"
	KeyConcurrency    = "concurrency"
	KeyOutput         = "output"
	KeyLogLevel       = "log_level"
	KeyDebounce       = "debounce"
	KeyMetricsAddr    = "metrics_addr"
)

// Output formats
const (
	OutputAuto = "auto"
	OutputJSON = "json"
	OutputText = "text"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// flagNames maps setting keys to their command-line flag
var flagNames = map[string]string{
	KeyFolder:         "folder",
	KeyJSONSchema:     "json-schema",
	KeyRaiseError:     "raise-error",
	KeyStrict:         "strict",
	KeyYAMLExtensions: "yaml-ext",
	KeyConcurrency:    "concurrency",
	KeyOutput:         "output",
	KeyLogLevel:       "log-level",
	KeyDebounce:       "debounce",
	KeyMetricsAddr:    "metrics-addr",
}

// Settings holds everything a validation run needs
type Settings struct {
	Folder         string
	JSONSchema     string
	RaiseError     bool
	Strict         bool
	YAMLExtensions []string
	Concurrency    int
	Output         string
	LogLevel       logger.Level
	Debounce       time.Duration
	MetricsAddr    string
}

// ConfigError reports a missing or invalid setting
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RegisterFlags adds the run flags shared by every command
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP(flagNames[KeyFolder], "f", "", "Folder to validate")
	flags.StringP(flagNames[KeyJSONSchema], "s", "", "Path to the JSON Schema (.json, .yaml or .yml)")
	flags.Bool(flagNames[KeyRaiseError], true, "Exit with an error when the structure is invalid")
	flags.Bool(flagNames[KeyStrict], false, "Reject files that are neither YAML nor .gitkeep")
	flags.StringSlice(flagNames[KeyYAMLExtensions], []string{".yaml"}, "File suffixes parsed as YAML")
	flags.Int(flagNames[KeyConcurrency], 4, "Subdirectories materialized in parallel")
	flags.StringP(flagNames[KeyOutput], "o", OutputAuto, "Output format: auto, json or text")
	flags.String(flagNames[KeyLogLevel], "warn", "Log level: debug, info, warn, error or off")
	flags.String("env-file", DefaultEnvFile, "Environment file with settings")
}

// RegisterWatchFlags adds the flags only the watch command understands
func RegisterWatchFlags(flags *pflag.FlagSet) {
	flags.Duration(flagNames[KeyDebounce], 200*time.Millisecond, "Quiet period before re-validating")
	flags.String(flagNames[KeyMetricsAddr], "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

// NewViper returns a viper instance bound to flags, the environment and the
// env file named by the --env-file flag (if it exists on fs).
func NewViper(fs afero.Fs, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault(KeyRaiseError, true)
	v.SetDefault(KeyYAMLExtensions, tree.DefaultYAMLExtensions)
	v.SetDefault(KeyConcurrency, 4)
	v.SetDefault(KeyOutput, OutputAuto)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyDebounce, 200*time.Millisecond)

	for key, name := range flagNames {
		if flag := flags.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	v.AutomaticEnv()

	envFile := DefaultEnvFile
	if flag := flags.Lookup("env-file"); flag != nil {
		envFile = flag.Value.String()
	}
	if err := readEnvFile(v, fs, envFile); err != nil {
		return nil, err
	}

	return v, nil
}

func readEnvFile(v *viper.Viper, fs afero.Fs, path string) error {
	if path == "" {
		return nil
	}
	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return &ConfigError{Key: "env-file", Err: err}
	}
	return nil
}

// Load reads and validates the settings. Every failure is a *ConfigError.
func Load(v *viper.Viper, fs afero.Fs) (*Settings, error) {
	s := &Settings{
		Folder:         strings.TrimSpace(v.GetString(KeyFolder)),
		JSONSchema:     strings.TrimSpace(v.GetString(KeyJSONSchema)),
		RaiseError:     v.GetBool(KeyRaiseError),
		Strict:         v.GetBool(KeyStrict),
		YAMLExtensions: splitList(v.GetStringSlice(KeyYAMLExtensions)),
		Concurrency:    v.GetInt(KeyConcurrency),
		Output:         strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput))),
		Debounce:       v.GetDuration(KeyDebounce),
		MetricsAddr:    strings.TrimSpace(v.GetString(KeyMetricsAddr)),
	}

	level, err := logger.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, &ConfigError{Key: KeyLogLevel, Err: err}
	}
	s.LogLevel = level

	if err := s.validate(fs); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate(fs afero.Fs) error {
	if s.Folder == "" {
		return &ConfigError{Key: KeyFolder, Err: errors.New("folder is required")}
	}
	info, err := fs.Stat(s.Folder)
	if err != nil {
		return &ConfigError{Key: KeyFolder, Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Key: KeyFolder, Err: fmt.Errorf("%s is not a directory", s.Folder)}
	}

	if s.JSONSchema == "" {
		return &ConfigError{Key: KeyJSONSchema, Err: errors.New("schema path is required")}
	}
	info, err = fs.Stat(s.JSONSchema)
	if err != nil {
		return &ConfigError{Key: KeyJSONSchema, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &ConfigError{Key: KeyJSONSchema, Err: fmt.Errorf("%s is not a regular file", s.JSONSchema)}
	}

	switch s.Output {
	case OutputAuto, OutputJSON, OutputText:
	default:
		return &ConfigError{Key: KeyOutput, Err: fmt.Errorf("unknown output format %q", s.Output)}
	}

	if s.Concurrency < 1 {
		return &ConfigError{Key: KeyConcurrency, Err: fmt.Errorf("must be at least 1, got %d", s.Concurrency)}
	}
	if s.Debounce <= 0 {
		return &ConfigError{Key: KeyDebounce, Err: fmt.Errorf("must be positive, got %s", s.Debounce)}
	}

	for _, ext := range s.YAMLExtensions {
		if ext == "" {
			return &ConfigError{Key: KeyYAMLExtensions, Err: errors.New("empty extension")}
		}
	}
	return nil
}

// TreeOptions converts the settings into materializer options
func (s *Settings) TreeOptions() tree.Options {
	return tree.Options{
		YAMLExtensions: s.YAMLExtensions,
		Strict:         s.Strict,
		Concurrency:    s.Concurrency - 1,
	}
}

// splitList accepts both list values and comma-separated strings (from env vars)
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
