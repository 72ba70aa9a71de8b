package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dshills/unitext/internal/config/loader"
	"github.com/dshills/unitext/internal/logging"
	"github.com/dshills/unitext/internal/native"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "UNITEXT_"

// Auto selects the host default for a charset or quoting setting.
const Auto = "auto"

// Config is the resolved configuration.
type Config struct {
	Native NativeConfig
	Log    LogConfig
	Output OutputConfig
}

// NativeConfig selects the host text forms.
//
// Wide cannot change the wide form, which is fixed per platform. It only
// asserts it: a value other than "auto" must name the platform's form
// ("utf-32" on Unix, "utf-16" on Windows), so a configuration written for
// another platform fails validation instead of producing foreign units.
type NativeConfig struct {
	Narrow string // Charset name, or "auto" for the process locale
	Wide   string // "auto", or the platform wide form by name; checked only
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level string
}

// OutputConfig controls how ustr prints results.
type OutputConfig struct {
	Format string // "text" or "json"
	Quote  string // "auto", "always" or "never"
}

// Default returns the built-in configuration.
func Default() *Config {
	c, _ := fromMap(defaultMap())
	return c
}

func defaultMap() map[string]any {
	return map[string]any{
		"native": map[string]any{
			"narrow": Auto,
			"wide":   Auto,
		},
		"log": map[string]any{
			"level": "warn",
		},
		"output": map[string]any{
			"format": "text",
			"quote":  Auto,
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	path string
	fs   loader.FileSystem
	env  loader.Loader
}

// WithFile layers the TOML or YAML file at path over the defaults.
// The file must exist.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment layer; nil disables it.
func WithEnv(l loader.Loader) Option {
	return func(o *options) {
		o.env = l
	}
}

// Load resolves defaults, the optional file and the environment, then
// validates the result.
func Load(opts ...Option) (*Config, error) {
	env := loader.NewEnvLoader(EnvPrefix)
	env.AddMapping(EnvPrefix+"CHARSET", "native.narrow")
	o := options{fs: loader.OSFS{}, env: env}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultMap()

	if o.path != "" {
		if _, err := o.fs.Stat(o.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", o.path, ErrFileNotFound)
			}
			return nil, fmt.Errorf("config file %s: %w", o.path, err)
		}
		fileMap, err := loader.NewFileLoaderWithFS(o.fs, o.path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileMap)
	}

	if o.env != nil {
		envMap, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envMap)
	}

	c, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func fromMap(m map[string]any) (*Config, error) {
	var c Config
	fields := []struct {
		path string
		dst  *string
	}{
		{"native.narrow", &c.Native.Narrow},
		{"native.wide", &c.Native.Wide},
		{"log.level", &c.Log.Level},
		{"output.format", &c.Output.Format},
		{"output.quote", &c.Output.Quote},
	}

	for _, f := range fields {
		v, ok := getPath(m, f.path)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, &TypeError{Path: f.path, Expected: "string", Actual: typeName(v)}
		}
		*f.dst = strings.TrimSpace(s)
	}

	return &c, nil
}

// Validate rejects unknown charsets, log levels and output settings.
func (c *Config) Validate() error {
	if c.Native.Narrow != Auto {
		if _, err := native.Lookup(c.Native.Narrow); err != nil {
			return &ValidationError{Path: "native.narrow", Value: c.Native.Narrow, Reason: "unknown charset", Err: err}
		}
	}

	if w := strings.ToLower(c.Native.Wide); w != Auto && w != native.WideCharset {
		return &ValidationError{
			Path:   "native.wide",
			Value:  c.Native.Wide,
			Reason: "wide form on this platform is " + native.WideCharset,
		}
	}

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return &ValidationError{Path: "log.level", Value: c.Log.Level, Reason: "unknown level"}
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "output.format", Value: c.Output.Format, Reason: `want "text" or "json"`}
	}

	switch c.Output.Quote {
	case Auto, "always", "never":
	default:
		return &ValidationError{Path: "output.quote", Value: c.Output.Quote, Reason: `want "auto", "always" or "never"`}
	}

	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	level, ok := logging.ParseLevel(c.Log.Level)
	if !ok {
		return logging.LevelWarn
	}
	return level
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	current := any(m)
	for _, part := range strings.Split(path, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
