package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/dshills/opentext/internal/config/loader"
)

// ErrFileNotFound indicates an explicitly requested config file is missing.
var ErrFileNotFound = errors.New("config file not found")

// maxIncludeDepth bounds nested @include directives in config files.
const maxIncludeDepth = 8

// Accepted values for enumerated settings.
var (
	Allocators = []string{"heap", "pool"}
	Encodings  = []string{"utf-8", "utf-32le", "utf-32be"}
	LogLevels  = []string{"debug", "info", "warn", "warning", "error"}
)

// Config holds the merged settings of one opentext invocation.
type Config struct {
	mu sync.RWMutex

	merged map[string]any

	fs        loader.FileSystem
	file      string
	envPrefix string
	useEnv    bool

	// configErrors collects type mismatches seen by the section accessors.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile layers the TOML or YAML file at path over the defaults.
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
	}
}

// WithFileSystem reads config files through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// WithEnvPrefix sets the environment variable prefix, OPENTEXT_ by default.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config holding the built-in defaults only.
func New(opts ...Option) *Config {
	c := &Config{
		merged:       defaultConfig(),
		fs:           loader.DefaultFS(),
		envPrefix:    loader.EnvPrefix,
		useEnv:       true,
		configErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load builds a Config from defaults, the optional file and the environment,
// then validates it.
func Load(opts ...Option) (*Config, error) {
	c := New(opts...)
	if err := c.load(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file != "" {
		fl, err := loader.ForPath(c.fs, c.file)
		if err != nil {
			return err
		}
		data, err := loadIncluding(fl, c.file)
		if err != nil {
			return fmt.Errorf("loading %s: %w", c.file, err)
		}
		if data == nil {
			return fmt.Errorf("%s: %w", c.file, ErrFileNotFound)
		}
		c.merged = loader.DeepMerge(c.merged, data)
	}

	if c.useEnv {
		data, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		c.merged = loader.DeepMerge(c.merged, data)
	}
	return nil
}

// includeLoader is implemented by the file loaders that honor @include.
type includeLoader interface {
	LoadWithIncludes(path string, maxDepth int) (map[string]any, error)
}

func loadIncluding(fl loader.FileLoader, path string) (map[string]any, error) {
	if il, ok := fl.(includeLoader); ok {
		return il.LoadWithIncludes(path, maxIncludeDepth)
	}
	return fl.LoadFrom(path)
}

// Validate checks every known setting and returns all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	engine := c.Engine()
	input := c.Input()
	split := c.Split()
	logCfg := c.Log()
	trim := c.Trim()

	c.mu.RLock()
	paths := slices.Sorted(maps.Keys(c.configErrors))
	for _, path := range paths {
		result = multierror.Append(result, c.configErrors[path])
	}
	c.mu.RUnlock()

	if !slices.Contains(Allocators, engine.Allocator) {
		result = multierror.Append(result, enumError("engine.allocator", engine.Allocator, Allocators))
	}
	if !slices.Contains(Encodings, strings.ToLower(input.Encoding)) {
		result = multierror.Append(result, enumError("input.encoding", input.Encoding, Encodings))
	}
	if !slices.Contains(LogLevels, strings.ToLower(logCfg.Level)) {
		result = multierror.Append(result, enumError("log.level", logCfg.Level, LogLevels))
	}
	if trim.Charset == "" && !trim.UnicodeWhitespace {
		result = multierror.Append(result, &ValidationError{
			Path:    "trim.charset",
			Message: "must not be empty unless trim.unicode_whitespace is set",
			Value:   trim.Charset,
		})
	}
	if split.Separator == "" {
		result = multierror.Append(result, &ValidationError{
			Path:    "split.separator",
			Message: "must not be empty",
			Value:   split.Separator,
		})
	}

	return result.ErrorOrNil()
}

func enumError(path, value string, allowed []string) error {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")),
		Value:   value,
	}
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Set overrides the value at path. Command line flags use it as the top layer.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.configErrors, path)
	return setPath(c.merged, path, value)
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// Keys returns every leaf setting path in sorted order.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []string
	collectKeys(c.merged, "", &keys)
	sort.Strings(keys)
	return keys
}

func collectKeys(m map[string]any, prefix string, keys *[]string) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			collectKeys(sub, path, keys)
			continue
		}
		*keys = append(*keys, path)
	}
}

func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors[path] = err
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"engine": map[string]any{
			"allocator": "pool",
		},
		"input": map[string]any{
			"encoding": "utf-8",
		},
		"trim": map[string]any{
			"charset":            " \t\r\n",
			"unicode_whitespace": false,
		},
		"split": map[string]any{
			"separator":  ",",
			"cull_empty": false,
		},
		"log": map[string]any{
			"level": "info",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into its non-empty parts.
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '.' })
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
