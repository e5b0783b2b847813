package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every opentext environment variable.
const EnvPrefix = "OPENTEXT_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix   string            // Environment variable prefix (e.g., "OPENTEXT_")
	mapping  map[string]string // Env var -> config path
	verbatim map[string]bool   // Config paths whose values are never parsed
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "OPENTEXT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:   prefix,
		mapping:  defaultEnvMapping(prefix),
		verbatim: defaultVerbatim(),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:   prefix,
		mapping:  mapping,
		verbatim: defaultVerbatim(),
	}
}

// defaultEnvMapping returns the short aliases for common settings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "log.level",
		prefix + "ALLOCATOR": "engine.allocator",
		prefix + "ENCODING":  "input.encoding",
		prefix + "CHARSET":   "trim.charset",
		prefix + "SEPARATOR": "split.separator",
	}
}

// defaultVerbatim lists settings that hold literal text. "1" is a valid
// separator and "  " a valid charset, so they bypass value parsing.
func defaultVerbatim() map[string]bool {
	return map[string]bool{
		"trim.charset":    true,
		"split.separator": true,
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, l.value(path, val))
		}
	}

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}

		// OPENTEXT_TRIM_UNICODE_WHITESPACE -> trim.unicode_whitespace
		path := l.envToPath(name)
		if path == "" {
			continue
		}
		setByPath(config, path, l.value(path, value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToPath converts OPENTEXT_SPLIT_CULL_EMPTY to split.cull_empty.
// The first segment names the section; the rest is the snake_case key.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return section
	}
	return section + "." + key
}

func (l *EnvLoader) value(path, s string) any {
	if l.verbatim[path] {
		return s
	}
	return parseValue(s)
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" || s == "1" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" || s == "0" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only with a decimal point, so ints are not misread
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
