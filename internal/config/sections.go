package config

// EngineConfig selects how text buffers are allocated.
type EngineConfig struct {
	// Allocator is "pool" (size-classed reuse) or "heap" (plain make).
	Allocator string
}

// InputConfig describes how command input is decoded.
type InputConfig struct {
	// Encoding is "utf-8", "utf-32le" or "utf-32be".
	Encoding string
}

// TrimConfig configures the trim command.
type TrimConfig struct {
	// Charset lists the codepoints to strip.
	Charset string
	// UnicodeWhitespace strips every Unicode White_Space codepoint instead.
	UnicodeWhitespace bool
}

// SplitConfig configures the split command.
type SplitConfig struct {
	Separator string
	CullEmpty bool
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string
}

// Engine returns the engine settings.
func (c *Config) Engine() EngineConfig {
	return EngineConfig{
		Allocator: c.getStringOr("engine.allocator", "pool"),
	}
}

// Input returns the input settings.
func (c *Config) Input() InputConfig {
	return InputConfig{
		Encoding: c.getStringOr("input.encoding", "utf-8"),
	}
}

// Trim returns the trim settings.
func (c *Config) Trim() TrimConfig {
	return TrimConfig{
		Charset:           c.getStringOr("trim.charset", " \t\r\n"),
		UnicodeWhitespace: c.getBoolOr("trim.unicode_whitespace", false),
	}
}

// Split returns the split settings.
func (c *Config) Split() SplitConfig {
	return SplitConfig{
		Separator: c.getStringOr("split.separator", ","),
		CullEmpty: c.getBoolOr("split.cull_empty", false),
	}
}

// Log returns the logging settings.
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level: c.getStringOr("log.level", "info"),
	}
}

// These return defaultValue when the setting is missing or has the wrong
// type. Type errors are also recorded for Validate.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}
