// Package config provides the settings of the opentext command.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← OPENTEXT_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← --config, TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithFile("opentext.toml"))
//	if err != nil {
//	    return err
//	}
//	sep := cfg.Split().Separator
//
// A configuration file looks like:
//
//	[engine]
//	allocator = "pool"   # heap | pool
//
//	[input]
//	encoding = "utf-8"   # utf-8 | utf-32le | utf-32be
//
//	[trim]
//	charset = " \t\r\n"
//	unicode_whitespace = false
//
//	[split]
//	separator = ","
//	cull_empty = false
//
//	[log]
//	level = "info"
//
// Load reports type mismatches and invalid values together, as one
// multierror, so a broken file is fixed in a single pass.
package config
