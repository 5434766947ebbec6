// Package config holds the knobs that describe where peripheral sources
// live in a CC: Tweaked checkout and how stubs are rendered.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

type Config struct {
	// SourceDir is scanned for peripheral files, relative to the source root.
	SourceDir string `toml:"source_dir"`
	// FilePattern is a glob matched against base names in SourceDir. Keep
	// wildcards outside {} alternatives: *{Peripheral,Drive}.java.
	FilePattern string `toml:"file_pattern"`
	// SearchRoots are searched for parent class files, relative to the source root.
	SearchRoots []string `toml:"search_roots"`

	Marker       string   `toml:"marker"`
	ContextTypes []string `toml:"context_types"`
	// DocDistance is the maximum number of characters between the end of a
	// doc comment and the marker it documents.
	DocDistance int    `toml:"doc_distance"`
	TypeSuffix  string `toml:"type_suffix"`

	DocsURL        string `toml:"docs_url"`
	ClassNamespace string `toml:"class_namespace"`
	StubExtension  string `toml:"stub_extension"`

	// BaseClasses maps class names living outside the peripheral tree to
	// their file, relative to the source root.
	BaseClasses map[string]string `toml:"base_classes"`
	// ParentTypes maps a parent class name to the Lua class a stub extends.
	ParentTypes map[string]string `toml:"parent_types"`

	pattern glob.Glob
}

// Default returns the configuration for a stock CC: Tweaked checkout.
func Default() *Config {
	return &Config{
		SourceDir:   "projects/common/src/main/java",
		FilePattern: "*Peripheral.java",
		SearchRoots: []string{
			"projects/common/src/main/java",
			"projects/core/src/main/java",
		},
		Marker:         "LuaFunction",
		ContextTypes:   []string{"ILuaContext", "IComputerAccess"},
		DocDistance:    50,
		TypeSuffix:     "Peripheral",
		DocsURL:        "https://tweaked.cc/peripheral/",
		ClassNamespace: "ccTweaked.peripheral",
		StubExtension:  ".lua",
		BaseClasses: map[string]string{
			"TermMethods": "projects/core/src/main/java/dan200/computercraft/core/apis/TermMethods.java",
		},
		ParentTypes: map[string]string{
			"TermMethods": "ccTweaked.term.Redirect",
		},
	}
}

// Load reads a TOML file on top of the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and compiles the file pattern.
func (c *Config) Validate() error {
	switch {
	case c.SourceDir == "":
		return fmt.Errorf("config: source_dir is required")
	case c.FilePattern == "":
		return fmt.Errorf("config: file_pattern is required")
	case c.Marker == "":
		return fmt.Errorf("config: marker is required")
	case c.DocDistance < 0:
		return fmt.Errorf("config: doc_distance must not be negative")
	}

	g, err := glob.Compile(c.FilePattern)
	if err != nil {
		return fmt.Errorf("config: file_pattern %q: %w", c.FilePattern, err)
	}
	c.pattern = g
	return nil
}

// MatchFile reports whether a base name selects a file for extraction.
func (c *Config) MatchFile(name string) bool {
	if c.pattern == nil {
		if err := c.Validate(); err != nil {
			return false
		}
	}
	return c.pattern.Match(name)
}
