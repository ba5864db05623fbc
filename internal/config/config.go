// Package config is Quill's ambient configuration layer: the file-type
// table (language id, lexer/renderer selection, indent policy, LSP server
// command) and the active theme name. Key-binding configuration loading
// is out of scope (spec.md §1's Non-goals name it explicitly).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/quillcode/quill/internal/edit"
)

// FileType is the editing policy and renderer/lexer selection for one
// language, keyed by file extension.
type FileType struct {
	LanguageID string   `toml:"language_id"`
	Extensions []string `toml:"extensions"`
	Lexer      string   `toml:"lexer"`
	Renderer   string   `toml:"renderer"` // "code", "text", or "markdown"
	TabSize    int      `toml:"tab_size"`
	UseTabs    bool     `toml:"use_tabs"`

	// LSPCommand is the server's argv, e.g. ["gopls"]. Empty means no LSP
	// session is started for this language.
	LSPCommand []string `toml:"lsp_command"`
}

// Config is Quill's whole ambient configuration, loaded from a single TOML
// file -- grounded on the teacher's own config loader, which reaches for
// github.com/pelletier/go-toml/v2 for exactly this purpose.
type Config struct {
	Theme     string     `toml:"theme"`
	FileTypes []FileType `toml:"file_type"`
}

// Default is the built-in configuration used when no config file is
// present.
func Default() Config {
	return Config{
		Theme: "default",
		FileTypes: []FileType{
			{
				LanguageID: "go", Extensions: []string{".go"},
				Lexer: "go", Renderer: "code",
				TabSize: 4, UseTabs: true,
				LSPCommand: []string{"gopls"},
			},
			{
				LanguageID: "markdown", Extensions: []string{".md", ".markdown"},
				Renderer: "markdown",
				TabSize:  2, UseTabs: false,
			},
			{
				LanguageID: "plaintext", Extensions: []string{".txt"},
				Renderer: "text",
				TabSize:  4, UseTabs: false,
			},
		},
	}
}

// Load reads path as TOML and merges it onto Default(), so a partial user
// file only overrides what it sets. A missing file is not an error -- it
// returns the defaults unchanged, matching the teacher's loader convention
// that an absent config file means "use defaults."
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if loaded.Theme != "" {
		cfg.Theme = loaded.Theme
	}
	if len(loaded.FileTypes) > 0 {
		cfg.FileTypes = loaded.FileTypes
	}
	return cfg, nil
}

// ForExtension returns the FileType registered for ext (including the
// leading dot), or a plaintext fallback if none matches.
func (c Config) ForExtension(ext string) FileType {
	for _, ft := range c.FileTypes {
		for _, e := range ft.Extensions {
			if e == ext {
				return ft
			}
		}
	}
	return FileType{LanguageID: "plaintext", Renderer: "text", TabSize: 4}
}

// IndentConfig converts a FileType's tab policy into the edit engine's
// indent Config, keeping the engine's brace/paren-aware defaults.
func (ft FileType) IndentConfig() edit.Config {
	cfg := edit.DefaultConfig()
	if ft.UseTabs {
		cfg.Indent = "\t"
	} else {
		n := ft.TabSize
		if n <= 0 {
			n = 4
		}
		cfg.Indent = strings.Repeat(" ", n)
	}
	return cfg
}

// HasLSP reports whether this file type starts an LSP session.
func (ft FileType) HasLSP() bool { return len(ft.LSPCommand) > 0 }
