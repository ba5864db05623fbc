package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if cfg.Theme != "default" {
		t.Fatalf("theme = %q, want default", cfg.Theme)
	}
	if len(cfg.FileTypes) == 0 {
		t.Fatalf("expected built-in file types")
	}
}

func TestLoadOverridesTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	content := `theme = "solarized"

[[file_type]]
language_id = "rust"
extensions = [".rs"]
lexer = "rust"
renderer = "code"
tab_size = 4
use_tabs = false
lsp_command = ["rust-analyzer"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "solarized" {
		t.Fatalf("theme = %q, want solarized", cfg.Theme)
	}
	ft := cfg.ForExtension(".rs")
	if ft.LanguageID != "rust" || !ft.HasLSP() {
		t.Fatalf("file type = %+v", ft)
	}
}

func TestForExtensionFallsBackToPlaintext(t *testing.T) {
	cfg := Default()
	ft := cfg.ForExtension(".xyz")
	if ft.LanguageID != "plaintext" {
		t.Fatalf("language = %q, want plaintext", ft.LanguageID)
	}
}

func TestIndentConfigUsesTabsWhenConfigured(t *testing.T) {
	ft := FileType{UseTabs: true}
	if got := ft.IndentConfig().Indent; got != "\t" {
		t.Fatalf("indent = %q, want tab", got)
	}

	ft2 := FileType{UseTabs: false, TabSize: 2}
	if got := ft2.IndentConfig().Indent; got != "  " {
		t.Fatalf("indent = %q, want two spaces", got)
	}
}
