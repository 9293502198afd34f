package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadProjectConfig(t.TempDir())
		if err != nil {
			t.Fatalf("LoadProjectConfig() error = %v", err)
		}
		if cfg.PromptsPath != "" || cfg.CatalogDir != "" {
			t.Fatalf("expected empty config, got %+v", cfg)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ProjectConfigFileName), "prompts_path = \"docs/ai\"\ncatalog_dir = \"catalog\"\n")

		cfg, err := LoadProjectConfig(root)
		if err != nil {
			t.Fatalf("LoadProjectConfig() error = %v", err)
		}
		if cfg.PromptsPath != "docs/ai" {
			t.Errorf("prompts_path = %q", cfg.PromptsPath)
		}
		t.Setenv(CatalogEnvVar, "")
		if got := ResolveCatalogDir("", cfg, ""); got != filepath.Join(root, "catalog") {
			t.Errorf("catalog dir = %s", got)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ProjectConfigFileName), "prompts_path = \n")

		if _, err := LoadProjectConfig(root); err == nil || !strings.Contains(err.Error(), ProjectConfigFileName) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})
}

func TestSaveProjectConfigRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := SaveProjectConfig(root, &ProjectConfig{PromptsPath: "x/y"}); err != nil {
		t.Fatalf("SaveProjectConfig() error = %v", err)
	}
	cfg, err := LoadProjectConfig(root)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if cfg.PromptsPath != "x/y" || cfg.CatalogDir != "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestResolveCatalogDirPriority(t *testing.T) {
	project := &ProjectConfig{CatalogDir: "/from/project"}

	t.Setenv(CatalogEnvVar, "/from/env")
	if got := ResolveCatalogDir("/from/flag", project, "/from/settings"); got != "/from/flag" {
		t.Errorf("flag should win, got %s", got)
	}
	if got := ResolveCatalogDir("", project, "/from/settings"); got != "/from/env" {
		t.Errorf("env should beat project config, got %s", got)
	}

	t.Setenv(CatalogEnvVar, "")
	if got := ResolveCatalogDir("", project, "/from/settings"); got != "/from/project" {
		t.Errorf("project config expected, got %s", got)
	}
	if got := ResolveCatalogDir("", nil, "/from/settings"); got != "/from/settings" {
		t.Errorf("user settings expected, got %s", got)
	}
	if got := ResolveCatalogDir("", nil, ""); got != "" {
		t.Errorf("expected builtin (empty), got %s", got)
	}
}
