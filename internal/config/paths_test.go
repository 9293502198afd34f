package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func withHome(t *testing.T, home, goos string) {
	t.Helper()
	origHome, origGOOS := userHomeDir, currentGOOS
	userHomeDir = func() (string, error) { return home, nil }
	currentGOOS = goos
	t.Cleanup(func() {
		userHomeDir = origHome
		currentGOOS = origGOOS
	})
}

func TestFindProjectRoot(t *testing.T) {
	base := t.TempDir()

	cases := []struct {
		name   string
		marker string
	}{
		{"git directory", ".git"},
		{"go module", "go.mod"},
		{"claude doc", "CLAUDE.md"},
		{"package json", "package.json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			project := filepath.Join(base, strings.ReplaceAll(tc.name, " ", "-"))
			if tc.marker == ".git" {
				mkdirAll(t, filepath.Join(project, ".git"))
			} else {
				writeFile(t, filepath.Join(project, tc.marker), "")
			}
			nested := filepath.Join(project, "a", "b", "c")
			mkdirAll(t, nested)

			if got := FindProjectRoot(nested); got != project {
				t.Fatalf("FindProjectRoot() = %s, want %s", got, project)
			}
		})
	}
}

func TestFindProjectRootFallback(t *testing.T) {
	// 临时目录的上级可能带有标记文件，只验证结果是起点或其祖先
	start := filepath.Join(t.TempDir(), "no", "markers")
	mkdirAll(t, start)

	got := FindProjectRoot(start)
	if !strings.HasPrefix(start, got) {
		t.Fatalf("FindProjectRoot() = %s, not an ancestor of %s", got, start)
	}
}

func TestGlobalDirCandidates(t *testing.T) {
	home := filepath.Join("/", "home", "u")

	darwin := GlobalDirCandidates("darwin", home, "")
	if darwin[0] != filepath.Join(home, "Library", "Application Support", "Claude") {
		t.Errorf("darwin first candidate = %s", darwin[0])
	}

	windows := GlobalDirCandidates("windows", home, "")
	if windows[0] != filepath.Join(home, "AppData", "Roaming", "Claude") {
		t.Errorf("windows first candidate = %s", windows[0])
	}

	linux := GlobalDirCandidates("linux", home, "")
	want := []string{
		filepath.Join(home, ".config", "claude"),
		filepath.Join(home, ".config", "com.anthropic.claude"),
		filepath.Join(home, ".claude"),
	}
	if !reflect.DeepEqual(linux, want) {
		t.Errorf("linux candidates = %v, want %v", linux, want)
	}

	xdg := GlobalDirCandidates("linux", home, "/xdg")
	if xdg[0] != filepath.Join("/xdg", "claude") {
		t.Errorf("xdg candidate = %s", xdg[0])
	}
}

func TestDetectGlobalDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	t.Run("first existing wins", func(t *testing.T) {
		home := t.TempDir()
		withHome(t, home, "linux")
		mkdirAll(t, filepath.Join(home, ".claude"))
		mkdirAll(t, filepath.Join(home, ".config", "com.anthropic.claude"))

		got, err := DetectGlobalDir()
		if err != nil {
			t.Fatalf("DetectGlobalDir() error = %v", err)
		}
		if got != filepath.Join(home, ".config", "com.anthropic.claude") {
			t.Fatalf("DetectGlobalDir() = %s", got)
		}
	})

	t.Run("none found", func(t *testing.T) {
		home := t.TempDir()
		withHome(t, home, "linux")

		_, err := DetectGlobalDir()
		if !errors.Is(err, ErrGlobalDirNotFound) {
			t.Fatalf("expected ErrGlobalDirNotFound, got %v", err)
		}
	})

	t.Run("file is not a directory", func(t *testing.T) {
		home := t.TempDir()
		withHome(t, home, "linux")
		writeFile(t, filepath.Join(home, ".claude"), "not a dir")

		if _, err := DetectGlobalDir(); !errors.Is(err, ErrGlobalDirNotFound) {
			t.Fatalf("expected ErrGlobalDirNotFound, got %v", err)
		}
	})
}

func TestResolveTargetLocal(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "go.mod"), "module x\n")
	start := filepath.Join(project, "sub")
	mkdirAll(t, start)

	cases := []struct {
		name       string
		opts       TargetOptions
		installDir string
		ref        string
	}{
		{
			name:       "default path",
			opts:       TargetOptions{StartDir: start},
			installDir: filepath.Join(project, ".ai", "prompts"),
			ref:        ".ai/prompts/max/MAX.md",
		},
		{
			name:       "custom path",
			opts:       TargetOptions{StartDir: start, Path: "docs/prompts"},
			installDir: filepath.Join(project, "docs", "prompts"),
			ref:        "docs/prompts/max/MAX.md",
		},
		{
			name:       "project config path",
			opts:       TargetOptions{StartDir: start, Project: &ProjectConfig{PromptsPath: "cfg/prompts"}},
			installDir: filepath.Join(project, "cfg", "prompts"),
			ref:        "cfg/prompts/max/MAX.md",
		},
		{
			name:       "flag beats project config",
			opts:       TargetOptions{StartDir: start, Path: "flag", Project: &ProjectConfig{PromptsPath: "cfg"}},
			installDir: filepath.Join(project, "flag"),
			ref:        "flag/max/MAX.md",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, err := ResolveTarget(tc.opts)
			if err != nil {
				t.Fatalf("ResolveTarget() error = %v", err)
			}
			if target.Root != project {
				t.Errorf("root = %s, want %s", target.Root, project)
			}
			if target.InstallDir != tc.installDir {
				t.Errorf("install dir = %s, want %s", target.InstallDir, tc.installDir)
			}
			if target.ManifestPath != filepath.Join(project, ".ai", "prompts.manifest.json") {
				t.Errorf("manifest path = %s", target.ManifestPath)
			}
			if target.ClaudeMdPath != filepath.Join(project, "CLAUDE.md") || target.Global {
				t.Errorf("unexpected target: %+v", target)
			}
			if got := target.ReferencePath("max/MAX.md"); got != tc.ref {
				t.Errorf("reference = %s, want %s", got, tc.ref)
			}
		})
	}
}

func TestResolveTargetGlobal(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home := t.TempDir()
	withHome(t, home, "linux")
	claudeDir := filepath.Join(home, ".claude")
	mkdirAll(t, claudeDir)

	target, err := ResolveTarget(TargetOptions{Global: true})
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	if !target.Global || target.Root != claudeDir {
		t.Fatalf("unexpected target: %+v", target)
	}
	if target.InstallDir != filepath.Join(claudeDir, "prompts") {
		t.Errorf("install dir = %s", target.InstallDir)
	}
	if target.ManifestPath != filepath.Join(claudeDir, ".ai", "prompts.manifest.json") {
		t.Errorf("manifest path = %s", target.ManifestPath)
	}
	if target.ClaudeMdPath != "" {
		t.Errorf("global target must not patch CLAUDE.md: %s", target.ClaudeMdPath)
	}
	if target.Describe() != target.InstallDir {
		t.Errorf("describe = %s", target.Describe())
	}
}

func TestResolveTargetGlobalMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	withHome(t, t.TempDir(), "darwin")

	if _, err := ResolveTarget(TargetOptions{Global: true}); !errors.Is(err, ErrGlobalDirNotFound) {
		t.Fatalf("expected ErrGlobalDirNotFound, got %v", err)
	}
}
