package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

const (
	// DefaultPromptsPath 项目内默认安装目录（相对项目根）
	DefaultPromptsPath = ".ai/prompts"
	// ManifestRelPath 清单文件相对根目录的位置
	ManifestRelPath = ".ai/prompts.manifest.json"
	// ClaudeMdFileName 项目级文档文件名
	ClaudeMdFileName = "CLAUDE.md"
	// GlobalPromptsDirName 全局安装时的子目录
	GlobalPromptsDirName = "prompts"
)

// ErrGlobalDirNotFound 找不到任何全局 Claude 配置目录
var ErrGlobalDirNotFound = errors.New("could not find Claude configuration directory")

// RootMarkers 识别项目根目录的标记文件/目录
var RootMarkers = []string{
	"package.json",
	"CLAUDE.md",
	".git",
	"pnpm-workspace.yaml",
	"yarn.lock",
	"package-lock.json",
	"pnpm-lock.yaml",
	".gitignore",
	"tsconfig.json",
	"pyproject.toml",
	"Cargo.toml",
	"go.mod",
}

// 便于测试替换
var (
	userHomeDir = os.UserHomeDir
	currentGOOS = runtime.GOOS
)

// FindProjectRoot 从 start 向上查找第一个包含标记文件的目录，找不到时返回 start
func FindProjectRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	dir := abs
	for {
		for _, marker := range RootMarkers {
			if utils.FileExists(filepath.Join(dir, marker)) {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}

// GlobalDirCandidates 按平台返回全局配置目录候选（按优先级排序）
func GlobalDirCandidates(goos, home, xdgConfigHome string) []string {
	switch goos {
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Claude"),
			filepath.Join(home, "Library", "Application Support", "com.anthropic.claude"),
			filepath.Join(home, ".claude"),
			filepath.Join(home, ".config", "claude"),
		}
	case "windows":
		appData := filepath.Join(home, "AppData", "Roaming")
		return []string{
			filepath.Join(appData, "Claude"),
			filepath.Join(appData, "com.anthropic.claude"),
			filepath.Join(home, ".claude"),
			filepath.Join(home, ".config", "claude"),
		}
	default:
		configHome := xdgConfigHome
		if configHome == "" {
			configHome = filepath.Join(home, ".config")
		}
		return []string{
			filepath.Join(configHome, "claude"),
			filepath.Join(configHome, "com.anthropic.claude"),
			filepath.Join(home, ".claude"),
		}
	}
}

// DetectGlobalDir 返回第一个存在的全局配置目录
func DetectGlobalDir() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户主目录失败: %w", err)
	}

	candidates := GlobalDirCandidates(currentGOOS, home, os.Getenv("XDG_CONFIG_HOME"))
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w (looked in: %v)", ErrGlobalDirNotFound, candidates)
}

// ManifestPath 根目录下的清单路径
func ManifestPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(ManifestRelPath))
}

// ClaudeMdPath 根目录下的 CLAUDE.md 路径
func ClaudeMdPath(root string) string {
	return filepath.Join(root, ClaudeMdFileName)
}
