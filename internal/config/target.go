package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TargetOptions 解析安装目标的输入
type TargetOptions struct {
	StartDir string // 查找项目根的起点，空表示当前目录
	Path     string // --path，相对项目根或绝对路径
	Global   bool   // --global
	Project  *ProjectConfig
}

// Target 一次安装/更新操作的目标位置
type Target struct {
	Root         string // 项目根，或全局配置目录
	InstallDir   string // 资源复制到的目录
	ManifestPath string
	ClaudeMdPath string // 全局安装时为空
	Global       bool
}

// ResolveTarget 计算安装目录和清单位置
func ResolveTarget(opts TargetOptions) (*Target, error) {
	if opts.Global {
		dir, err := DetectGlobalDir()
		if err != nil {
			return nil, err
		}
		return &Target{
			Root:         dir,
			InstallDir:   filepath.Join(dir, GlobalPromptsDirName),
			ManifestPath: ManifestPath(dir),
			Global:       true,
		}, nil
	}

	start := opts.StartDir
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("获取当前目录失败: %w", err)
		}
		start = cwd
	}
	root := FindProjectRoot(start)

	rel := opts.Path
	if rel == "" && opts.Project != nil {
		rel = opts.Project.PromptsPath
	}
	if rel == "" {
		rel = DefaultPromptsPath
	}

	installDir := rel
	if !filepath.IsAbs(installDir) {
		installDir = filepath.Join(root, filepath.FromSlash(rel))
	}

	return &Target{
		Root:         root,
		InstallDir:   filepath.Clean(installDir),
		ManifestPath: ManifestPath(root),
		ClaudeMdPath: ClaudeMdPath(root),
	}, nil
}

// AssetPath 资源在磁盘上的目标路径
func (t *Target) AssetPath(relPath string) string {
	return filepath.Join(t.InstallDir, filepath.FromSlash(relPath))
}

// ReferencePath 资源相对项目根的路径（正斜杠），用于 CLAUDE.md 引用
func (t *Target) ReferencePath(relPath string) string {
	abs := t.AssetPath(relPath)
	rel, err := filepath.Rel(t.Root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// Describe 用于输出的目标描述（项目内显示相对路径）
func (t *Target) Describe() string {
	if t.Global {
		return t.InstallDir
	}
	rel, err := filepath.Rel(t.Root, t.InstallDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return t.InstallDir
	}
	return filepath.ToSlash(rel)
}
