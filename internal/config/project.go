package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// ProjectConfigFileName 项目级配置文件
	ProjectConfigFileName = ".mg-prompts.toml"
	// CatalogEnvVar 覆盖目录根的环境变量
	CatalogEnvVar = "MG_PROMPTS_CATALOG"
)

// ProjectConfig 项目级配置（.mg-prompts.toml）
type ProjectConfig struct {
	PromptsPath string `toml:"prompts_path,omitempty"` // 默认安装目录（相对项目根）
	CatalogDir  string `toml:"catalog_dir,omitempty"`  // 自定义目录根（相对项目根或绝对路径）

	dir string
}

// LoadProjectConfig 读取 root 下的项目配置；文件不存在时返回空配置
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	path := filepath.Join(root, ProjectConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ProjectConfig{dir: root}, nil
		}
		return nil, fmt.Errorf("读取项目配置失败: %w", err)
	}

	cfg := &ProjectConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析项目配置 %s 失败: %w", path, err)
	}
	cfg.dir = root
	return cfg, nil
}

// SaveProjectConfig 写入项目配置
func SaveProjectConfig(root string, cfg *ProjectConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化项目配置失败: %w", err)
	}
	path := filepath.Join(root, ProjectConfigFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入项目配置失败: %w", err)
	}
	return nil
}

// ResolveCatalogDir 按优先级确定目录根：命令行 > 环境变量 > 项目配置 > 用户设置；返回空表示使用内置目录
func ResolveCatalogDir(flagValue string, project *ProjectConfig, userDefault string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(CatalogEnvVar); env != "" {
		return env
	}
	if project != nil && project.CatalogDir != "" {
		if filepath.IsAbs(project.CatalogDir) || project.dir == "" {
			return project.CatalogDir
		}
		return filepath.Join(project.dir, filepath.FromSlash(project.CatalogDir))
	}
	return userDefault
}
