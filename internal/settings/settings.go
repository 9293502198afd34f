package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

// AppSettings 应用设置
type AppSettings struct {
	Language   string `json:"language"`             // 语言: "en" 或 "zh"
	CatalogDir string `json:"catalogDir,omitempty"` // 用户级自定义目录根
}

// Manager 设置管理器
type Manager struct {
	settings     *AppSettings
	settingsPath string
}

// NewManager 创建设置管理器
func NewManager() (*Manager, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("获取设置文件路径失败: %w", err)
	}
	return NewManagerWithPath(settingsPath)
}

// NewManagerWithPath 使用指定路径创建设置管理器
func NewManagerWithPath(settingsPath string) (*Manager, error) {
	manager := &Manager{
		settingsPath: settingsPath,
	}

	if err := manager.Load(); err != nil {
		return nil, err
	}

	return manager, nil
}

// GetSettingsPath 获取设置文件路径
func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户主目录失败: %w", err)
	}

	return filepath.Join(homeDir, ".mg-prompts", "settings.json"), nil
}

// Load 加载设置文件；文件不存在时使用默认设置（不落盘）
func (m *Manager) Load() error {
	if !utils.FileExists(m.settingsPath) {
		m.settings = &AppSettings{
			Language: "en",
		}
		return nil
	}

	data, err := os.ReadFile(m.settingsPath)
	if err != nil {
		return fmt.Errorf("读取设置文件失败: %w", err)
	}

	m.settings = &AppSettings{}
	if err := json.Unmarshal(data, m.settings); err != nil {
		return fmt.Errorf("解析设置文件失败: %w", err)
	}
	if m.settings.Language == "" {
		m.settings.Language = "en"
	}

	return nil
}

// Save 保存设置文件
func (m *Manager) Save() error {
	dir := filepath.Dir(m.settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建设置目录失败: %w", err)
	}

	return utils.WriteJSONFile(m.settingsPath, m.settings, 0600)
}

// Path 设置文件路径
func (m *Manager) Path() string {
	return m.settingsPath
}

// GetLanguage 获取语言设置
func (m *Manager) GetLanguage() string {
	return m.settings.Language
}

// SetLanguage 设置语言
func (m *Manager) SetLanguage(language string) error {
	if language != "en" && language != "zh" {
		return fmt.Errorf("不支持的语言: %s (支持: en, zh)", language)
	}
	m.settings.Language = language
	return m.Save()
}

// GetCatalogDir 获取用户级目录根
func (m *Manager) GetCatalogDir() string {
	return m.settings.CatalogDir
}

// SetCatalogDir 设置用户级目录根，空字符串表示恢复内置目录
func (m *Manager) SetCatalogDir(dir string) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("解析目录失败: %w", err)
		}
		dir = abs
	}
	m.settings.CatalogDir = dir
	return m.Save()
}

// Get 获取所有设置
func (m *Manager) Get() *AppSettings {
	return m.settings
}
