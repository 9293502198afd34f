package cmd

import (
	"fmt"
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/settings"
	"github.com/spf13/cobra"
)

var (
	getSetting string
	setSetting string
)

const supportedSettings = "language, catalogDir, prompts_path, catalog_dir"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "管理应用设置",
	Long: `管理 mg-prompts 设置

用户设置保存在 ~/.mg-prompts/settings.json，
项目设置（prompts_path、catalog_dir）保存在项目根目录的 .mg-prompts.toml。

示例:
  mg-prompts settings                            # 显示所有设置
  mg-prompts settings --get language             # 获取语言设置
  mg-prompts settings --set language=zh          # 设置语言为中文
  mg-prompts settings --set catalogDir=~/catalog # 设置用户级提示词目录
  mg-prompts settings --set prompts_path=docs/ai # 设置项目安装目录`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings()
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().StringVar(&getSetting, "get", "", "获取指定设置项的值")
	settingsCmd.Flags().StringVar(&setSetting, "set", "", "设置项 (格式: key=value)")
}

func runSettings() error {
	manager, err := settings.NewManager()
	if err != nil {
		return err
	}
	pc, err := loadProjectContext()
	if err != nil {
		return err
	}

	// 设置模式
	if setSetting != "" {
		parts := strings.SplitN(setSetting, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("%s", i18n.T("settings.invalid_format"))
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "language":
			if err := manager.SetLanguage(value); err != nil {
				return err
			}
			i18n.SetLanguage(value)
		case "catalogDir":
			if err := manager.SetCatalogDir(value); err != nil {
				return err
			}
			value = manager.GetCatalogDir()
		case "prompts_path":
			pc.project.PromptsPath = value
			if err := config.SaveProjectConfig(pc.root, pc.project); err != nil {
				return err
			}
		case "catalog_dir":
			pc.project.CatalogDir = value
			if err := config.SaveProjectConfig(pc.root, pc.project); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s", i18n.T("settings.unknown_key", key, supportedSettings))
		}
		fmt.Printf("✓ %s\n", i18n.T("settings.updated", key, value))
		return nil
	}

	// 获取模式
	if getSetting != "" {
		switch getSetting {
		case "language":
			fmt.Println(manager.GetLanguage())
		case "catalogDir":
			fmt.Println(manager.GetCatalogDir())
		case "prompts_path":
			fmt.Println(pc.project.PromptsPath)
		case "catalog_dir":
			fmt.Println(pc.project.CatalogDir)
		default:
			return fmt.Errorf("%s", i18n.T("settings.unknown_key", getSetting, supportedSettings))
		}
		return nil
	}

	// 显示所有设置
	orDefault := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	fmt.Println(i18n.T("settings.title"))
	fmt.Printf("  language:     %s\n", manager.GetLanguage())
	fmt.Printf("  catalogDir:   %s\n", orDefault(manager.GetCatalogDir(), i18n.T("settings.builtin")))
	fmt.Printf("  prompts_path: %s\n", orDefault(pc.project.PromptsPath, config.DefaultPromptsPath+" "+i18n.T("settings.default")))
	fmt.Printf("  catalog_dir:  %s\n", orDefault(pc.project.CatalogDir, i18n.T("settings.default")))
	return nil
}
