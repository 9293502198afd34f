package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/claudemd"
	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/manifest"
	"github.com/YangQing-Lin/mg-prompts/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listInstalled bool
	listGlobal    bool
	listPath      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "列出可用或已安装的提示词",
	Long: `列出目录中的提示词，或使用 --installed 列出当前项目已安装的提示词。

示例:
  mg-prompts list
  mg-prompts list --installed
  mg-prompts list --installed --global`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProjectContext()
		if err != nil {
			return err
		}
		if listInstalled {
			return listInstalledPrompts(pc)
		}
		return listAvailablePrompts(pc)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listInstalled, "installed", "i", false, "只显示已安装的提示词")
	listCmd.Flags().BoolVarP(&listGlobal, "global", "g", false, "查看 Claude 全局配置目录（配合 --installed）")
	listCmd.Flags().StringVarP(&listPath, "path", "p", "", "提示词安装目录（配合 --installed）")
}

func listAvailablePrompts(pc *projectContext) error {
	entries, err := newLoader(pc).LoadCatalog()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		color.Yellow("%s", i18n.T("list.empty_catalog"))
		return nil
	}

	color.Cyan("%s", i18n.T("list.available"))
	for _, e := range entries {
		fmt.Printf("\n  %s %s (v%s) [%s]\n", color.GreenString("●"), color.New(color.Bold).Sprint(e.Name), e.Version, e.ID)
		if e.Description != "" {
			fmt.Printf("     %s\n", e.Description)
		}
		if len(e.Tags) > 0 {
			fmt.Printf("     %s: %s\n", i18n.T("list.tags"), strings.Join(e.Tags, ", "))
		}
		if e.Author != "" {
			fmt.Printf("     %s: %s\n", i18n.T("list.author"), e.Author)
		}
	}
	return nil
}

func listInstalledPrompts(pc *projectContext) error {
	target, err := config.ResolveTarget(config.TargetOptions{
		StartDir: pc.root,
		Path:     listPath,
		Global:   listGlobal,
		Project:  pc.project,
	})
	if err != nil {
		return err
	}

	m, err := manifest.Load(target.ManifestPath)
	if err != nil {
		return err
	}
	if m == nil || len(m.Prompts) == 0 {
		color.Yellow("%s", i18n.T("list.none_installed"))
		return nil
	}

	// 目录加载失败时仍然列出清单内容
	entries, err := newLoader(pc).LoadCatalog()
	if err != nil {
		entries = nil
	}

	var referenced map[string]bool
	if !target.Global {
		refs, err := claudemd.ReadReferences(target.ClaudeMdPath, claudemd.AboutYouHeader)
		if err != nil {
			return err
		}
		referenced = make(map[string]bool, len(refs))
		for _, r := range refs {
			referenced[r] = true
		}
	}

	color.Cyan("%s", i18n.T("list.installed", target.Describe()))
	for _, rec := range m.Prompts {
		line := fmt.Sprintf("  %s %s (v%s)", color.GreenString("●"), rec.ID, rec.Version)

		entry, inCatalog := catalog.Find(entries, rec.ID)
		if rec.Modified || (inCatalog && drifted(target.AssetPath(entry.Path), rec)) {
			line += " " + color.YellowString(i18n.T("list.modified"))
		}
		if inCatalog && version.IsNewer(entry.Version, rec.Version) {
			line += " " + color.CyanString(i18n.T("list.update_available", entry.Version))
		}
		if referenced != nil && inCatalog && !referenced[target.ReferencePath(entry.Path)] {
			line += " " + color.New(color.Faint).Sprint(i18n.T("list.unreferenced"))
		}
		fmt.Println(line)
		fmt.Printf("     %s\n", i18n.T("list.installed_at", rec.InstalledAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

// drifted 安装后文件是否被改动（仅在记录了校验和时判断）
func drifted(path string, rec manifest.Record) bool {
	if rec.Checksum == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return manifest.Checksum(string(data)) != rec.Checksum
}
