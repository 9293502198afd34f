package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/installer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initPath   string
	initForce  bool
	initGlobal bool
	initYes    bool
	noLock     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "选择并安装提示词",
	Long: `选择目录中的提示词并复制到项目中（默认 .ai/prompts），
更新 .ai/prompts.manifest.json，并在 CLAUDE.md 的 "## About You" 章节中引用。

示例:
  mg-prompts init                   # 交互式选择
  mg-prompts init --yes             # 安装全部，已存在的文件保持不变
  mg-prompts init --force           # 覆盖已存在的文件
  mg-prompts init --path docs/ai    # 安装到自定义目录
  mg-prompts init --global          # 安装到 Claude 全局配置目录`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initPath, "path", "p", "", "提示词安装目录（相对项目根，默认 .ai/prompts）")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "覆盖已存在的提示词文件")
	initCmd.Flags().BoolVarP(&initGlobal, "global", "g", false, "安装到 Claude 全局配置目录")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "非交互模式：选择全部提示词")
	initCmd.Flags().BoolVar(&noLock, "no-lock", false, "不获取目标目录锁")
}

func runInit() error {
	pc, err := loadProjectContext()
	if err != nil {
		return err
	}

	var prompter installer.Prompter
	if !initYes {
		prompter = newPrompter()
	}

	in := installer.New(newLoader(pc), prompter).
		WithProject(pc.project).
		WithLogger(slog.Default()).
		WithOutput(os.Stdout)

	result, err := in.Install(installer.Options{
		StartDir: pc.root,
		Path:     initPath,
		Global:   initGlobal,
		Force:    initForce,
		Yes:      initYes,
		NoLock:   noLock,
	})
	if errors.Is(err, installer.ErrCancelled) {
		color.Yellow("%s", i18n.T("init.cancelled"))
		return nil
	}
	if err != nil {
		return err
	}

	printInstallResult(result)
	return nil
}

func printInstallResult(result *installer.InstallResult) {
	color.Green("✓ %s", i18n.T("init.installed", len(result.Installed), result.Target.Describe()))
	if len(result.Skipped) > 0 {
		color.Yellow("  %s", i18n.T("init.skipped_existing", len(result.Skipped), strings.Join(result.Skipped, ", ")))
	}

	if result.BackupID != "" {
		fmt.Printf("  %s\n", i18n.T("init.claude_backup", result.BackupID))
	}

	switch result.Claude {
	case installer.ClaudeNotApplicable:
		fmt.Printf("  %s\n", i18n.T("init.global_note"))
	case installer.ClaudeUpdated:
		color.Green("✓ %s", i18n.T("init.claude_updated"))
	case installer.ClaudeUnchanged:
		fmt.Printf("  %s\n", i18n.T("init.claude_unchanged"))
	case installer.ClaudeDeclined:
		color.Yellow("  %s", i18n.T("init.claude_skipped"))
	}

	color.Green("✓ %s", i18n.T("init.done"))
}
