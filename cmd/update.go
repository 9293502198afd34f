package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/installer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	updatePath   string
	updateForce  bool
	updateGlobal bool
	updateYes    bool
	updateDiff   bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "更新已安装的提示词",
	Long: `把清单中记录的提示词更新到目录中的版本。
存在本地修改的文件默认跳过，使用 --force 覆盖。

示例:
  mg-prompts update
  mg-prompts update --diff      # 先显示差异
  mg-prompts update --force     # 覆盖本地修改`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate()
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updatePath, "path", "p", "", "提示词安装目录（与 init 时一致）")
	updateCmd.Flags().BoolVarP(&updateForce, "force", "f", false, "即使存在本地修改也更新")
	updateCmd.Flags().BoolVarP(&updateGlobal, "global", "g", false, "更新 Claude 全局配置目录中的提示词")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "非交互模式：跳过确认")
	updateCmd.Flags().BoolVar(&updateDiff, "diff", false, "更新前显示差异")
	updateCmd.Flags().BoolVar(&noLock, "no-lock", false, "不获取目标目录锁")
}

func runUpdate() error {
	pc, err := loadProjectContext()
	if err != nil {
		return err
	}

	var prompter installer.Prompter
	if !updateYes && !updateForce {
		prompter = newPrompter()
	}

	in := installer.New(newLoader(pc), prompter).
		WithProject(pc.project).
		WithLogger(slog.Default()).
		WithOutput(os.Stdout)

	result, err := in.Update(installer.Options{
		StartDir: pc.root,
		Path:     updatePath,
		Global:   updateGlobal,
		Force:    updateForce,
		Yes:      updateYes,
		NoLock:   noLock,
		Diff:     updateDiff,
	})
	if errors.Is(err, installer.ErrCancelled) {
		color.Yellow("%s", i18n.T("update.cancelled"))
		return nil
	}
	if err != nil {
		return err
	}

	if result.NoneInstalled {
		color.Yellow("%s", i18n.T("update.none_installed"))
		fmt.Println(i18n.T("update.run_init"))
		return nil
	}
	if len(result.Candidates) == 0 {
		color.Green("✓ %s", i18n.T("update.up_to_date"))
		return nil
	}

	color.Cyan("%s", i18n.T("update.available", len(result.Candidates)))
	for _, c := range result.Candidates {
		line := fmt.Sprintf("  • %s: %s → %s", c.Record.ID, c.Record.Version, c.NewVersion)
		if c.Modified {
			line += " " + color.YellowString(i18n.T("update.local_changes"))
		}
		fmt.Println(line)
	}

	if len(result.Updated) > 0 {
		color.Green("✓ %s", i18n.T("update.updated", len(result.Updated)))
	}
	if len(result.Skipped) > 0 {
		color.Yellow("⚠ %s", i18n.T("update.skipped_modified", len(result.Skipped)))
		fmt.Println("  " + i18n.T("update.use_force"))
	}
	color.Green("✓ %s", i18n.T("update.complete"))
	return nil
}
