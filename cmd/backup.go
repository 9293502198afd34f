package cmd

import (
	"fmt"

	"github.com/YangQing-Lin/mg-prompts/internal/backup"
	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "管理 CLAUDE.md 的备份",
	Long: `init 修改 CLAUDE.md 之前会自动备份（保留最近 5 个）。

子命令:
  mg-prompts backup list           # 列出所有备份
  mg-prompts backup restore [id]   # 从备份恢复（默认最新）`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出 CLAUDE.md 的备份",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProjectContext()
		if err != nil {
			return err
		}

		backups, err := backup.ListBackups(backup.Dir(pc.root), config.ClaudeMdFileName)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Println(i18n.T("backup.none"))
			return nil
		}

		color.Cyan("%s", i18n.T("backup.list"))
		for _, b := range backups {
			fmt.Printf("  %s  %s  %d bytes\n", b.ID, b.Timestamp.Local().Format("2006-01-02 15:04:05"), b.Size)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "从备份恢复 CLAUDE.md",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProjectContext()
		if err != nil {
			return err
		}

		id := ""
		if len(args) > 0 {
			id = args[0]
		}

		dir := backup.Dir(pc.root)
		b, err := backup.FindBackup(dir, config.ClaudeMdFileName, id)
		if err != nil {
			return err
		}

		currentID, err := backup.RestoreBackup(config.ClaudeMdPath(pc.root), b.Path)
		if err != nil {
			return err
		}
		if currentID != "" {
			fmt.Println(i18n.T("backup.created", currentID))
		}
		color.Green("✓ %s", i18n.T("backup.restored", b.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
