package cmd

import (
	"fmt"
	"os"

	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/logging"
	"github.com/spf13/cobra"
)

var (
	catalogDir string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "mg-prompts",
	Short: "Claude 提示词安装工具",
	Long: `mg-prompts 把提示词目录中的提示词安装到项目（或 Claude 全局配置目录），
记录安装清单，并在 CLAUDE.md 的 "## About You" 章节中引用它们。

使用方法：
  mg-prompts              等同于 mg-prompts init
  mg-prompts init         选择并安装提示词
  mg-prompts update       更新已安装的提示词
  mg-prompts list         列出可用或已安装的提示词`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose)
		return i18n.Init()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

// Execute 执行根命令，出错时以退出码 1 结束
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", i18n.T("error"), describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "提示词目录根（包含 prompts.json），默认使用内置目录")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	// 自定义帮助模板
	rootCmd.SetHelpTemplate(`{{.Long}}

{{if .HasAvailableSubCommands}}可用命令:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}

{{if .HasAvailableLocalFlags}}选项:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

使用 "{{.CommandPath}} [command] --help" 获取更多关于命令的信息。
`)
}
