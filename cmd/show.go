package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/renderer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "显示提示词内容",
	Long: `在终端中渲染目录中的提示词。

示例:
  mg-prompts show max
  mg-prompts show max --raw     # 输出原始文件（含 front matter）`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProjectContext()
		if err != nil {
			return err
		}
		return runShow(newLoader(pc), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "输出原始 Markdown")
}

func runShow(loader *catalog.Loader, id string) error {
	entries, err := loader.LoadCatalog()
	if err != nil {
		return err
	}
	entry, ok := catalog.Find(entries, id)
	if !ok {
		return fmt.Errorf("%s", i18n.T("show.not_found", id))
	}

	content, err := loader.GetAssetContent(entry.Path)
	if err != nil {
		return err
	}
	if showRaw {
		fmt.Print(content)
		return nil
	}

	_, body, err := catalog.ParseFrontMatter(content)
	if err != nil {
		return err
	}

	color.Cyan("%s (v%s)", entry.Name, entry.Version)
	if entry.Description != "" {
		fmt.Println(entry.Description)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("%s: %s\n", i18n.T("list.tags"), strings.Join(entry.Tags, ", "))
	}

	out, err := renderer.Render(body, terminalWidth())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !isTerminal(fd) {
		return renderer.DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return renderer.DefaultWidth
	}
	return width
}
