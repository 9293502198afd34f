package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/installer"
	"github.com/YangQing-Lin/mg-prompts/internal/settings"
	"github.com/YangQing-Lin/mg-prompts/internal/tui"
	"golang.org/x/term"
)

// 便于测试替换
var (
	isTerminal     = func(fd int) bool { return term.IsTerminal(fd) }
	newTUIPrompter = func() installer.Prompter { return tui.NewPrompter() }
)

// projectContext 当前目录对应的项目根与项目配置
type projectContext struct {
	root    string
	project *config.ProjectConfig
}

func loadProjectContext() (*projectContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	root := config.FindProjectRoot(cwd)
	project, err := config.LoadProjectConfig(root)
	if err != nil {
		return nil, err
	}
	return &projectContext{root: root, project: project}, nil
}

// newLoader 按 --catalog > 环境变量 > 项目配置 > 用户设置 > 内置 的顺序选择目录
func newLoader(pc *projectContext) *catalog.Loader {
	userDefault := ""
	if manager, err := settings.NewManager(); err == nil {
		userDefault = manager.GetCatalogDir()
	}

	dir := config.ResolveCatalogDir(catalogDir, pc.project, userDefault)
	if dir == "" {
		return catalog.NewBuiltinLoader()
	}
	return catalog.NewDirLoader(dir)
}

// newPrompter 终端中使用 TUI，否则退回逐行输入
func newPrompter() installer.Prompter {
	if isTerminal(int(os.Stdin.Fd())) && isTerminal(int(os.Stdout.Fd())) {
		return newTUIPrompter()
	}
	return newLinePrompter(os.Stdin, os.Stdout)
}

// describeError 把内部错误转换为用户可读的信息
func describeError(err error) error {
	var locked *installer.LockedError
	if errors.As(err, &locked) {
		if locked.PID > 0 {
			return errors.New(i18n.T("lock.busy", locked.PID, locked.Path))
		}
		return errors.New(i18n.T("lock.busy_unknown", locked.Path))
	}
	if errors.Is(err, installer.ErrNoSelection) {
		return errors.New(i18n.T("init.no_selection"))
	}
	return err
}

// linePrompter 非终端环境下的逐行交互
type linePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{reader: bufio.NewReader(in), out: out}
}

func (p *linePrompter) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Confirm 空输入或无法识别的输入取默认值
func (p *linePrompter) Confirm(message string, defaultYes bool) (bool, error) {
	hint := i18n.T("prompt.no_default")
	if defaultYes {
		hint = i18n.T("prompt.yes_default")
	}
	fmt.Fprintf(p.out, "%s %s: ", message, hint)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return defaultYes, nil
}

// SelectAssets 输入逗号分隔的序号，空输入选择已安装的条目
func (p *linePrompter) SelectAssets(entries []catalog.Entry, preselected []string) ([]string, error) {
	checked := make(map[string]bool, len(preselected))
	for _, id := range preselected {
		checked[id] = true
	}

	fmt.Fprintln(p.out, i18n.T("prompt.select_title"))
	var defaults []string
	for i, e := range entries {
		marker := "[ ]"
		if checked[e.ID] {
			marker = "[x]"
			defaults = append(defaults, strconv.Itoa(i+1))
		}
		line := fmt.Sprintf("  %s %d) %s (v%s)", marker, i+1, e.Name, e.Version)
		if e.Description != "" {
			line += " - " + e.Description
		}
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintf(p.out, "%s ", i18n.T("prompt.numbered", strings.Join(defaults, ",")))

	input, err := p.readLine()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(input) {
	case "":
		var ids []string
		for _, e := range entries {
			if checked[e.ID] {
				ids = append(ids, e.ID)
			}
		}
		return ids, nil
	case "a", "all":
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		return ids, nil
	}

	seen := make(map[int]bool)
	var picks []int
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(entries) {
			return nil, errors.New(i18n.T("prompt.invalid", field))
		}
		if !seen[n] {
			seen[n] = true
			picks = append(picks, n)
		}
	}
	sort.Ints(picks)

	ids := make([]string, 0, len(picks))
	for _, n := range picks {
		ids = append(ids, entries[n-1].ID)
	}
	return ids, nil
}
