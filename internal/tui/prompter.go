package tui

import (
	"fmt"
	"io"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/installer"
	tea "github.com/charmbracelet/bubbletea"
)

// Prompter 基于 Bubble Tea 的交互实现
type Prompter struct {
	input  io.Reader
	output io.Writer
}

var _ installer.Prompter = (*Prompter)(nil)

// NewPrompter 创建使用当前终端的交互器
func NewPrompter() *Prompter {
	return &Prompter{}
}

// WithIO 指定输入输出，便于测试
func (p *Prompter) WithIO(in io.Reader, out io.Writer) *Prompter {
	p.input = in
	p.output = out
	return p
}

// SelectAssets 显示多选列表
func (p *Prompter) SelectAssets(entries []catalog.Entry, preselected []string) ([]string, error) {
	final, err := p.run(NewSelectModel(entries, preselected))
	if err != nil {
		return nil, err
	}

	m, ok := final.(SelectModel)
	if !ok || m.Cancelled() || !m.Done() {
		return nil, installer.ErrCancelled
	}
	return m.Selected(), nil
}

// Confirm 显示确认对话框
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	final, err := p.run(NewConfirmModel(message, defaultYes))
	if err != nil {
		return false, err
	}

	m, ok := final.(ConfirmModel)
	if !ok {
		return false, nil
	}
	return m.Confirmed(), nil
}

func (p *Prompter) run(model tea.Model) (tea.Model, error) {
	var opts []tea.ProgramOption
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run interactive prompt: %w", err)
	}
	return final, nil
}
