package tui

import (
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel 是/否确认对话框
type ConfirmModel struct {
	message   string
	yes       bool
	done      bool
	cancelled bool
}

// NewConfirmModel 创建确认对话框，defaultYes 决定初始焦点
func NewConfirmModel(message string, defaultYes bool) ConfirmModel {
	return ConfirmModel{message: message, yes: defaultYes}
}

// Confirmed 用户是否选择了"是"
func (m ConfirmModel) Confirmed() bool {
	return m.done && m.yes
}

// Cancelled 用户是否按 ESC 取消
func (m ConfirmModel) Cancelled() bool {
	return m.cancelled
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		m.yes = false
		return m, tea.Quit
	case "y", "Y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.yes = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.yes = !m.yes
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	yesBtn := cancelButtonStyle.Render(i18n.T("confirm.yes"))
	noBtn := cancelButtonStyle.Render(i18n.T("confirm.no"))
	if m.yes {
		yesBtn = buttonStyle.Render(i18n.T("confirm.yes"))
	} else {
		noBtn = buttonStyle.Render(i18n.T("confirm.no"))
	}

	var s strings.Builder
	s.WriteString(m.message + "\n\n")
	s.WriteString(yesBtn + "  " + noBtn + "\n\n")
	s.WriteString(helpStyle.Render(i18n.T("confirm.help")))

	return dialogBoxStyle.Render(s.String())
}
