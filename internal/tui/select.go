package tui

import (
	"fmt"
	"strings"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// SelectModel 提示词多选模型
type SelectModel struct {
	entries   []catalog.Entry
	search    []string
	visible   []int
	checked   map[string]bool
	cursor    int
	filter    textinput.Model
	filtering bool
	done      bool
	cancelled bool
	width     int
}

// NewSelectModel 创建多选模型，preselected 中的 id 默认勾选
func NewSelectModel(entries []catalog.Entry, preselected []string) SelectModel {
	filter := textinput.New()
	filter.Prompt = i18n.T("prompt.filter")
	filter.PromptStyle = focusedStyle
	filter.CharLimit = 64

	m := SelectModel{
		entries: entries,
		search:  make([]string, len(entries)),
		checked: make(map[string]bool, len(entries)),
		filter:  filter,
	}
	for i, e := range entries {
		m.search[i] = fmt.Sprintf("%s %s %s %s", e.ID, e.Name, e.Description, strings.Join(e.Tags, " "))
	}
	for _, id := range preselected {
		if _, ok := catalog.Find(entries, id); ok {
			m.checked[id] = true
		}
	}
	m.applyFilter()
	return m
}

// Selected 按目录顺序返回勾选的 id
func (m SelectModel) Selected() []string {
	ids := make([]string, 0, len(m.checked))
	for _, e := range m.entries {
		if m.checked[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Cancelled 用户是否取消
func (m SelectModel) Cancelled() bool {
	return m.cancelled
}

// Done 用户是否确认
func (m SelectModel) Done() bool {
	return m.done
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

// handleListKeys 处理列表模式的键盘事件
func (m SelectModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case " ", "space", "x":
		if id, ok := m.current(); ok {
			m.checked[id] = !m.checked[id]
		}
	case "a":
		m.toggleVisible()
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// handleFilterKeys 处理过滤输入模式的键盘事件
func (m SelectModel) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *SelectModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	visible := make([]int, 0, len(m.entries))
	if query == "" {
		for i := range m.entries {
			visible = append(visible, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, m.search) {
			visible = append(visible, match.Index)
		}
	}
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *SelectModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.visible)) % len(m.visible)
}

func (m SelectModel) current() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return "", false
	}
	return m.entries[m.visible[m.cursor]].ID, true
}

// toggleVisible 全部勾选可见项；若已全部勾选则全部取消
func (m *SelectModel) toggleVisible() {
	all := true
	for _, idx := range m.visible {
		if !m.checked[m.entries[idx].ID] {
			all = false
			break
		}
	}
	for _, idx := range m.visible {
		m.checked[m.entries[idx].ID] = !all
	}
}

func (m SelectModel) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(i18n.T("prompt.select_title")) + "\n\n")

	if m.filtering || m.filter.Value() != "" {
		s.WriteString(" " + m.filter.View() + "\n\n")
	}

	if len(m.visible) == 0 {
		s.WriteString(helpStyle.Render(i18n.T("prompt.no_match")) + "\n")
	}

	for i, idx := range m.visible {
		e := m.entries[idx]
		marker := uncheckedMarkerStyle.Render("[ ]")
		if m.checked[e.ID] {
			marker = checkedMarkerStyle.Render("[x]")
		}

		label := fmt.Sprintf("%s  %s", e.ID, e.Name)
		style := normalItemStyle
		if i == m.cursor {
			style = selectedItemStyle
		}

		line := fmt.Sprintf("%s %s %s", marker, style.Render(label), versionBadgeStyle.Render("v"+e.Version))
		if e.Description != "" {
			line += " " + descriptionStyle.Render(e.Description)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n")
	s.WriteString(statusBarStyle.Render(i18n.T("prompt.selected", len(m.Selected()))) + "\n")
	s.WriteString(helpStyle.Render(i18n.T("prompt.select_help")))

	return s.String()
}
