package tui

import "github.com/charmbracelet/lipgloss"

var (
	// 颜色定义
	primaryColor   = lipgloss.Color("#007AFF")
	successColor   = lipgloss.Color("#34C759")
	warningColor   = lipgloss.Color("#FF9500")
	subtleColor    = lipgloss.Color("#8E8E93")
	bgColor        = lipgloss.Color("#FFFFFF")
	selectedBg     = lipgloss.Color("#F2F2F7")
	mutedTextColor = lipgloss.Color("#6C6C70")

	// 标题样式
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	// 状态栏样式
	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedTextColor).
			Padding(0, 1)

	// 帮助文本样式
	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Padding(0, 1)

	// 光标所在项样式
	selectedItemStyle = lipgloss.NewStyle().
				Background(selectedBg).
				Foreground(primaryColor).
				Bold(true).
				Padding(0, 1)

	// 普通项样式
	normalItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// 已勾选标记样式
	checkedMarkerStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	// 未勾选标记样式
	uncheckedMarkerStyle = lipgloss.NewStyle().
				Foreground(subtleColor)

	// 描述文本样式
	descriptionStyle = lipgloss.NewStyle().
				Foreground(mutedTextColor)

	// 版本徽章样式
	versionBadgeStyle = lipgloss.NewStyle().
				Foreground(warningColor)

	// 按钮样式
	buttonStyle = lipgloss.NewStyle().
			Foreground(bgColor).
			Background(primaryColor).
			Padding(0, 2).
			Bold(true)

	// 未激活按钮样式
	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(bgColor).
				Background(subtleColor).
				Padding(0, 2)

	// 对话框样式
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Width(60)

	// 输入框焦点样式
	focusedStyle = lipgloss.NewStyle().Foreground(primaryColor)
)
