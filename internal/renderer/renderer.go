package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth 默认换行宽度
const DefaultWidth = 80

// StyleEnvVar 覆盖渲染样式的环境变量
const StyleEnvVar = "GLAMOUR_STYLE"

// NewTermRenderer 创建终端 Markdown 渲染器
func NewTermRenderer(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	if style := os.Getenv(StyleEnvVar); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
	}

	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// Render 渲染 Markdown 文本
func Render(markdown string, width int) (string, error) {
	r, err := NewTermRenderer(width)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
