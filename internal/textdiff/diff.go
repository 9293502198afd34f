package textdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// NoDifferences 内容一致时的输出
const NoDifferences = "No differences found."

// ContextLines 每个变更块前后保留的上下文行数
const ContextLines = 3

type line struct {
	kind byte // ' ', '-', '+'
	text string
	old  int // 旧文件行号（从 1 开始）
	new  int // 新文件行号
}

// Unified 生成两个文本之间按行比较的 unified diff
func Unified(oldText, newText, oldLabel, newLabel string) string {
	if oldText == newText {
		return NoDifferences
	}

	lines := diffLines(oldText, newText)

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s\n", oldLabel))
	result.WriteString(fmt.Sprintf("+++ %s\n", newLabel))
	for _, h := range hunks(lines) {
		writeHunk(&result, lines[h[0]:h[1]])
	}

	return result.String()
}

// diffLines 使用行模式 diff，把结果展开为逐行记录
func diffLines(oldText, newText string) []line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out []line
	oldNo, newNo := 1, 1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				out = append(out, line{kind: ' ', text: text, old: oldNo, new: newNo})
				oldNo++
				newNo++
			case diffmatchpatch.DiffDelete:
				out = append(out, line{kind: '-', text: text, old: oldNo, new: newNo})
				oldNo++
			case diffmatchpatch.DiffInsert:
				out = append(out, line{kind: '+', text: text, old: oldNo, new: newNo})
				newNo++
			}
		}
	}
	return out
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// hunks 返回变更块的 [start, end) 下标区间，相邻变更块的上下文重叠时合并
func hunks(lines []line) [][2]int {
	var out [][2]int
	for i, l := range lines {
		if l.kind == ' ' {
			continue
		}
		start := max(0, i-ContextLines)
		end := min(len(lines), i+ContextLines+1)
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func writeHunk(b *strings.Builder, lines []line) {
	oldStart, newStart := lines[0].old, lines[0].new
	oldCount, newCount := 0, 0
	for _, l := range lines {
		if l.kind != '+' {
			oldCount++
		}
		if l.kind != '-' {
			newCount++
		}
	}

	b.WriteString(fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount))
	for _, l := range lines {
		b.WriteByte(l.kind)
		b.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			b.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

// Colorize 为 CLI 输出着色
func Colorize(diff string) string {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	var result strings.Builder
	for _, l := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(l, "---"), strings.HasPrefix(l, "+++"):
			result.WriteString(bold.Sprint(l))
		case strings.HasPrefix(l, "-"):
			result.WriteString(red.Sprint(l))
		case strings.HasPrefix(l, "+"):
			result.WriteString(green.Sprint(l))
		case strings.HasPrefix(l, "@@"):
			result.WriteString(cyan.Sprint(l))
		default:
			result.WriteString(l)
		}
		result.WriteString("\n")
	}

	return result.String()
}
