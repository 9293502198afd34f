package claudemd

import (
	"regexp"
	"strings"
)

// AboutYouHeader 受管理的章节标题
const AboutYouHeader = "## About You"

// Preamble 新建 CLAUDE.md 时使用的固定开头
const Preamble = "# CLAUDE.md\n\nThis file provides guidance to Claude Code (claude.ai/code) when working with code in this repository.\n\n"

// Document 已定位章节边界的文档
//
// Text[ContentStart:ContentEnd] 是章节正文；ContentEnd 处是下一个一级/二级标题行，
// 或者文档结尾。
type Document struct {
	Text         string
	Header       string
	Found        bool
	HeaderStart  int
	ContentStart int
	ContentEnd   int
	NextHeading  bool   // ContentEnd 处是否还有后续标题
	Gap          string // header 是最后一行时，正文前需要补的换行
}

// Parse 在文档中定位 header 章节；header 行之后必须紧跟空行，或者 header 就是最后一行
func Parse(text, header string) Document {
	doc := Document{Text: text, Header: header}

	offset := 0
	inFence := false
	for offset < len(text) {
		line, next := lineAt(text, offset)
		if isFence(line) {
			inFence = !inFence
		}
		if !inFence && line == header {
			if next >= len(text) {
				doc.Found = true
				doc.HeaderStart = offset
				doc.ContentStart = len(text)
				doc.ContentEnd = len(text)
				doc.Gap = "\n"
				if !strings.HasSuffix(text, "\n") {
					doc.Gap = "\n\n"
				}
				return doc
			}
			blank, afterBlank := lineAt(text, next)
			if blank == "" {
				doc.Found = true
				doc.HeaderStart = offset
				doc.ContentStart = afterBlank
				doc.ContentEnd, doc.NextHeading = findBoundary(text, afterBlank)
				return doc
			}
		}
		offset = next
	}

	return doc
}

// findBoundary 从 start 开始查找下一个一级或二级标题行的起始位置
func findBoundary(text string, start int) (int, bool) {
	offset := start
	inFence := false
	for offset < len(text) {
		line, next := lineAt(text, offset)
		if isFence(line) {
			inFence = !inFence
		} else if !inFence && isTopLevelHeading(line) {
			return offset, true
		}
		offset = next
	}
	return len(text), false
}

// lineAt 返回 offset 处的行（不含换行符）以及下一行的起始位置
func lineAt(text string, offset int) (string, int) {
	if offset >= len(text) {
		return "", len(text)
	}
	idx := strings.IndexByte(text[offset:], '\n')
	if idx < 0 {
		return text[offset:], len(text)
	}
	return text[offset : offset+idx], offset + idx + 1
}

func isTopLevelHeading(line string) bool {
	return strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") || line == "#" || line == "##"
}

func isFence(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// Content 章节正文
func (d Document) Content() string {
	if !d.Found {
		return ""
	}
	return d.Text[d.ContentStart:d.ContentEnd]
}

// Replace 用 lines 替换章节正文；章节不存在时追加到文档末尾
func (d Document) Replace(lines []string) string {
	body := renderBody(lines)

	if !d.Found {
		return d.Text + appendSeparator(d.Text) + d.Header + "\n\n" + body
	}

	if d.NextHeading {
		// 和下一个标题之间保留一个空行
		body += "\n"
	}
	return d.Text[:d.ContentStart] + d.Gap + body + d.Text[d.ContentEnd:]
}

func renderBody(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// appendSeparator 保证新章节前有一个空行
func appendSeparator(text string) string {
	switch {
	case text == "", strings.HasSuffix(text, "\n\n"):
		return ""
	case strings.HasSuffix(text, "\n"):
		return "\n"
	default:
		return "\n\n"
	}
}

// UpsertSection 插入或替换 header 章节，章节以外的内容保持不变
func UpsertSection(document, header string, lines []string) string {
	return Parse(document, header).Replace(lines)
}

// NewDocument 生成一个全新的文档（固定开头 + 章节）
func NewDocument(header string, lines []string) string {
	return UpsertSection(Preamble, header, lines)
}

var referencePattern = regexp.MustCompile(`(?:^|\s)@(\S+)`)

// ExtractSectionReferences 提取章节中所有以 .md 结尾的 @path 引用，按出现顺序返回
func ExtractSectionReferences(document, header string) []string {
	doc := Parse(document, header)
	refs := []string{}
	if !doc.Found {
		return refs
	}

	for _, line := range strings.Split(doc.Content(), "\n") {
		for _, m := range referencePattern.FindAllStringSubmatch(line, -1) {
			if strings.HasSuffix(m[1], ".md") {
				refs = append(refs, m[1])
			}
		}
	}
	return refs
}

// ReferenceLines 把相对路径转换成 @path 行
func ReferenceLines(paths []string) []string {
	lines := make([]string, 0, len(paths))
	for _, p := range paths {
		lines = append(lines, "@"+strings.ReplaceAll(p, "\\", "/"))
	}
	return lines
}
