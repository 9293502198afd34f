package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// ParseFrontMatter 解析 --- 包围的 YAML 头部，返回元数据和正文
func ParseFrontMatter(content string) (Metadata, string, error) {
	var meta Metadata

	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || trimEOL(lines[0]) != frontMatterDelimiter {
		return meta, "", ErrNoFrontMatter
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if trimEOL(lines[i]) == frontMatterDelimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return meta, "", ErrUnterminatedFrontMatter
	}

	header := strings.Join(lines[1:closing], "")
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return meta, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	meta.Name = strings.TrimSpace(meta.Name)
	meta.Version = strings.TrimSpace(meta.Version)
	if meta.Name == "" {
		return meta, "", &MissingFieldError{Field: "name"}
	}
	if meta.Version == "" {
		return meta, "", &MissingFieldError{Field: "version"}
	}

	body := strings.Join(lines[closing+1:], "")
	body = strings.TrimLeft(body, "\r\n")
	return meta, body, nil
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
