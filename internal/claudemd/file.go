package claudemd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

// FileName 项目级文档文件名
const FileName = "CLAUDE.md"

// UpdateFile 读取文件、更新章节并原子写回；文件不存在时从固定开头新建
//
// 返回值 changed 表示文件内容是否发生变化（内容相同时不写盘）。
func UpdateFile(path, header string, lines []string) (bool, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var updated string
	if err != nil {
		updated = NewDocument(header, lines)
	} else {
		updated = UpsertSection(string(current), header, lines)
		if updated == string(current) {
			return false, nil
		}
	}

	if err := utils.AtomicWriteFile(path, []byte(updated), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// ReadReferences 读取文件中章节的 @path 引用；文件不存在时返回空列表
func ReadReferences(path, header string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ExtractSectionReferences(string(data), header), nil
}
