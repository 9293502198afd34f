package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
)

// ContentFunc 按相对路径返回目录中的原始内容
type ContentFunc func(relPath string) (string, error)

// Candidate 可更新项：已安装版本与目录版本不一致
type Candidate struct {
	Record     Record
	Entry      catalog.Entry
	NewVersion string
	Modified   bool   // 安装位置的文件与目录原始内容不一致（或已被删除）
	Content    string // 目录中的新内容
	Current    string // 安装位置的当前内容，文件不存在时为空
}

// CheckUpdates 计算更新候选；已从目录移除的记录与版本相同的记录都不会出现
func CheckUpdates(m *Manifest, entries []catalog.Entry, installDir string, content ContentFunc) ([]Candidate, error) {
	if m == nil {
		return nil, nil
	}

	var candidates []Candidate
	for _, rec := range m.Prompts {
		entry, ok := catalog.Find(entries, rec.ID)
		if !ok || entry.Version == rec.Version {
			continue
		}

		original, err := content(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog content for %s: %w", rec.ID, err)
		}

		dest := filepath.Join(installDir, filepath.FromSlash(entry.Path))
		current, _ := readIfExists(dest)
		modified, err := IsLocallyModified(dest, original)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, Candidate{
			Record:     rec,
			Entry:      entry,
			NewVersion: entry.Version,
			Modified:   modified,
			Content:    original,
			Current:    current,
		})
	}

	return candidates, nil
}

// Applicable 是否应该应用该候选（被修改的候选只在 force 时应用）
func (c Candidate) Applicable(force bool) bool {
	return force || !c.Modified
}

// ApplyUpdate 将候选应用到清单：更新 version 并清除 modified，installedAt 不变
func (m *Manifest) ApplyUpdate(c Candidate) {
	for i := range m.Prompts {
		if m.Prompts[i].ID == c.Record.ID {
			m.Prompts[i].Version = c.NewVersion
			m.Prompts[i].Modified = false
			m.Prompts[i].Checksum = Checksum(c.Content)
			return
		}
	}
}

func readIfExists(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
