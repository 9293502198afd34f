package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

// SchemaVersion 清单文件格式版本
const SchemaVersion = "1.0.0"

// Record 已安装资源记录
type Record struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	InstalledAt time.Time `json:"installedAt"`
	Modified    bool      `json:"modified"`
	Checksum    string    `json:"checksum,omitempty"` // 安装时写入内容的 sha256
}

// Manifest 安装状态清单（<root>/.ai/prompts.manifest.json）
type Manifest struct {
	SchemaVersion string   `json:"version"`
	Prompts       []Record `json:"prompts"`
}

// ParseError 清单文件存在但格式错误
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// New 创建空清单
func New() *Manifest {
	return &Manifest{SchemaVersion: SchemaVersion, Prompts: []Record{}}
}

// Load 读取清单；文件不存在时返回 (nil, nil)
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if m.SchemaVersion == "" {
		return nil, &ParseError{Path: path, Err: errors.New(`missing "version"`)}
	}
	if m.Prompts == nil {
		m.Prompts = []Record{}
	}

	seen := make(map[string]bool, len(m.Prompts))
	for _, r := range m.Prompts {
		if r.ID == "" {
			return nil, &ParseError{Path: path, Err: errors.New("record with empty id")}
		}
		if seen[r.ID] {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("duplicate id %q", r.ID)}
		}
		seen[r.ID] = true
	}

	return &m, nil
}

// Save 整体写入清单（自动创建父目录，临时文件 + rename）
func Save(path string, m *Manifest) error {
	if m == nil {
		return errors.New("manifest is nil")
	}
	out := *m
	if out.SchemaVersion == "" {
		out.SchemaVersion = SchemaVersion
	}
	if out.Prompts == nil {
		out.Prompts = []Record{}
	}

	if err := utils.WriteJSONFile(path, &out, 0644); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// IsLocallyModified 文件不存在或内容与 original 不完全一致时返回 true
func IsLocallyModified(filePath, original string) (bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return string(data) != original, nil
}

// Checksum 计算内容的 sha256（十六进制）
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Get 按 id 查找记录
func (m *Manifest) Get(id string) (Record, bool) {
	if m == nil {
		return Record{}, false
	}
	for _, r := range m.Prompts {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// IDs 返回所有已安装 id（保持顺序）
func (m *Manifest) IDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.Prompts))
	for _, r := range m.Prompts {
		ids = append(ids, r.ID)
	}
	return ids
}

// Upsert 按 id 合并记录：已存在则原位替换，不存在则追加，未涉及的记录保持不变
func (m *Manifest) Upsert(records ...Record) {
	for _, rec := range records {
		replaced := false
		for i := range m.Prompts {
			if m.Prompts[i].ID == rec.ID {
				m.Prompts[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			m.Prompts = append(m.Prompts, rec)
		}
	}
}
