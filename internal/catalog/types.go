package catalog

import (
	"errors"
	"fmt"
)

// IndexFileName 目录索引文件名
const IndexFileName = "prompts.json"

var (
	// ErrIndexNotFound 目录索引文件不存在
	ErrIndexNotFound = errors.New("catalog index not found")
	// ErrAssetNotFound 资源文件不存在
	ErrAssetNotFound = errors.New("prompt asset not found")
	// ErrNoFrontMatter 内容缺少 --- 开头的元数据块
	ErrNoFrontMatter = errors.New("missing front matter delimiter")
	// ErrUnterminatedFrontMatter 元数据块没有结束分隔符
	ErrUnterminatedFrontMatter = errors.New("unterminated front matter")
)

// Descriptor 索引中的资源描述（id + 相对路径）
type Descriptor struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Index 目录索引文件格式（prompts.json）
type Index struct {
	Prompts []Descriptor `json:"prompts"`
}

// Metadata 资源头部元数据
type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"`
	Tags        []string `yaml:"tags"`
}

// Entry 目录条目：描述 + 元数据
type Entry struct {
	Descriptor
	Metadata
	Size int64 // 原始内容字节数
}

// IndexError 索引文件无法解析
type IndexError struct {
	Path string
	Err  error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid catalog index %s: %v", e.Path, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// AssetError 单个资源加载失败（非致命）
type AssetError struct {
	ID   string
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("skipping prompt %q (%s): %v", e.ID, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// MissingFieldError 元数据缺少必填字段
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("front matter missing required field %q", e.Field)
}

// Find 按 id 查找条目
func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
