package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
)

//go:embed prompts
var builtinCatalogFS embed.FS

// Loader 从目录根（fs.FS）加载提示词目录
type Loader struct {
	fsys   fs.FS
	root   string // 仅用于日志和错误信息
	logger *slog.Logger
}

// NewLoader 基于任意 fs.FS 创建加载器
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root, logger: slog.Default()}
}

// NewDirLoader 从磁盘目录加载
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), dir)
}

// NewBuiltinLoader 使用编译进二进制的内置目录
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinCatalogFS, "prompts")
	if err != nil {
		// prompts 目录由 go:embed 保证存在
		panic(err)
	}
	return NewLoader(sub, "<builtin>")
}

// WithLogger 指定警告输出的 logger
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Root 目录根描述
func (l *Loader) Root() string {
	return l.root
}

// LoadIndex 读取并解析索引文件，缺失或损坏都是致命错误
func (l *Loader) LoadIndex() (*Index, error) {
	data, err := fs.ReadFile(l.fsys, IndexFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path.Join(l.root, IndexFileName))
		}
		return nil, &IndexError{Path: path.Join(l.root, IndexFileName), Err: err}
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, &IndexError{Path: path.Join(l.root, IndexFileName), Err: err}
	}
	if index.Prompts == nil {
		return nil, &IndexError{Path: path.Join(l.root, IndexFileName), Err: errors.New(`missing "prompts" array`)}
	}

	return &index, nil
}

// LoadCatalog 加载完整目录；单个资源失败只记录警告并跳过，顺序与索引一致
func (l *Loader) LoadCatalog() ([]Entry, error) {
	index, err := l.LoadIndex()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(index.Prompts))
	seen := make(map[string]bool, len(index.Prompts))
	for _, desc := range index.Prompts {
		entry, err := l.loadEntry(desc, seen)
		if err != nil {
			l.logger.Warn("catalog entry skipped", "id", desc.ID, "path", desc.Path, "error", err)
			continue
		}
		seen[desc.ID] = true
		entries = append(entries, entry)
	}

	return entries, nil
}

func (l *Loader) loadEntry(desc Descriptor, seen map[string]bool) (Entry, error) {
	wrap := func(err error) error {
		return &AssetError{ID: desc.ID, Path: desc.Path, Err: err}
	}

	if strings.TrimSpace(desc.ID) == "" {
		return Entry{}, wrap(errors.New("empty id"))
	}
	if seen[desc.ID] {
		return Entry{}, wrap(errors.New("duplicate id"))
	}

	content, err := l.GetAssetContent(desc.Path)
	if err != nil {
		return Entry{}, wrap(err)
	}

	meta, _, err := ParseFrontMatter(content)
	if err != nil {
		return Entry{}, wrap(err)
	}

	return Entry{
		Descriptor: desc,
		Metadata:   meta,
		Size:       int64(len(content)),
	}, nil
}

// GetAssetContent 按相对路径返回原始内容（逐字节，不做任何修整）
func (l *Loader) GetAssetContent(relPath string) (string, error) {
	name := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	if relPath == "" || !fs.ValidPath(name) {
		return "", fmt.Errorf("invalid asset path %q: %w", relPath, fs.ErrInvalid)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %w", ErrAssetNotFound, relPath, err)
		}
		return "", fmt.Errorf("failed to read asset %s: %w", relPath, err)
	}

	return string(data), nil
}
