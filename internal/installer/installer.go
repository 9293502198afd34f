package installer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/lock"
	"github.com/YangQing-Lin/mg-prompts/internal/manifest"
)

var (
	// ErrCancelled 用户在写入前取消操作
	ErrCancelled = errors.New("operation cancelled")
	// ErrNoSelection 没有选择任何提示词
	ErrNoSelection = errors.New("no prompts selected")
	// ErrNoPrompter 需要交互但没有可用的交互器
	ErrNoPrompter = errors.New("interactive prompt unavailable, use --yes")
)

// Prompter 交互接口：多选和是/否确认
type Prompter interface {
	SelectAssets(entries []catalog.Entry, preselected []string) ([]string, error)
	Confirm(message string, defaultYes bool) (bool, error)
}

// LockedError 目标被另一个进程锁定
type LockedError struct {
	Path string
	PID  int // 0 表示未知
}

func (e *LockedError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("another mg-prompts process (pid %d) holds %s", e.PID, e.Path)
	}
	return fmt.Sprintf("another mg-prompts process holds %s", e.Path)
}

// Options install/update 的命令行选项
type Options struct {
	StartDir string // 空表示当前目录
	Path     string
	Global   bool
	Force    bool
	Yes      bool
	NoLock   bool
	Diff     bool
}

// State 安装流程状态
type State string

const (
	StateResolvingRoot      State = "resolving-root"
	StateLoadingCatalog     State = "loading-catalog"
	StateSelectingAssets    State = "selecting-assets"
	StateDetectingConflicts State = "detecting-conflicts"
	StateCancelled          State = "cancelled"
	StateCopyingFiles       State = "copying-files"
	StateUpdatingManifest   State = "updating-manifest"
	StatePatchingDocument   State = "patching-document"
	StateDone               State = "done"
)

// Installer 协调目录、清单与 CLAUDE.md 的安装和更新
type Installer struct {
	loader   *catalog.Loader
	prompter Prompter
	project  *config.ProjectConfig
	logger   *slog.Logger
	out      io.Writer
	now      func() time.Time
}

// New 创建安装器；prompter 为 nil 时只能以 --yes 运行
func New(loader *catalog.Loader, prompter Prompter) *Installer {
	return &Installer{
		loader:   loader,
		prompter: prompter,
		logger:   slog.Default(),
		out:      io.Discard,
		now:      time.Now,
	}
}

// WithLogger 指定日志输出
func (in *Installer) WithLogger(logger *slog.Logger) *Installer {
	if logger != nil {
		in.logger = logger
	}
	return in
}

// WithOutput 指定冲突列表和差异的输出位置
func (in *Installer) WithOutput(w io.Writer) *Installer {
	if w != nil {
		in.out = w
	}
	return in
}

// WithProject 指定项目配置（.mg-prompts.toml）
func (in *Installer) WithProject(cfg *config.ProjectConfig) *Installer {
	in.project = cfg
	return in
}

// WithClock 替换时间源
func (in *Installer) WithClock(now func() time.Time) *Installer {
	if now != nil {
		in.now = now
	}
	return in
}

func (in *Installer) transition(op string, state State, args ...any) {
	in.logger.Debug(op+" state", append([]any{"state", string(state)}, args...)...)
}

func (in *Installer) resolveTarget(opts Options) (*config.Target, error) {
	return config.ResolveTarget(config.TargetOptions{
		StartDir: opts.StartDir,
		Path:     opts.Path,
		Global:   opts.Global,
		Project:  in.project,
	})
}

func (in *Installer) confirm(message string, defaultYes bool) (bool, error) {
	if in.prompter == nil {
		return false, ErrNoPrompter
	}
	return in.prompter.Confirm(message, defaultYes)
}

// acquire 锁定目标的 .ai 目录；noLock 时返回空操作
func (in *Installer) acquire(target *config.Target, noLock bool) (func(), error) {
	if noLock {
		return func() {}, nil
	}

	lk := lock.NewLock(filepath.Dir(target.ManifestPath))
	ok, err := lk.TryAcquire()
	if err != nil {
		return nil, err
	}
	if !ok {
		pid, _ := lk.GetPID()
		return nil, &LockedError{Path: lk.Path(), PID: pid}
	}

	return func() {
		if err := lk.Release(); err != nil {
			in.logger.Warn("failed to release lock", "path", lk.Path(), "error", err)
		}
	}, nil
}

// reloadManifest 重新读取清单；文件已不存在时沿用 current
func reloadManifest(path string, current *manifest.Manifest) (*manifest.Manifest, error) {
	fresh, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return current, nil
	}
	return fresh, nil
}
