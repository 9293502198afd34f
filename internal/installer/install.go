package installer

import (
	"fmt"
	"os"

	"github.com/YangQing-Lin/mg-prompts/internal/backup"
	"github.com/YangQing-Lin/mg-prompts/internal/catalog"
	"github.com/YangQing-Lin/mg-prompts/internal/claudemd"
	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/manifest"
	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

// ClaudeStatus CLAUDE.md 的处理结果
type ClaudeStatus int

const (
	ClaudeNotApplicable ClaudeStatus = iota // 全局安装
	ClaudeUpdated
	ClaudeUnchanged
	ClaudeDeclined
)

// InstallResult 安装结果
type InstallResult struct {
	Target    *config.Target
	Selected  []string
	Installed []string
	Skipped   []string // --yes 时已存在而未覆盖的文件
	Adopted   []string // 跳过但补记到清单的 id
	Claude    ClaudeStatus
	BackupID  string
}

// Install 执行安装流程
func (in *Installer) Install(opts Options) (*InstallResult, error) {
	in.transition("install", StateResolvingRoot)
	target, err := in.resolveTarget(opts)
	if err != nil {
		return nil, err
	}
	result := &InstallResult{Target: target}

	in.transition("install", StateLoadingCatalog, "root", in.loader.Root())
	entries, err := in.loader.LoadCatalog()
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(target.ManifestPath)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = manifest.New()
	}

	in.transition("install", StateSelectingAssets, "available", len(entries))
	selected, err := in.selectAssets(entries, m, opts.Yes)
	if err != nil {
		return nil, err
	}
	for _, e := range selected {
		result.Selected = append(result.Selected, e.ID)
	}

	in.transition("install", StateDetectingConflicts)
	var conflicts []catalog.Entry
	if !opts.Force {
		for _, e := range selected {
			if utils.FileExists(target.AssetPath(e.Path)) {
				conflicts = append(conflicts, e)
			}
		}
	}

	copySet := selected
	var skipped []catalog.Entry
	if len(conflicts) > 0 {
		fmt.Fprintln(in.out, i18n.T("init.conflicts"))
		for _, e := range conflicts {
			fmt.Fprintf(in.out, "  - %s\n", target.AssetPath(e.Path))
		}

		if opts.Yes {
			copySet, skipped = partition(selected, conflicts)
		} else {
			ok, err := in.confirm(i18n.T("init.confirm_overwrite"), false)
			if err != nil {
				return nil, err
			}
			if !ok {
				in.transition("install", StateCancelled)
				return nil, ErrCancelled
			}
		}
	}

	contents := make(map[string]string, len(selected))
	for _, e := range selected {
		content, err := in.loader.GetAssetContent(e.Path)
		if err != nil {
			return nil, err
		}
		contents[e.ID] = content
	}

	release, err := in.acquire(target, opts.NoLock)
	if err != nil {
		return nil, err
	}
	defer release()

	// 拿到锁之后重新读取清单，合并到最新状态上
	if m, err = reloadManifest(target.ManifestPath, m); err != nil {
		return nil, err
	}

	in.transition("install", StateCopyingFiles, "count", len(copySet), "dir", target.InstallDir)
	for _, e := range copySet {
		dest := target.AssetPath(e.Path)
		if err := utils.AtomicWriteFile(dest, []byte(contents[e.ID]), 0644); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", e.ID, err)
		}
		result.Installed = append(result.Installed, e.ID)
	}

	in.transition("install", StateUpdatingManifest)
	now := in.now().UTC()
	var records []manifest.Record
	for _, e := range copySet {
		records = append(records, manifest.Record{
			ID:          e.ID,
			Version:     e.Version,
			InstalledAt: now,
			Checksum:    manifest.Checksum(contents[e.ID]),
		})
	}
	for _, e := range skipped {
		result.Skipped = append(result.Skipped, target.AssetPath(e.Path))
		if _, ok := m.Get(e.ID); ok {
			continue
		}
		modified, err := manifest.IsLocallyModified(target.AssetPath(e.Path), contents[e.ID])
		if err != nil {
			return nil, err
		}
		records = append(records, manifest.Record{
			ID:          e.ID,
			Version:     e.Version,
			InstalledAt: now,
			Modified:    modified,
			Checksum:    manifest.Checksum(contents[e.ID]),
		})
		result.Adopted = append(result.Adopted, e.ID)
	}
	if len(records) > 0 {
		m.Upsert(records...)
		if err := manifest.Save(target.ManifestPath, m); err != nil {
			return nil, err
		}
	}

	if target.Global {
		result.Claude = ClaudeNotApplicable
	} else {
		in.transition("install", StatePatchingDocument, "path", target.ClaudeMdPath)
		if err := in.patchClaudeMd(target, selected, opts.Yes, result); err != nil {
			return nil, err
		}
	}

	in.transition("install", StateDone, "installed", len(result.Installed), "skipped", len(result.Skipped))
	return result, nil
}

// selectAssets 返回按选择顺序排列的目录条目
func (in *Installer) selectAssets(entries []catalog.Entry, m *manifest.Manifest, yes bool) ([]catalog.Entry, error) {
	var ids []string
	if yes {
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
	} else {
		if in.prompter == nil {
			return nil, ErrNoPrompter
		}
		var err error
		ids, err = in.prompter.SelectAssets(entries, m.IDs())
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(ids))
	var selected []catalog.Entry
	for _, id := range ids {
		e, ok := catalog.Find(entries, id)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		selected = append(selected, e)
	}

	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	return selected, nil
}

// partition 从 selected 中拆出冲突项，保持原顺序
func partition(selected, conflicts []catalog.Entry) (keep, drop []catalog.Entry) {
	conflict := make(map[string]bool, len(conflicts))
	for _, e := range conflicts {
		conflict[e.ID] = true
	}
	for _, e := range selected {
		if conflict[e.ID] {
			drop = append(drop, e)
		} else {
			keep = append(keep, e)
		}
	}
	return keep, drop
}

// patchClaudeMd 用本次选择且存在于磁盘的资源重写 ## About You 章节
func (in *Installer) patchClaudeMd(target *config.Target, selected []catalog.Entry, yes bool, result *InstallResult) error {
	var refs []string
	for _, e := range selected {
		if utils.FileExists(target.AssetPath(e.Path)) {
			refs = append(refs, target.ReferencePath(e.Path))
		}
	}
	lines := claudemd.ReferenceLines(refs)

	current, err := os.ReadFile(target.ClaudeMdPath)
	switch {
	case err == nil:
		if claudemd.UpsertSection(string(current), claudemd.AboutYouHeader, lines) == string(current) {
			result.Claude = ClaudeUnchanged
			return nil
		}
		id, err := backup.CreateBackup(target.ClaudeMdPath, backup.Dir(target.Root))
		if err != nil {
			return err
		}
		result.BackupID = id
	case os.IsNotExist(err):
		if !yes {
			ok, err := in.confirm(i18n.T("init.confirm_create_claude"), true)
			if err != nil {
				return err
			}
			if !ok {
				result.Claude = ClaudeDeclined
				return nil
			}
		}
	default:
		return fmt.Errorf("failed to read %s: %w", target.ClaudeMdPath, err)
	}

	changed, err := claudemd.UpdateFile(target.ClaudeMdPath, claudemd.AboutYouHeader, lines)
	if err != nil {
		return err
	}
	if changed {
		result.Claude = ClaudeUpdated
	} else {
		result.Claude = ClaudeUnchanged
	}
	return nil
}
