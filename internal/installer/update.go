package installer

import (
	"fmt"

	"github.com/YangQing-Lin/mg-prompts/internal/config"
	"github.com/YangQing-Lin/mg-prompts/internal/i18n"
	"github.com/YangQing-Lin/mg-prompts/internal/manifest"
	"github.com/YangQing-Lin/mg-prompts/internal/textdiff"
	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

// UpdateResult 更新结果
type UpdateResult struct {
	Target        *config.Target
	NoneInstalled bool
	Candidates    []manifest.Candidate
	Updated       []string
	Skipped       []string // 因本地修改而跳过的 id
}

// Update 将已安装的提示词更新到目录中的版本
func (in *Installer) Update(opts Options) (*UpdateResult, error) {
	target, err := in.resolveTarget(opts)
	if err != nil {
		return nil, err
	}
	result := &UpdateResult{Target: target}

	m, err := manifest.Load(target.ManifestPath)
	if err != nil {
		return nil, err
	}
	if m == nil || len(m.Prompts) == 0 {
		result.NoneInstalled = true
		return result, nil
	}

	entries, err := in.loader.LoadCatalog()
	if err != nil {
		return nil, err
	}

	candidates, err := manifest.CheckUpdates(m, entries, target.InstallDir, in.loader.GetAssetContent)
	if err != nil {
		return nil, err
	}
	result.Candidates = candidates
	in.logger.Debug("update candidates", "count", len(candidates), "manifest", target.ManifestPath)
	if len(candidates) == 0 {
		return result, nil
	}

	if opts.Diff {
		for _, c := range candidates {
			diff := textdiff.Unified(c.Current, c.Content, "installed/"+c.Entry.Path, "catalog/"+c.Entry.Path)
			fmt.Fprintln(in.out, textdiff.Colorize(diff))
		}
	}

	hasModified := false
	for _, c := range candidates {
		if c.Modified {
			hasModified = true
			break
		}
	}
	if hasModified && !opts.Force && !opts.Yes {
		ok, err := in.confirm(i18n.T("update.confirm_continue"), true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCancelled
		}
	}

	release, err := in.acquire(target, opts.NoLock)
	if err != nil {
		return nil, err
	}
	defer release()

	if m, err = reloadManifest(target.ManifestPath, m); err != nil {
		return nil, err
	}

	for _, c := range candidates {
		if !c.Applicable(opts.Force) {
			in.logger.Debug("update skipped", "id", c.Record.ID, "reason", "modified")
			result.Skipped = append(result.Skipped, c.Record.ID)
			continue
		}
		if err := utils.AtomicWriteFile(target.AssetPath(c.Entry.Path), []byte(c.Content), 0644); err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", c.Record.ID, err)
		}
		m.ApplyUpdate(c)
		result.Updated = append(result.Updated, c.Record.ID)
	}

	if len(result.Updated) > 0 {
		if err := manifest.Save(target.ManifestPath, m); err != nil {
			return nil, err
		}
	}
	return result, nil
}
