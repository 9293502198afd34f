package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/YangQing-Lin/mg-prompts/internal/utils"
)

const (
	// MaxBackups is the number of backups kept per file
	MaxBackups = 5
	// BackupDirName is the name of the backup directory under .ai
	BackupDirName = "backups"
	// backupExt marks backup files
	backupExt = ".bak"
	// timestampLayout sorts lexically in creation order
	timestampLayout = "20060102_150405.000"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	ID        string
	Path      string
	Timestamp time.Time
	Size      int64
}

// Dir returns the backup directory for a project root
func Dir(root string) string {
	return filepath.Join(root, ".ai", BackupDirName)
}

// CreateBackup copies srcPath into backupDir as <name>.<timestamp>.bak
// Returns the backup ID (timestamp portion) or empty string if source doesn't exist
func CreateBackup(srcPath, backupDir string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", srcPath, err)
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupID := time.Now().UTC().Format(timestampLayout)
	name := filepath.Base(srcPath)
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s.%s%s", name, backupID, backupExt))

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	if err := CleanupOldBackups(backupDir, name, MaxBackups); err != nil {
		return backupID, err
	}

	return backupID, nil
}

// ListBackups returns backups of the named file, newest first
func ListBackups(backupDir, name string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	prefix := name + "."
	var backups []BackupInfo
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(fileName, prefix) || !strings.HasSuffix(fileName, backupExt) {
			continue
		}

		id := strings.TrimSuffix(strings.TrimPrefix(fileName, prefix), backupExt)
		ts, err := time.Parse(timestampLayout, id)
		if err != nil {
			continue
		}

		fullPath := filepath.Join(backupDir, fileName)
		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			ID:        id,
			Path:      fullPath,
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ID > backups[j].ID
	})

	return backups, nil
}

// CleanupOldBackups keeps only the most recent retain backups of name
func CleanupOldBackups(backupDir, name string, retain int) error {
	if retain <= 0 {
		return nil
	}

	backups, err := ListBackups(backupDir, name)
	if err != nil {
		return err
	}

	for _, b := range backups[min(retain, len(backups)):] {
		if err := os.Remove(b.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete old backup %s: %w", b.Path, err)
		}
	}

	return nil
}

// FindBackup resolves a backup by ID; an empty ID selects the newest one
func FindBackup(backupDir, name, id string) (BackupInfo, error) {
	backups, err := ListBackups(backupDir, name)
	if err != nil {
		return BackupInfo{}, err
	}
	if len(backups) == 0 {
		return BackupInfo{}, fmt.Errorf("no backups of %s found in %s", name, backupDir)
	}
	if id == "" {
		return backups[0], nil
	}
	for _, b := range backups {
		if b.ID == id {
			return b, nil
		}
	}
	return BackupInfo{}, fmt.Errorf("backup %s not found", id)
}

// RestoreBackup writes the backup content back to targetPath,
// backing up the current file first
func RestoreBackup(targetPath, backupPath string) (string, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to read backup file: %w", err)
	}

	currentID, err := CreateBackup(targetPath, filepath.Dir(backupPath))
	if err != nil {
		return "", fmt.Errorf("failed to backup current file: %w", err)
	}

	if err := utils.AtomicWriteFile(targetPath, data, 0644); err != nil {
		return currentID, fmt.Errorf("failed to restore %s: %w", targetPath, err)
	}

	return currentID, nil
}
