package lock

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestTryAcquireAndRelease(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), ".ai")

	lock := NewLock(tmpDir)
	acquired, err := lock.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire a fresh lock")
	}

	pid, err := lock.GetPID()
	if err != nil {
		t.Fatalf("GetPID() error = %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("GetPID() = %d, want %d", pid, os.Getpid())
	}

	again, err := lock.TryAcquire()
	if err != nil || !again {
		t.Fatalf("re-acquire by the holder should succeed: %v %v", again, err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed after release")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("second Release() error = %v", err)
	}
}

func TestTryAcquireContended(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("flock semantics differ on windows")
	}
	tmpDir := t.TempDir()

	first := NewLock(tmpDir)
	if ok, err := first.TryAcquire(); err != nil || !ok {
		t.Fatalf("first TryAcquire() = %v, %v", ok, err)
	}
	t.Cleanup(func() { _ = first.Release() })

	second := NewLock(tmpDir)
	ok, err := second.TryAcquire()
	if err != nil {
		t.Fatalf("second TryAcquire() error = %v", err)
	}
	if ok {
		t.Fatal("second lock must not be acquired while the first is held")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	ok, err = second.TryAcquire()
	if err != nil || !ok {
		t.Fatalf("lock should be free after release: %v %v", ok, err)
	}
	_ = second.Release()
}

func TestReleaseUnlocksBeforeRemoving(t *testing.T) {
	tmpDir := t.TempDir()

	lock := NewLock(tmpDir)
	if ok, err := lock.TryAcquire(); err != nil || !ok {
		t.Fatalf("TryAcquire() = %v, %v", ok, err)
	}

	// 锁文件被外部删除时仍然要解锁
	if err := os.Remove(lock.Path()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if lock.fl.Locked() {
		t.Error("flock still held after Release")
	}
	if lock.acquired {
		t.Error("acquired should be reset")
	}

	next := NewLock(tmpDir)
	if ok, err := next.TryAcquire(); err != nil || !ok {
		t.Fatalf("lock should be free after release: %v %v", ok, err)
	}
	if err := next.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(next.Path()); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed after release")
	}
}

func TestGetPIDInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	lock := NewLock(tmpDir)

	if _, err := lock.GetPID(); err == nil {
		t.Error("expected error when lock file is missing")
	}
	if err := os.WriteFile(lock.Path(), []byte("abc"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := lock.GetPID(); err == nil {
		t.Error("expected error for invalid pid")
	}
}
