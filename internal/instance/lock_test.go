// internal/instance/lock_test.go
package instance

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

func TestAcquire_CreatesAndReleases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "callerid.lock")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire err=%v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if string(b) != strconv.Itoa(os.Getpid())+"\n" {
		t.Fatalf("lock content=%q", b)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release err=%v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("lock file not removed")
	}
}

func TestAcquire_LiveHolderRefused(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("no sleep binary")
	}
	cmd := exec.Command(sleep, "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start helper process: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	path := filepath.Join(t.TempDir(), "callerid.lock")
	if err := os.WriteFile(path, []byte(strconv.Itoa(cmd.Process.Pid)), 0o644); err != nil {
		t.Fatalf("write lock: %v", err)
	}

	if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestAcquire_StaleLockReclaimed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "callerid.lock")
	if err := os.WriteFile(path, []byte("not-a-pid"), 0o644); err != nil {
		t.Fatalf("write lock: %v", err)
	}

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("expected stale lock reclaimed, got %v", err)
	}
	defer l.Release()

	if pid, ok := readPID(path); !ok || pid != os.Getpid() {
		t.Fatalf("lock not rewritten with our pid: %d %v", pid, ok)
	}
}

func TestRelease_Nil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil Release err=%v", err)
	}
}
