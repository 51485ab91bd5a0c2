package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	t.Setenv(HomeEnv, "")
	home, _ := os.UserHomeDir()
	got := Dir("main")
	want := filepath.Join(home, ".mockchat", "sessions", "main")
	if got != want {
		t.Errorf("Dir(main) = %q, want %q", got, want)
	}
}

func TestHomeOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(HomeEnv, tmpDir)

	if got := ConfigPath(); got != filepath.Join(tmpDir, "config.toml") {
		t.Errorf("ConfigPath() = %q", got)
	}
	if got := LogPath("work"); got != filepath.Join(tmpDir, "sessions", "work", "logs", "mockchat.log") {
		t.Errorf("LogPath(work) = %q", got)
	}
}

func TestLockPath(t *testing.T) {
	got := LockPath("test")
	if !strings.HasSuffix(got, filepath.Join("sessions", "test", "LOCK")) {
		t.Errorf("LockPath(test) = %q, want suffix sessions/test/LOCK", got)
	}
}

func TestEnsureDir(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	if err := EnsureDir("test"); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	for _, d := range []string{Dir("test"), LogDir("test"), MediaDir("test")} {
		info, err := os.Stat(d)
		if err != nil {
			t.Fatalf("%s not created: %v", d, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", d)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("%s permission = %o, want 0700", d, perm)
		}
	}
}
