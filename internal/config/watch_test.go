package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("monitor:\n  severe_stress_threshold: 40\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c })
	}()

	// The watcher may not be registered yet; keep rewriting until a reload lands.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-changes:
			if c.Monitor.SevereStressThreshold != 65 {
				t.Errorf("reloaded threshold = %v, want 65", c.Monitor.SevereStressThreshold)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case <-tick.C:
			_ = os.WriteFile(path, []byte("monitor:\n  severe_stress_threshold: 65\n"), 0o600)
		case <-deadline:
			t.Fatal("no reload observed within 5s")
		}
	}
}

func TestWatch_InvalidReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 1)
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("ingest:\n  on_invalid: explode\n"), 0o600)
	}()

	if err := Watch(ctx, path, func(*Config) { called <- struct{}{} }); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	select {
	case <-called:
		t.Error("onChange called for an invalid config")
	default:
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), func(*Config) {})
	if err == nil {
		t.Fatal("expected error watching a missing file, got nil")
	}
}

// saveAtomically writes content to a sibling temp file and renames it over
// path, the way most editors save.
func saveAtomically(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestWatch_AtomicSaveReloadsEachTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("monitor:\n  severe_stress_threshold: 40\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 64)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c })
	}()

	for _, want := range []float64{50, 60} {
		content := fmt.Sprintf("monitor:\n  severe_stress_threshold: %v\n", want)
		deadline := time.After(5 * time.Second)
		tick := time.NewTicker(50 * time.Millisecond)
	wait:
		for {
			select {
			case c := <-changes:
				if c.Monitor.SevereStressThreshold == want {
					break wait
				}
			case <-tick.C:
				saveAtomically(t, path, content)
			case <-deadline:
				tick.Stop()
				t.Fatalf("no reload with threshold %v after atomic save", want)
			}
		}
		tick.Stop()
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestTriggersReload(t *testing.T) {
	path := filepath.Join("etc", "garage", "config.yaml")
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"rename onto path", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"unclean name", fsnotify.Event{Name: "etc/garage/./config.yaml", Op: fsnotify.Write}, true},
		{"path renamed away", fsnotify.Event{Name: path, Op: fsnotify.Rename}, false},
		{"path removed", fsnotify.Event{Name: path, Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: path + ".tmp", Op: fsnotify.Write}, false},
		{"sibling", fsnotify.Event{Name: filepath.Join("etc", "garage", "other.yaml"), Op: fsnotify.Create}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := triggersReload(tc.ev, path); got != tc.want {
				t.Errorf("triggersReload(%v) = %v, want %v", tc.ev, got, tc.want)
			}
		})
	}
}
