package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/focuslist/internal/appdir"
)

func TestMemoryStorage(t *testing.T) {
	m := NewMemory()

	if _, ok, err := m.GetItem("tasks"); err != nil || ok {
		t.Fatalf("GetItem on empty storage: ok=%v err=%v", ok, err)
	}
	if err := m.SetItem("tasks", "[]"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	v, ok, err := m.GetItem("tasks")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("GetItem: got %q ok=%v err=%v", v, ok, err)
	}
	if err := m.RemoveItem("missing"); err != nil {
		t.Errorf("RemoveItem missing key: %v", err)
	}
	if err := m.RemoveItem("tasks"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := m.GetItem("tasks"); ok {
		t.Error("expected key to be removed")
	}
}

func TestFileStoragePersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	f, err := Open(dir, "abc-123")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.SetItem("tasks", `[{"id":1,"text":"a","isDone":false}]`); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := f.SetItem("other", "x"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	if _, err := os.Stat(appdir.SessionFile(dir, "abc-123")); err != nil {
		t.Fatalf("session file not written: %v", err)
	}

	reopened, err := Open(dir, "abc-123")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.GetItem("tasks")
	if err != nil || !ok {
		t.Fatalf("GetItem after reopen: ok=%v err=%v", ok, err)
	}
	if !strings.Contains(v, `"text":"a"`) {
		t.Errorf("unexpected value %q", v)
	}
	keys, err := reopened.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "other" || keys[1] != "tasks" {
		t.Errorf("Keys: got %v", keys)
	}
}

func TestFileStorageClearAndEnd(t *testing.T) {
	dir := t.TempDir()
	f, err := Open(dir, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetItem("tasks", "[]"); err != nil {
		t.Fatal(err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if keys, _ := f.Keys(); len(keys) != 0 {
		t.Errorf("expected no keys after Clear, got %v", keys)
	}

	if err := f.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := os.Stat(f.Path()); !os.IsNotExist(err) {
		t.Errorf("expected session file to be removed, stat err = %v", err)
	}
	if err := f.SetItem("tasks", "[]"); err != ErrClosed {
		t.Errorf("SetItem after End: got %v, want ErrClosed", err)
	}
}

func TestOpenRecoversCorruptFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantItems map[string]string
	}{
		{"not json", "{not json", map[string]string{}},
		{"array value", `{"tasks": [{"id": 1}]}`, map[string]string{}},
		{"mixed values", `{"tasks": 5, "theme": "dark"}`, map[string]string{"theme": "dark"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := appdir.SessionFile(dir, "bad")
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			f, err := Open(dir, "bad")
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			backup, reason := f.Recovered()
			if reason == nil || backup != path+CorruptSuffix {
				t.Errorf("Recovered() = %q, %v", backup, reason)
			}
			data, err := os.ReadFile(backup)
			if err != nil || string(data) != tt.content {
				t.Errorf("backup content = %q, %v", data, err)
			}

			keys, err := f.Keys()
			if err != nil {
				t.Fatalf("Keys() error = %v", err)
			}
			if len(keys) != len(tt.wantItems) {
				t.Errorf("keys = %v, want %v", keys, tt.wantItems)
			}
			for k, want := range tt.wantItems {
				if got, ok, _ := f.GetItem(k); !ok || got != want {
					t.Errorf("GetItem(%q) = %q, %v", k, got, ok)
				}
			}

			if err := f.SetItem("tasks", "[]"); err != nil {
				t.Fatalf("SetItem() error = %v", err)
			}
			again, err := Open(dir, "bad")
			if err != nil {
				t.Fatalf("reopen error = %v", err)
			}
			if _, reason := again.Recovered(); reason != nil {
				t.Errorf("rewritten file still corrupt: %v", reason)
			}
			if v, ok, _ := again.GetItem("tasks"); !ok || v != "[]" {
				t.Errorf("tasks after reopen = %q, %v", v, ok)
			}
		})
	}
}

func TestInspectDoesNotModify(t *testing.T) {
	dir := t.TempDir()
	path := appdir.SessionFile(dir, "bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"tasks": [1], "ok": "yes"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	items, dropped, err := Inspect(dir, "bad")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if items["ok"] != "yes" || len(dropped) != 1 || dropped[0] != "tasks" {
		t.Errorf("Inspect() = %v, %v", items, dropped)
	}
	if data, _ := os.ReadFile(path); string(data) != content {
		t.Error("Inspect changed the file")
	}

	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Inspect(dir, "bad"); err == nil {
		t.Error("expected parse error")
	}
	if items, _, err := Inspect(dir, "missing"); err != nil || len(items) != 0 {
		t.Errorf("Inspect(missing) = %v, %v", items, err)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"shell-1234", false},
		{NewID(), false},
		{"", true},
		{"../escape", true},
		{".hidden", true},
		{"has space", true},
		{strings.Repeat("a", 200), true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestResolveID(t *testing.T) {
	if got := ResolveID("  mine "); got != "mine" {
		t.Errorf("ResolveID explicit: got %q", got)
	}
	if got := ResolveID(""); !strings.HasPrefix(got, "shell-") {
		t.Errorf("ResolveID derived: got %q", got)
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"old", "fresh", "current"} {
		f, err := Open(dir, id)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetItem("tasks", "[]"); err != nil {
			t.Fatal(err)
		}
	}
	now := time.Now()
	stale := now.Add(-48 * time.Hour)
	for _, id := range []string{"old", "current"} {
		if err := os.Chtimes(appdir.SessionFile(dir, id), stale, stale); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := Prune(dir, 24*time.Hour, "current", now)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if len(removed) != 1 || removed[0] != "old" {
		t.Fatalf("removed: got %v, want [old]", removed)
	}

	sessions, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("List: got %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != "fresh" {
		t.Errorf("expected most recent session first, got %s", sessions[0].ID)
	}

	if removed, _ := Prune(dir, 0, "", now); removed != nil {
		t.Errorf("ttl 0 should disable pruning, removed %v", removed)
	}
}
