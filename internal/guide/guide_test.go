package guide

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "both tokens",
			template: "<p>{{AUTH_CHOICE}} - {{MISSING_REASON}}</p>",
			want:     "<p>oauth - No key</p>",
		},
		{
			name:     "repeated tokens",
			template: "{{AUTH_CHOICE}}{{AUTH_CHOICE}} {{MISSING_REASON}}/{{MISSING_REASON}}",
			want:     "oauthoauth No key/No key",
		},
		{
			name:     "no tokens",
			template: "<html><body>{{OTHER}} {AUTH_CHOICE}</body></html>",
			want:     "<html><body>{{OTHER}} {AUTH_CHOICE}</body></html>",
		},
		{
			name:     "empty",
			template: "",
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, "oauth", "No key")
			if got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderAppliesAuthChoiceFirst(t *testing.T) {
	got := Render("{{AUTH_CHOICE}}", MissingReasonToken, "why")
	if got != "why" {
		t.Errorf("Render = %q, want %q", got, "why")
	}
}

func TestFallback(t *testing.T) {
	want := "<!doctype html><html><body><h1>Setup required</h1><p>Provider key missing</p></body></html>"
	if got := Fallback("Provider key missing"); got != want {
		t.Errorf("Fallback = %q, want %q", got, want)
	}
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFileLoader(t *testing.T) {
	ctx := context.Background()
	path := writeTemplate(t, "<p>{{AUTH_CHOICE}}</p>")

	got, err := FileLoader{Path: path}.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "<p>{{AUTH_CHOICE}}</p>" {
		t.Errorf("Load = %q", got)
	}

	// Reads are never cached.
	if err := os.WriteFile(path, []byte("updated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err = FileLoader{Path: path}.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "updated" {
		t.Errorf("Load after update = %q, want %q", got, "updated")
	}
}

func TestFileLoaderErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if _, err := (FileLoader{Path: filepath.Join(dir, "missing.html")}).Load(ctx); err == nil {
		t.Error("Load of missing file succeeded")
	}
	if _, err := (FileLoader{Path: dir}).Load(ctx); err == nil {
		t.Error("Load of directory succeeded")
	}

	bad := writeTemplate(t, "\xff\xfe<p>")
	_, err := FileLoader{Path: bad}.Load(ctx)
	if err == nil || !strings.Contains(err.Error(), ErrNotUTF8.Error()) {
		t.Errorf("Load of invalid UTF-8 = %v, want %v", err, ErrNotUTF8)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := (FileLoader{Path: bad}).Load(cancelled); err == nil {
		t.Error("Load with cancelled context succeeded")
	}
}

func TestCachedLoader(t *testing.T) {
	ctx := context.Background()
	path := writeTemplate(t, "v1")

	now := time.Unix(1000, 0)
	c := NewCachedLoader(FileLoader{Path: path}, time.Minute)
	c.now = func() time.Time { return now }

	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	var got []string
	load := func() {
		t.Helper()
		s, err := c.Load(ctx)
		if err != nil {
			got = append(got, "err")
			return
		}
		got = append(got, s)
	}

	load()
	write("v2")
	now = now.Add(30 * time.Second)
	load() // still fresh
	now = now.Add(31 * time.Second)
	load() // expired, re-read
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	load() // fresh copy survives removal
	now = now.Add(2 * time.Minute)
	load() // expired and unreadable
	write("v3")
	load() // nothing cached after the failure

	want := []string{"v1", "v1", "v2", "v2", "err", "v3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CachedLoader sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLoader(t *testing.T) {
	if _, ok := NewLoader("/x", 0).(FileLoader); !ok {
		t.Error("NewLoader with zero ttl should return a FileLoader")
	}
	if _, ok := NewLoader("/x", time.Second).(*CachedLoader); !ok {
		t.Error("NewLoader with positive ttl should return a *CachedLoader")
	}
}
