package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/ktty.toml", `
[shell]
prompt = "> "
bufferSize = 128

[keyboard]
pollInterval = "5ms"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/ktty.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := GetPath(config, "shell.prompt"); v != "> " {
		t.Errorf("shell.prompt = %v", v)
	}
	if v, _ := GetPath(config, "shell.bufferSize"); v != int64(128) {
		t.Errorf("shell.bufferSize = %v (%T), want 128", v, v)
	}
	if v, _ := GetPath(config, "keyboard.pollInterval"); v != "5ms" {
		t.Errorf("keyboard.pollInterval = %v", v)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/none.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}

	config, err = NewTOMLLoaderWithFS(NewMemFS(), "").Load()
	if err != nil || config != nil {
		t.Errorf("Load() with empty path = %v, %v", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[shell]\nprompt = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line < 1 {
		t.Errorf("Line = %d, want a position", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestTOMLLoader_Includes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/etc/ktty/base.toml", `
[shell]
prompt = "base> "
bufferSize = 64

[logging]
level = "debug"
`)
	memfs.AddFile("/etc/ktty/ktty.toml", `
"@include" = "base.toml"

[shell]
prompt = "$> "
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/etc/ktty/ktty.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, ok := config[includeKey]; ok {
		t.Error("include key should be removed")
	}
	if v, _ := GetPath(config, "shell.prompt"); v != "$> " {
		t.Errorf("shell.prompt = %v, main file should win", v)
	}
	if v, _ := GetPath(config, "shell.bufferSize"); v != int64(64) {
		t.Errorf("shell.bufferSize = %v, want include value", v)
	}
	if v, _ := GetPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v", v)
	}
}

func TestTOMLLoader_IncludeCycle(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = "b.toml"`)
	memfs.AddFile("/b.toml", `"@include" = "a.toml"`)

	_, err := NewTOMLLoaderWithFS(memfs, "/a.toml").Load()
	if err == nil || !strings.Contains(err.Error(), "include depth exceeded") {
		t.Errorf("error = %v, want depth error", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"shell":   map[string]any{"prompt": "a", "screen": int64(1)},
		"display": map[string]any{"screens": int64(2)},
	}
	src := map[string]any{
		"shell":   map[string]any{"prompt": "b"},
		"display": "flat",
	}

	got := DeepMerge(dst, src)
	if v, _ := GetPath(got, "shell.prompt"); v != "b" {
		t.Errorf("shell.prompt = %v", v)
	}
	if v, _ := GetPath(got, "shell.screen"); v != int64(1) {
		t.Errorf("shell.screen = %v", v)
	}
	if got["display"] != "flat" {
		t.Errorf("display = %v, want replaced", got["display"])
	}

	if m := DeepMerge(nil, nil); m == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}
