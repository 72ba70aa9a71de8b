package loader

import (
	"errors"
	"io/fs"
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

func TestFileLoader_Formats(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/unitext.toml", `
[native]
narrow = "iso-8859-1"

[log]
level = "debug"
`)
	memfs.AddFile("/unitext.yaml", `
native:
  narrow: iso-8859-1
log:
  level: debug
`)
	memfs.AddFile("/unitext.yml", "native:\n  narrow: iso-8859-1\nlog:\n  level: debug\n")

	for _, path := range []string{"/unitext.toml", "/unitext.yaml", "/unitext.yml"} {
		t.Run(path, func(t *testing.T) {
			config, err := NewFileLoaderWithFS(memfs, path).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			native, ok := config["native"].(map[string]any)
			if !ok || native["narrow"] != "iso-8859-1" {
				t.Errorf("native = %#v", config["native"])
			}
			log, ok := config["log"].(map[string]any)
			if !ok || log["level"] != "debug" {
				t.Errorf("log = %#v", config["log"])
			}
		})
	}
}

func TestFileLoader_Missing(t *testing.T) {
	config, err := NewFileLoaderWithFS(NewMemFS(), "/absent.toml").Load()
	if err != nil || config != nil {
		t.Errorf("missing file: got %v, %v; want nil, nil", config, err)
	}
}

func TestFileLoader_UnsupportedFormat(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/unitext.ini", "narrow=utf-8")

	_, err := NewFileLoaderWithFS(memfs, "/unitext.ini").Load()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFileLoader_ParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		position bool
	}{
		{"toml", "/bad.toml", "[native]\nnarrow = \n", true},
		{"yaml", "/bad.yaml", "native:\n  narrow: [unterminated\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile(tt.path, tt.content)

			_, err := NewFileLoaderWithFS(memfs, tt.path).Load()
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if perr.Path != tt.path {
				t.Errorf("Path = %q, want %q", perr.Path, tt.path)
			}
			if tt.position && perr.Line == 0 {
				t.Error("expected a line number")
			}
			if perr.Unwrap() == nil {
				t.Error("ParseError should wrap the parser error")
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "bad"}, "parse error in a.toml at line 3, column 7: bad"},
		{&ParseError{Path: "a.yaml", Line: 3, Message: "bad"}, "parse error in a.yaml at line 3: bad"},
		{&ParseError{Path: "a.yaml", Message: "bad"}, "parse error in a.yaml: bad"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"native": map[string]any{"narrow": "auto", "wide": "auto"},
		"log":    map[string]any{"level": "warn"},
	}
	src := map[string]any{
		"native": map[string]any{"narrow": "utf-8"},
		"output": map[string]any{"format": "json"},
	}

	got := DeepMerge(dst, src)

	native := got["native"].(map[string]any)
	if native["narrow"] != "utf-8" || native["wide"] != "auto" {
		t.Errorf("native = %#v", native)
	}
	if got["log"].(map[string]any)["level"] != "warn" {
		t.Errorf("log = %#v", got["log"])
	}
	if got["output"].(map[string]any)["format"] != "json" {
		t.Errorf("output = %#v", got["output"])
	}

	if m := DeepMerge(nil, nil); m == nil || len(m) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %#v", m)
	}
}
