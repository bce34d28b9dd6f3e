package assets

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/conn-castle/multi-agent-kit/internal/catalog"
)

func TestBundleCoversCatalog(t *testing.T) {
	fsys := FS()
	for _, entry := range catalog.Entries() {
		if entry.Kind == catalog.KindGuardedDir {
			continue
		}
		info, err := fs.Stat(fsys, entry.Source)
		if err != nil {
			t.Fatalf("bundled asset %s missing: %v", entry.Source, err)
		}
		wantDir := entry.Kind == catalog.KindTree
		if info.IsDir() != wantDir {
			t.Fatalf("bundled asset %s: dir=%v, want %v", entry.Source, info.IsDir(), wantDir)
		}
	}
}

func TestBundledScriptsHaveShebang(t *testing.T) {
	err := fs.WalkDir(FS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sh") {
			return nil
		}
		data, err := fs.ReadFile(FS(), path)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(string(data), "#!") {
			t.Errorf("script %s has no shebang", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

func TestBundledEnvrcHasNoMarkers(t *testing.T) {
	data, err := fs.ReadFile(FS(), ".envrc")
	if err != nil {
		t.Fatalf("read .envrc: %v", err)
	}
	if strings.Contains(string(data), "Multi-Agent Workflow Kit ===") {
		t.Fatal("bundled .envrc fragment must not carry region markers")
	}
}
