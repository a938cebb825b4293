package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sergeych/lyng/internal/config"
)

func TestDefaultEnablesEverythingAtPolySizeTwo(t *testing.T) {
	f := config.Default()
	if !f.ScopePool || !f.ArgBuilder || !f.LocalSlotPIC || !f.FieldPIC || !f.MethodPIC ||
		!f.PrimitiveFastops || !f.RegexCache || !f.RangeFastIter {
		t.Fatalf("Default() must enable every flag, got %+v", f)
	}
	if f.PolyCacheSize != 2 {
		t.Fatalf("Default() PolyCacheSize = %d, want 2", f.PolyCacheSize)
	}
}

func TestLoadLayersPartialDocumentOverDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.yaml")
	if err := os.WriteFile(path, []byte("field_pic: false\npoly_cache_size: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.FieldPIC {
		t.Fatalf("field_pic: false should have overridden the default")
	}
	if f.PolyCacheSize != 4 {
		t.Fatalf("poly_cache_size should be 4, got %d", f.PolyCacheSize)
	}
	if !f.MethodPIC || !f.ScopePool {
		t.Fatalf("flags absent from the document should keep their default value, got %+v", f)
	}
}

func TestLoadMissingFileReturnsDefaultAndError(t *testing.T) {
	f, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if f != config.Default() {
		t.Fatalf("a failed Load should still return Default(), got %+v", f)
	}
}
