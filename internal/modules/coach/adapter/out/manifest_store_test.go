package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	coachout "wellquest/internal/modules/coach/adapter/out"
)

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := coachout.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	coachesDir := filepath.Join(base, "coaches")
	if err := os.MkdirAll(coachesDir, 0o755); err != nil {
		t.Fatalf("mkdir coaches: %v", err)
	}
	raw := `[
  {
    "name": "reference",
    "version": "1.0.0",
    "binary": "coaches/reference/reference-coach",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true
  }
]`
	if err := os.WriteFile(filepath.Join(coachesDir, "coaches.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write coaches.json: %v", err)
	}
	store := coachout.NewFileManifestStore(base)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	if !filepath.IsAbs(manifests[0].Binary) {
		t.Fatalf("expected absolute binary path, got %s", manifests[0].Binary)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	coachesDir := filepath.Join(base, "coaches")
	if err := os.MkdirAll(coachesDir, 0o755); err != nil {
		t.Fatalf("mkdir coaches: %v", err)
	}
	raw := `[
  {
    "name": "reference",
    "version": "1.0.0",
    "binary": "/tmp/reference-coach",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "unknown_field": true
  }
]`
	if err := os.WriteFile(filepath.Join(coachesDir, "coaches.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write coaches.json: %v", err)
	}
	store := coachout.NewFileManifestStore(base)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
