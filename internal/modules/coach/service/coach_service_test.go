package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coachout "wellquest/internal/modules/coach/adapter/out"
	"wellquest/internal/modules/coach/domain"
	"wellquest/internal/modules/coach/service"
	"wellquest/internal/platform/random"
)

type fakeHost struct {
	tip     domain.Tip
	tipErr  error
	calls   int
	healthy bool
}

func (f *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error {
	if !f.healthy {
		return errors.New("handshake failed")
	}
	return nil
}

func (f *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1.0.0"}, nil
}

func (f *fakeHost) GetTip(context.Context, domain.Manifest, string, int) (domain.Tip, error) {
	f.calls++
	if f.tipErr != nil {
		return domain.Tip{}, f.tipErr
	}
	return f.tip, nil
}

func writeManifests(t *testing.T, base string, manifests []domain.Manifest) {
	t.Helper()
	dir := filepath.Join(base, "coaches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir coaches: %v", err)
	}
	raw, err := json.Marshal(manifests)
	if err != nil {
		t.Fatalf("marshal manifests: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "coaches.json"), raw, 0o644); err != nil {
		t.Fatalf("write coaches.json: %v", err)
	}
}

func writeBinary(t *testing.T, base string) (string, string) {
	t.Helper()
	path := filepath.Join(base, "dummy-coach")
	payload := []byte("not-a-real-coach")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write coach binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	bin, _ := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:    "demo",
		Version: "1.0.0",
		Binary:  bin,
		SHA256:  strings.Repeat("0", 64),
		Enabled: true,
	}})

	svc := service.NewCoachService(coachout.NewFileManifestStore(tmp), nil, random.NewSeeded(1), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if !results[0].BinaryReachable {
		t.Fatalf("binary exists, doctor says unreachable")
	}
}

func TestTipPrefersHealthyCoach(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	bin, sum := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:    "demo",
		Version: "1.0.0",
		Binary:  bin,
		SHA256:  sum,
		Enabled: true,
	}})

	host := &fakeHost{healthy: true, tip: domain.Tip{Text: "Breathe.", Author: "demo"}}
	svc := service.NewCoachService(coachout.NewFileManifestStore(tmp), host, random.NewSeeded(1), nil)
	tip, err := svc.Tip(context.Background(), "mental", 2)
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if tip.Source != "demo" || tip.Text != "Breathe." {
		t.Fatalf("tip = %+v, want the coach's answer", tip)
	}
	if host.calls != 1 {
		t.Fatalf("host called %d times, want 1", host.calls)
	}
}

func TestTipFallsBackToBuiltinOnCoachFailure(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	bin, sum := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:    "demo",
		Version: "1.0.0",
		Binary:  bin,
		SHA256:  sum,
		Enabled: true,
	}})

	host := &fakeHost{healthy: true, tipErr: errors.New("coach crashed")}
	svc := service.NewCoachService(coachout.NewFileManifestStore(tmp), host, random.NewSeeded(1), nil)
	tip, err := svc.Tip(context.Background(), "physical", 1)
	if err != nil {
		t.Fatalf("tip must not surface coach failures: %v", err)
	}
	if tip.Source != "builtin" || tip.Text == "" {
		t.Fatalf("tip = %+v, want a builtin fallback", tip)
	}
}

func TestTipSkipsDisabledAndTamperedCoaches(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	bin, _ := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{
		{Name: "off", Version: "1.0.0", Binary: bin, SHA256: strings.Repeat("a", 64), Enabled: false},
		{Name: "tampered", Version: "1.0.0", Binary: bin, SHA256: strings.Repeat("b", 64), Enabled: true},
	})

	host := &fakeHost{healthy: true, tip: domain.Tip{Text: "nope"}}
	svc := service.NewCoachService(coachout.NewFileManifestStore(tmp), host, random.NewSeeded(1), nil)
	tip, err := svc.Tip(context.Background(), "mental", 1)
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if tip.Source != "builtin" {
		t.Fatalf("tip source = %s, want builtin", tip.Source)
	}
	if host.calls != 0 {
		t.Fatalf("disabled or tampered coach was consulted %d times", host.calls)
	}
}

func TestTipWithNoCoachesServesBuiltin(t *testing.T) {
	t.Parallel()
	svc := service.NewCoachService(coachout.NewFileManifestStore(t.TempDir()), nil, random.NewSeeded(1), nil)
	tip, err := svc.Tip(context.Background(), "physical", 1)
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if tip.Source != "builtin" || tip.Text == "" {
		t.Fatalf("tip = %+v, want builtin advice", tip)
	}
}
