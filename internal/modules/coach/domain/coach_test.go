package domain_test

import (
	"testing"

	"wellquest/internal/modules/coach/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "c", Version: "1", Binary: "/tmp/c", SHA256: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Enabled: true}, shouldErr: false},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/c", SHA256: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "c", Binary: "/tmp/c", SHA256: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "c", Version: "1", SHA256: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, shouldErr: true},
		{name: "missing sha", manifest: domain.Manifest{Name: "c", Version: "1", Binary: "/tmp/c"}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "c", Version: "1", Binary: "/tmp/c", SHA256: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestBuiltinTipsCoverBothTracks(t *testing.T) {
	t.Parallel()
	for _, track := range []string{"physical", "mental", ""} {
		tips := domain.BuiltinTips(track)
		if len(tips) == 0 {
			t.Fatalf("no builtin tips for track %q", track)
		}
		for _, tip := range tips {
			if err := tip.Validate(); err != nil {
				t.Fatalf("builtin tip invalid for track %q: %v", track, err)
			}
		}
	}
}
