package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"wellquest/internal/modules/coach/domain"
	"wellquest/internal/modules/coach/dto"
	coachout "wellquest/internal/modules/coach/port/out"
	"wellquest/internal/platform/random"
)

// CoachService fronts the installed coach plugins. Every plugin failure
// degrades to the builtin tips; advice is never load-bearing.
type CoachService struct {
	store  coachout.ManifestStore
	host   coachout.Host
	rng    random.Source
	logger hclog.Logger
}

func NewCoachService(store coachout.ManifestStore, host coachout.Host, rng random.Source, logger hclog.Logger) *CoachService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CoachService{store: store, host: host, rng: rng, logger: logger}
}

func (s *CoachService) List(ctx context.Context) ([]dto.CoachInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CoachInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.CoachInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *CoachService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Tip asks the installed coaches in manifest order; the first healthy answer
// wins. With no coaches, or only failing ones, a builtin tip is served.
func (s *CoachService) Tip(ctx context.Context, track string, level int) (dto.TipOutput, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		s.logger.Warn("coach manifests unreadable, serving builtin tip", "error", err)
		return s.builtin(track), nil
	}
	for _, m := range manifests {
		if !m.Enabled || s.host == nil {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			s.logger.Warn("skipping coach", "coach", m.Name, "error", err)
			continue
		}
		tip, err := s.host.GetTip(ctx, m, track, level)
		if err != nil {
			s.logger.Warn("coach call failed", "coach", m.Name, "error", err)
			continue
		}
		if err := tip.Validate(); err != nil {
			s.logger.Warn("coach returned an empty tip", "coach", m.Name)
			continue
		}
		author := tip.Author
		if author == "" {
			author = m.Name
		}
		return dto.TipOutput{Text: tip.Text, Author: author, Source: m.Name}, nil
	}
	return s.builtin(track), nil
}

func (s *CoachService) builtin(track string) dto.TipOutput {
	tips := domain.BuiltinTips(track)
	tip := tips[0]
	if s.rng != nil {
		tip = tips[s.rng.Intn(len(tips))]
	}
	return dto.TipOutput{Text: tip.Text, Author: tip.Author, Source: "builtin"}
}

func (s *CoachService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate coach name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read coach binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
