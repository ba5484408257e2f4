package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wellquest/internal/modules/progress/domain"
	progressout "wellquest/internal/modules/progress/port/out"
	apperrors "wellquest/internal/platform/errors"
)

type FileProfileStore struct {
	path string
}

func NewFileProfileStore(dataPath string) progressout.ProfileStore {
	return &FileProfileStore{path: filepath.Join(dataPath, ".wellquest", "profile.json")}
}

func (s *FileProfileStore) Load(_ context.Context) (domain.PlayerProfile, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.PlayerProfile{}, apperrors.ErrNoProfile
		}
		return domain.PlayerProfile{}, fmt.Errorf("read profile: %w", err)
	}
	var profile domain.PlayerProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return domain.PlayerProfile{}, fmt.Errorf("%w: %v", apperrors.ErrCorruptProfile, err)
	}
	if profile.Level < 1 {
		return domain.PlayerProfile{}, apperrors.ErrCorruptProfile
	}
	return profile, nil
}

func (s *FileProfileStore) Save(_ context.Context, profile domain.PlayerProfile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	payload, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
