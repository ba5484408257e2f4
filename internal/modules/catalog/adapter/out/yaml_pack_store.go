package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wellquest/internal/modules/catalog/domain"
	catalogout "wellquest/internal/modules/catalog/port/out"
)

type packFile struct {
	Games []struct {
		ID          string             `yaml:"id"`
		WellnessTip string             `yaml:"wellness_tip"`
		Levels      []domain.LevelSpec `yaml:"levels"`
	} `yaml:"games"`
}

// YAMLPackStore reads tuning overrides from packs.yaml in the data
// directory. A missing file is not an error; a malformed one is, and the
// service decides to fall back to the builtin roster.
type YAMLPackStore struct {
	path string
}

func NewYAMLPackStore(dataPath string) catalogout.PackStore {
	return &YAMLPackStore{path: filepath.Join(dataPath, ".wellquest", "packs.yaml")}
}

func (s *YAMLPackStore) Load(_ context.Context) ([]catalogout.Override, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pack file: %w", err)
	}
	var file packFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("decode pack file: %w", err)
	}
	overrides := make([]catalogout.Override, 0, len(file.Games))
	for _, g := range file.Games {
		overrides = append(overrides, catalogout.Override{
			ID:          domain.GameID(g.ID),
			WellnessTip: g.WellnessTip,
			Levels:      g.Levels,
		})
	}
	return overrides, nil
}
