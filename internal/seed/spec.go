package seed

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/betterday-backend/internal/platform/logger"
)

const seedSpecEnv = "SEED_SPEC_YAML"

//go:embed defaults.yaml
var seedSpecFS embed.FS

// Spec is the declarative seed set: global importance levels plus the
// category skeleton laid onto a day.
type Spec struct {
	Levels     []LevelSpec    `yaml:"levels"`
	Categories []CategorySpec `yaml:"categories"`
}

type LevelSpec struct {
	Label string `yaml:"label"`
	Score int    `yaml:"score"`
}

type CategorySpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// fallback mirrors defaults.yaml so a broken override file still seeds
// something sensible.
var fallbackSpec = Spec{
	Levels: []LevelSpec{
		{Label: "Low", Score: 1},
		{Label: "Medium", Score: 3},
		{Label: "High", Score: 5},
	},
	Categories: []CategorySpec{
		{Name: "Finance"},
		{Name: "Health"},
		{Name: "Energy"},
		{Name: "Opinion"},
		{Name: "Connection"},
		{Name: "Safety"},
		{Name: "Knowledge"},
	},
}

// LoadSpec reads the seed spec, preferring a file named by SEED_SPEC_YAML
// over the embedded defaults. An unreadable or invalid spec falls back to
// the built-in set.
func LoadSpec(log *logger.Logger) Spec {
	spec, err := loadSpec()
	if err != nil {
		if log != nil {
			log.Warn("Seed spec load failed; using fallback", "error", err)
		}
		return fallbackSpec
	}
	return spec
}

func loadSpec() (Spec, error) {
	data, err := readSpecBytes()
	if err != nil {
		return Spec{}, err
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, err
	}
	if err := validateSpec(&spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func readSpecBytes() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(seedSpecEnv)); path != "" {
		return os.ReadFile(path)
	}
	return seedSpecFS.ReadFile("defaults.yaml")
}

func validateSpec(spec *Spec) error {
	if len(spec.Levels) == 0 && len(spec.Categories) == 0 {
		return fmt.Errorf("seed spec is empty")
	}
	seenLabels := map[string]bool{}
	for i, level := range spec.Levels {
		label := strings.TrimSpace(level.Label)
		if label == "" {
			return fmt.Errorf("level %d has no label", i)
		}
		if level.Score < 1 {
			return fmt.Errorf("level %q has non-positive score %d", label, level.Score)
		}
		key := strings.ToLower(label)
		if seenLabels[key] {
			return fmt.Errorf("level %q appears twice", label)
		}
		seenLabels[key] = true
		spec.Levels[i].Label = label
	}
	seenNames := map[string]bool{}
	for i, category := range spec.Categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		key := strings.ToLower(name)
		if seenNames[key] {
			return fmt.Errorf("category %q appears twice", name)
		}
		seenNames[key] = true
		spec.Categories[i].Name = name
	}
	return nil
}
