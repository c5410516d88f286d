package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	Furnace Furnace `yaml:"furnace"`

	AuditDir  string `yaml:"audit_dir"`
	IndexPath string `yaml:"index_path"`
}

type Furnace struct {
	// EligibleTag is the block tag that marks structural furnace material.
	EligibleTag   string `yaml:"eligible_tag"`
	CoreBlock     string `yaml:"core_block"`
	ExteriorBlock string `yaml:"exterior_block"`
	// BlockingKind is the entity kind that prevents a furnace from forming.
	BlockingKind string `yaml:"blocking_kind"`
}

func Defaults() Tuning {
	return Tuning{
		Furnace: Furnace{
			EligibleTag:   "jumbofurnaceable",
			CoreBlock:     "JUMBO_FURNACE_CORE",
			ExteriorBlock: "JUMBO_FURNACE",
			BlockingKind:  "LIVING",
		},
		AuditDir:  "audit",
		IndexPath: "index.sqlite",
	}
}

// Load reads a tuning file. Fields left empty keep their defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.fill()
	if t.Furnace.CoreBlock == t.Furnace.ExteriorBlock {
		return t, fmt.Errorf("tuning.yaml: core_block and exterior_block must differ")
	}
	return t, nil
}

func (t *Tuning) fill() {
	d := Defaults()
	set := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	set(&t.Furnace.EligibleTag, d.Furnace.EligibleTag)
	set(&t.Furnace.CoreBlock, d.Furnace.CoreBlock)
	set(&t.Furnace.ExteriorBlock, d.Furnace.ExteriorBlock)
	set(&t.Furnace.BlockingKind, d.Furnace.BlockingKind)
	set(&t.AuditDir, d.AuditDir)
	set(&t.IndexPath, d.IndexPath)
}
