package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// override is the subset of Rules an operator may tweak from a YAML
// file without recompiling. Only a handful of scalar knobs are exposed
// deliberately: the bulk tables (CER, ship stats) stay compiled-in
// baselines, matching how the teacher's catalogs are package-level Go
// values rather than data files. The loader lives outside
// internal/engine entirely — the encoding is opaque to the engine per
// spec.md sections 1 and 6.
type override struct {
	EspionagePointCostPP     *int `yaml:"espionagePointCostPP"`
	ShieldBlockChancePct     *int `yaml:"shieldBlockChancePct"`
	VictoryPrestigeThreshold *int `yaml:"victoryPrestigeThreshold"`
}

// Load reads a YAML override file and applies it on top of Default().
func Load(path string) (Rules, error) {
	r := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("config: read %s: %w", path, err)
	}
	var ov override
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return r, fmt.Errorf("%w: %s: %v", ec4xerr.ErrInvalidConfig, path, err)
	}
	if ov.EspionagePointCostPP != nil {
		if *ov.EspionagePointCostPP <= 0 {
			return r, fmt.Errorf("%w: espionagePointCostPP must be positive", ec4xerr.ErrInvalidConfig)
		}
		r.EspionagePointCostPP = *ov.EspionagePointCostPP
	}
	if ov.ShieldBlockChancePct != nil {
		if *ov.ShieldBlockChancePct < 0 || *ov.ShieldBlockChancePct > 100 {
			return r, fmt.Errorf("%w: shieldBlockChancePct must be in [0,100]", ec4xerr.ErrInvalidConfig)
		}
		r.ShieldBlockChancePct = *ov.ShieldBlockChancePct
	}
	if ov.VictoryPrestigeThreshold != nil {
		r.VictoryPrestigeThreshold = *ov.VictoryPrestigeThreshold
	}
	return r, nil
}
