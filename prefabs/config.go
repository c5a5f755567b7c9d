package prefabs

import (
	"fmt"

	"github.com/milk9111/gridwalk/levels"
	"github.com/milk9111/gridwalk/sim"
)

// BuildConfig loads the tuning file and places the named level on it. An
// empty levelName uses the level the tuning file names; with neither, the
// stock board is used.
func BuildConfig(specName, levelName string) (sim.Config, *SimulationSpec, error) {
	spec, err := LoadSimulationSpec(specName)
	if err != nil {
		return sim.Config{}, nil, err
	}
	cfg := spec.Apply(sim.DefaultConfig())

	if levelName == "" {
		levelName = spec.Level
	}
	if levelName == "" {
		return cfg, spec, nil
	}

	lvl, err := levels.Load(levelName)
	if err != nil {
		return sim.Config{}, nil, fmt.Errorf("prefabs: level %s: %w", levelName, err)
	}
	cfg, err = lvl.Config(cfg)
	if err != nil {
		return sim.Config{}, nil, fmt.Errorf("prefabs: level %s: %w", levelName, err)
	}
	return cfg, spec, nil
}
