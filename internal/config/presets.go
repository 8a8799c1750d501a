package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		Policy: "none", TimeStep: 0.3, MaxSteps: 400, Gravity: -9.81, Episodes: 1,
		PolicyParams: PolicyConfig{P: DefaultP, Every: DefaultEvery, Target: DefaultTarget, Kp: DefaultKp},
	},
	"fine": {
		Policy: "none", TimeStep: 0.05, MaxSteps: 2400, Gravity: -9.81, Episodes: 1,
		PolicyParams: PolicyConfig{P: DefaultP, Every: DefaultEvery, Target: DefaultTarget, Kp: DefaultKp},
	},
	"moon": {
		Policy: "none", TimeStep: 0.3, MaxSteps: 400, Gravity: -1.62, Episodes: 1,
		PolicyParams: PolicyConfig{P: DefaultP, Every: DefaultEvery, Target: 15, Kp: DefaultKp},
	},
	"marathon": {
		Policy: "energy", TimeStep: 0.3, MaxSteps: 2000, Gravity: -9.81, Episodes: 16,
		PolicyParams: PolicyConfig{P: DefaultP, Every: DefaultEvery, Target: DefaultTarget, Kp: DefaultKp, Kd: 0.05},
	},
	"random": {
		Policy: "random", TimeStep: 0.3, MaxSteps: 400, Gravity: -9.81, Episodes: 32,
		PolicyParams: PolicyConfig{P: 0.05, Every: DefaultEvery, Target: DefaultTarget, Kp: DefaultKp},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
