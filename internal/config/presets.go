package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		SideLength: 40, Generations: 500, FrameDelayMs: 100, Frontend: FrontendTea,
		Log: LogConfig{Level: DefaultLogLevel},
	},
	"quick": {
		SideLength: 40, Generations: 100, FrameDelayMs: 30, Frontend: FrontendTea,
		Log: LogConfig{Level: DefaultLogLevel},
	},
	"glider": {
		SideLength: 20, Generations: 80, FrameDelayMs: 80, Frontend: FrontendTea,
		Pattern: "glider", Log: LogConfig{Level: DefaultLogLevel},
	},
	"pulsar": {
		SideLength: 20, Generations: 60, FrameDelayMs: 150, Frontend: FrontendTea,
		Pattern: "pulsar", Log: LogConfig{Level: DefaultLogLevel},
	},
	"methuselah": {
		SideLength: 60, Generations: 1200, FrameDelayMs: 20, Frontend: FrontendTea,
		Pattern: "r-pentomino", StopWhenStable: true, Interruptible: true, Plot: true,
		Log: LogConfig{Level: DefaultLogLevel},
	},
	"raw": {
		SideLength: 40, Generations: 500, FrameDelayMs: 100, Frontend: FrontendANSI,
		Log: LogConfig{Level: DefaultLogLevel},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
