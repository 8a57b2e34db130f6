package config

var Presets = map[string]*Config{
	"classic": {
		Atoms: 20, Dt: DefaultDt, Duration: 10.0, Seed: DefaultSeed, FPS: 60,
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"pair": {
		Atoms: 2, Dt: DefaultDt, Duration: 30.0, Seed: DefaultSeed, FPS: 60,
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"sparse": {
		Atoms: 8, Dt: DefaultDt, Duration: 20.0, Seed: DefaultSeed, FPS: 60,
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"dense": {
		Atoms: 64, Dt: 1.0 / 120.0, Duration: 10.0, Seed: DefaultSeed, FPS: 60,
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"slowmo": {
		Atoms: 20, Dt: 1.0 / 240.0, Duration: 10.0, Seed: DefaultSeed, FPS: 60,
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
