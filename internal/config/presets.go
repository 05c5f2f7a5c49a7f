package config

// Presets are ready-made remnant scenarios. Each returns a full Config so a
// preset can be used directly or as a base for further edits.
var Presets = map[string]func() *Config{
	"young-cc": func() *Config {
		cfg := DefaultConfig()
		cfg.Physical.Age = 340
		cfg.Physical.EjectaMass = 3.0
		cfg.Physical.EjectaIndex = 9
		cfg.Physical.Density = 1.0
		cfg.Abundances.Ejecta = "CC"
		return cfg
	},
	"type-ia": func() *Config {
		cfg := DefaultConfig()
		cfg.Physical.Age = 440
		cfg.Physical.EjectaMass = 1.4
		cfg.Physical.EjectaIndex = 7
		cfg.Physical.Density = 0.3
		cfg.Abundances.Ejecta = "Type Ia"
		return cfg
	},
	"middle-aged": func() *Config {
		cfg := DefaultConfig()
		cfg.Physical.Age = 2e4
		cfg.Physical.Density = 0.5
		cfg.Plot.Max = 1e5
		return cfg
	},
	"radiative": func() *Config {
		cfg := DefaultConfig()
		cfg.Physical.Age = 1e5
		cfg.Physical.Density = 5.0
		cfg.Plot.Max = 5e5
		return cfg
	},
	"wind-bubble": func() *Config {
		cfg := DefaultConfig()
		cfg.Physical.AmbientIndex = 2
		cfg.Physical.EjectaIndex = 7
		cfg.Physical.Age = 1000
		cfg.Wind.MassLoss = 1e-5
		cfg.Wind.Speed = 10
		return cfg
	},
	"cloudy": func() *Config {
		cfg := DefaultConfig()
		cfg.Model = "cloudy-ism"
		cfg.Physical.Age = 1e4
		cfg.VariantOpt.CloudTau = 4
		return cfg
	},
	"hot-cavity": func() *Config {
		cfg := DefaultConfig()
		cfg.Model = "hot-low-density"
		cfg.Physical.Age = 1e5
		cfg.Physical.Density = 0.01
		cfg.Physical.ISMTemp = 1e6
		cfg.VariantOpt.HotEnd = 4e5
		return cfg
	},
}

func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
