package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snrlab/snrsim/internal/snr"
)

const (
	DefaultAge       = 100.0
	DefaultEnergy    = 1.0
	DefaultISMTemp   = 100.0
	DefaultMass      = 1.4
	DefaultDensity   = 2.0
	DefaultCooling   = 1.0
	DefaultSigma     = 7.0
	DefaultWindLoss  = 1e-7
	DefaultWindSpeed = 30.0
	DefaultGamma     = 5.0 / 3.0
	DefaultLossFrac  = 0.7
	DefaultCloudTau  = 2.0
	DefaultLossStart = 5000.0
	DefaultHotEnd    = 4e5
)

type Config struct {
	Model      string          `yaml:"model"`
	Physical   PhysicalConfig  `yaml:"physical"`
	Wind       WindConfig      `yaml:"wind"`
	VariantOpt VariantConfig   `yaml:"variant"`
	Plot       PlotConfig      `yaml:"plot"`
	Abundances AbundanceConfig `yaml:"abundances"`
}

type PhysicalConfig struct {
	Age          float64 `yaml:"age"`
	Energy       float64 `yaml:"energy"`
	ISMTemp      float64 `yaml:"ism_temp"`
	EjectaMass   float64 `yaml:"ejecta_mass"`
	EjectaIndex  float64 `yaml:"ejecta_index"`
	AmbientIndex float64 `yaml:"ambient_index"`
	Density      float64 `yaml:"density"`
	TempRatio    float64 `yaml:"temp_ratio"`
	Cooling      float64 `yaml:"cooling"`
	Turbulence   float64 `yaml:"turbulence"`
}

type WindConfig struct {
	MassLoss float64 `yaml:"mass_loss"`
	Speed    float64 `yaml:"speed"`
}

type VariantConfig struct {
	Gamma     float64 `yaml:"gamma"`
	LossFrac  float64 `yaml:"loss_frac"`
	LossStart float64 `yaml:"loss_start"`
	HotEnd    float64 `yaml:"hot_end"`
	CloudTau  float64 `yaml:"cloud_tau"`
}

type PlotConfig struct {
	Kind string  `yaml:"kind"`
	Min  float64 `yaml:"xmin"`
	Max  float64 `yaml:"xmax"`
	Mode string  `yaml:"mode"`
}

type AbundanceConfig struct {
	ISM    string `yaml:"ism"`
	Ejecta string `yaml:"ejecta"`
}

// variantKeys maps the yaml/CLI spelling to the model variant.
var variantKeys = map[string]snr.Variant{
	"standard":        snr.Standard,
	"fractional-loss": snr.FractionalLoss,
	"hot-low-density": snr.HotLowDensity,
	"cloudy-ism":      snr.CloudyISM,
}

func DefaultConfig() *Config {
	return &Config{
		Model: "standard",
		Physical: PhysicalConfig{
			Age:          DefaultAge,
			Energy:       DefaultEnergy,
			ISMTemp:      DefaultISMTemp,
			EjectaMass:   DefaultMass,
			EjectaIndex:  0,
			AmbientIndex: 0,
			Density:      DefaultDensity,
			TempRatio:    1.0,
			Cooling:      DefaultCooling,
			Turbulence:   DefaultSigma,
		},
		Wind: WindConfig{
			MassLoss: DefaultWindLoss,
			Speed:    DefaultWindSpeed,
		},
		VariantOpt: VariantConfig{
			Gamma:     DefaultGamma,
			LossFrac:  DefaultLossFrac,
			LossStart: DefaultLossStart,
			HotEnd:    DefaultHotEnd,
			CloudTau:  DefaultCloudTau,
		},
		Plot: PlotConfig{
			Kind: "radius",
			Min:  10,
			Max:  1e5,
			Mode: "current",
		},
		Abundances: AbundanceConfig{
			ISM:    "LMC",
			Ejecta: "Type Ia",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Variant resolves the configured model name.
func (c *Config) Variant() (snr.Variant, error) {
	v, ok := variantKeys[c.Model]
	if !ok {
		return snr.Standard, fmt.Errorf("config: unknown model %q", c.Model)
	}
	return v, nil
}

// Inputs assembles a model input snapshot from the configured values.
func (c *Config) Inputs() (snr.Inputs, error) {
	v, err := c.Variant()
	if err != nil {
		return snr.Inputs{}, err
	}
	return snr.Inputs{
		Age:          c.Physical.Age,
		Energy:       c.Physical.Energy,
		ISMTemp:      c.Physical.ISMTemp,
		EjectaMass:   c.Physical.EjectaMass,
		EjectaIndex:  c.Physical.EjectaIndex,
		AmbientIndex: c.Physical.AmbientIndex,
		Density:      c.Physical.Density,
		TempRatio:    c.Physical.TempRatio,
		Cooling:      c.Physical.Cooling,
		Turbulence:   c.Physical.Turbulence,
		WindLoss:     c.Wind.MassLoss,
		WindSpeed:    c.Wind.Speed,
		Gamma:        c.VariantOpt.Gamma,
		LossFrac:     c.VariantOpt.LossFrac,
		CloudTau:     c.VariantOpt.CloudTau,
		LossStart:    c.VariantOpt.LossStart,
		HotEnd:       c.VariantOpt.HotEnd,
		Variant:      v,
	}, nil
}
