package registry

import (
	"io"

	"github.com/diwise/entity-registry/pkg/entities"
	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Enumerations entities.Enumerations `yaml:"enumerations"`
}

func DefaultConfig() *Config {
	return &Config{Enumerations: entities.DefaultEnumerations()}
}

// LoadConfiguration reads a yaml configuration. Enumerations that are left
// out of the document fall back to the defaults.
func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	if len(cfg.Enumerations.Types) == 0 {
		cfg.Enumerations.Types = entities.DefaultTypes()
	}

	if len(cfg.Enumerations.EyeColors) == 0 {
		cfg.Enumerations.EyeColors = entities.DefaultEyeColors()
	}

	return cfg, nil
}
