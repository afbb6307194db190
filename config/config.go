package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type I2C struct {
	Bus     string `yaml:"bus"`     // i2creg name or alias, "" picks the first bus
	Address uint16 `yaml:"address"` // 7-bit device address, e.g. 0x70
}

type Config struct {
	Driver string `yaml:"driver"` // "i2c" | "sim"
	StepMs int    `yaml:"step_ms"`

	I2C I2C `yaml:"i2c,omitempty"`
}

func Default() *Config {
	return &Config{
		Driver: "i2c",
		StepMs: 200,
		I2C:    I2C{Address: 0x70},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
