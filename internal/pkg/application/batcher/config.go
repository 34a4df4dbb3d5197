package batcher

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

type InstanceConfig struct {
	URL     string `yaml:"url"`
	Version string `yaml:"version"`
	// RateLimit is the number of requests per second sent to the instance, zero disables pacing
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
}

type BatchConfig struct {
	Size int `yaml:"size"`
}

type Config struct {
	Instance   InstanceConfig `yaml:"instance"`
	Batch      BatchConfig    `yaml:"batch"`
	EntitySets []string       `yaml:"entitySets"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Batch: BatchConfig{Size: DefaultBatchSize},
	}
	err = yaml.Unmarshal(buf, cfg)

	return cfg, err
}
