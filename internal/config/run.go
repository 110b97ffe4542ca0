package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig is a YAML description of one batch scoring run. CLI flags
// override anything set here.
type RunConfig struct {
	Counts   string `yaml:"counts"`
	GeneSets string `yaml:"genesets"`
	Method   string `yaml:"method"`
	Ranked   bool   `yaml:"ranked"`
	Workers  int    `yaml:"workers"`

	Normalization string `yaml:"normalization"`
	RBODepth      int    `yaml:"rbo_depth"`

	Output RunOutput `yaml:"output"`
}

// RunOutput names the result sinks of a run.
type RunOutput struct {
	CSV string `yaml:"csv"`
	DB  string `yaml:"db"`
}

// LoadRunConfig parses a run description file.
func LoadRunConfig(path string) (*RunConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config: %w", err)
	}
	cfg := &RunConfig{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return cfg, nil
}
