package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GraphExport configures the optional term-graph side output.
type GraphExport struct {
	// Format is "json" or "mermaid".
	Format string `yaml:"format,omitempty"`
	Path   string `yaml:"path,omitempty"`
}

// ProjectConfig holds generator settings loaded from cvgen.yml.
type ProjectConfig struct {
	OutputDir     string      `yaml:"outputDir,omitempty"`
	Basename      string      `yaml:"basename,omitempty"`
	PrimaryPrefix string      `yaml:"primaryPrefix,omitempty"`
	GraphExport   GraphExport `yaml:"graphExport,omitempty"`
}

// Load attempts to read cvgen.yml or cvgen.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"cvgen.yml", "cvgen.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
