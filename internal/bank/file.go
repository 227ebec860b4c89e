package bank

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// LoadFile reads a YAML question bank from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank file: %w", err)
	}
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bank file %s: %w", path, err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("bank file %s contains no questions", path)
	}
	return New(f.Questions)
}
