package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML document shape for an external catalog
// version. Reference data is versioned on disk, not edited at runtime.
type catalogFile struct {
	Version         string           `yaml:"version"`
	Profile         FrameworkProfile `yaml:"profile"`
	Requirements    []Requirement    `yaml:"requirements"`
	ControlMappings []ControlMapping `yaml:"control_mappings"`
}

// LoadCatalog reads a catalog version from a YAML file. The result goes
// through the same validation and pattern compilation as the built-in
// catalogs.
func LoadCatalog(filepath string) (*Catalog, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	return New(file.Profile, file.Requirements, file.ControlMappings)
}
