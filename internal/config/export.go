package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Export serializes the model definition back to YAML, e.g. for sharing a
// definition assembled programmatically.
func (d *ModelDefinition) Export(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to serialize model definition: %w", err)
	}
	return encoder.Close()
}

// Save writes the model definition to a YAML file.
func (d *ModelDefinition) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return d.Export(file)
}
