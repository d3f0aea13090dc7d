package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed template.yml
var configTemplate string

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return configTemplate
}

// WriteTemplate writes the commented template to path. An existing file is
// only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
