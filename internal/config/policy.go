package config

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"gopkg.in/yaml.v3"
)

// LoadPolicy returns the default punch policy. Flags missing from the YAML
// file keep their built-in value. An empty path yields the built-in policy.
func LoadPolicy(path string) (settings.SystemSettings, error) {
	policy := settings.Default()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return settings.SystemSettings{}, fmt.Errorf("parse policy file: %w", err)
	}
	return policy, nil
}
