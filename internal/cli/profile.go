package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile holds per-user defaults loaded with --profile. Flags given on
// the command line win over profile values.
type Profile struct {
	Headers   map[string]string `yaml:"headers"`
	Timeout   time.Duration     `yaml:"timeout"`
	Insecure  bool              `yaml:"insecure"`
	UserAgent string            `yaml:"user_agent"`
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	if p.Timeout < 0 {
		return nil, fmt.Errorf("parsing profile %s: timeout must not be negative", path)
	}

	return &p, nil
}
