package screen

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadThresholds reads a thresholds YAML file.
//
// Unknown fields fail immediately (KnownFields) so a typo in an override
// file cannot silently run the scan with a default. Fields omitted from
// the file keep their compiled-in defaults.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("read thresholds file: %w", err)
	}

	th := DefaultThresholds()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&th); err != nil {
		return Thresholds{}, fmt.Errorf("parse thresholds file: %w", err)
	}

	if err := th.Validate(); err != nil {
		return Thresholds{}, fmt.Errorf("invalid thresholds: %w", err)
	}

	return th, nil
}
