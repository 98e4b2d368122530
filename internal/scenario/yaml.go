package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a scenario definition file.
type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadFile parses user-defined scenarios from a YAML file.
//
// Every scenario is validated on load; duplicate names within the file are
// rejected. Example:
//
//	scenarios:
//	  - name: short_burst
//	    description: three enabled periods
//	    script:
//	      - {op: reset, count: 1}
//	      - {op: set, signal: en, value: 1}
//	      - {op: tick, count: 3}
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s: no scenarios defined", path)
	}

	seen := map[string]bool{}
	for _, sc := range f.Scenarios {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scenario file %s: %w", path, err)
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("scenario file %s: duplicate scenario %q", path, sc.Name)
		}
		seen[sc.Name] = true
	}
	return f.Scenarios, nil
}

// Merge adds scenarios to a table. Builtin names are reserved: a file
// scenario shadowing one is an error rather than a silent override.
func Merge(table map[string]Scenario, extra []Scenario) error {
	for _, sc := range extra {
		if _, exists := table[sc.Name]; exists {
			return fmt.Errorf("scenario %q already defined", sc.Name)
		}
		table[sc.Name] = sc
	}
	return nil
}
