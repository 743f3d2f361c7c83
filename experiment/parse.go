package experiment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes raw YAML bytes into a Descriptor and applies defaults.
// It performs no validation beyond what decoding requires; callers go
// through config.Load for the full check pipeline.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing experiment document: %w", err)
	}
	applyDefaults(&d)
	return &d, nil
}

// applyDefaults fills derived fields: an agent entry with no name takes its
// locator as display name.
func applyDefaults(d *Descriptor) {
	for groupName, group := range d.AgentList {
		for i := range group {
			if group[i].Name == "" {
				group[i].Name = group[i].Locator
			}
		}
		d.AgentList[groupName] = group
	}
}
