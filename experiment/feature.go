package experiment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FeatureSpec is one observation feature toggle. Parameterless features use
// the bool short form (`speed: true`); bucketed features carry a bucket
// count and an encoding mode.
type FeatureSpec struct {
	Enabled bool        `json:"enabled"`
	Buckets int         `json:"buckets,omitempty"`
	Mode    FeatureMode `json:"mode,omitempty"`
}

// Parameterized reports whether the feature carries bucket parameters.
func (f FeatureSpec) Parameterized() bool {
	return f.Buckets != 0 || f.Mode != ""
}

// UnmarshalYAML accepts three forms:
//
//	speed: true
//	heading_errors: [10, continuous]
//	heading_errors: {enabled: true, buckets: 10, mode: continuous}
func (f *FeatureSpec) UnmarshalYAML(value *yaml.Node) error {
	// Bool short form
	var enabled bool
	if err := value.Decode(&enabled); err == nil {
		*f = FeatureSpec{Enabled: enabled}
		return nil
	}

	// Two-element sequence form: [buckets, mode]
	if value.Kind == yaml.SequenceNode {
		var seq []yaml.Node
		if err := value.Decode(&seq); err != nil {
			return err
		}
		if len(seq) != 2 {
			return fmt.Errorf("feature sequence form must be [buckets, mode], got %d elements", len(seq))
		}
		var buckets int
		if err := seq[0].Decode(&buckets); err != nil {
			return fmt.Errorf("feature buckets: %w", err)
		}
		var mode FeatureMode
		if err := seq[1].Decode(&mode); err != nil {
			return fmt.Errorf("feature mode: %w", err)
		}
		*f = FeatureSpec{Enabled: true, Buckets: buckets, Mode: mode}
		return nil
	}

	// Full object form
	type featureSpec struct {
		Enabled *bool       `yaml:"enabled"`
		Buckets int         `yaml:"buckets"`
		Mode    FeatureMode `yaml:"mode"`
	}
	var full featureSpec
	if err := value.Decode(&full); err != nil {
		return err
	}
	f.Enabled = full.Enabled == nil || *full.Enabled
	f.Buckets = full.Buckets
	f.Mode = full.Mode
	return nil
}
