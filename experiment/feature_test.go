package experiment

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func decodeFeature(t *testing.T, src string) FeatureSpec {
	t.Helper()
	var f FeatureSpec
	if err := yaml.Unmarshal([]byte(src), &f); err != nil {
		t.Fatalf("decoding %q: %v", src, err)
	}
	return f
}

func TestFeatureSpec_BoolForm(t *testing.T) {
	f := decodeFeature(t, "true")
	if !f.Enabled || f.Parameterized() {
		t.Fatalf("expected plain enabled feature, got %+v", f)
	}

	f = decodeFeature(t, "false")
	if f.Enabled {
		t.Fatalf("expected disabled feature, got %+v", f)
	}
}

func TestFeatureSpec_SequenceForm(t *testing.T) {
	f := decodeFeature(t, "[10, continuous]")
	if !f.Enabled {
		t.Fatal("sequence form should imply enabled")
	}
	if f.Buckets != 10 || f.Mode != ModeContinuous {
		t.Fatalf("expected buckets=10 mode=continuous, got %+v", f)
	}
	if !f.Parameterized() {
		t.Fatal("expected parameterized")
	}
}

func TestFeatureSpec_SequenceForm_WrongLength(t *testing.T) {
	var f FeatureSpec
	if err := yaml.Unmarshal([]byte("[10]"), &f); err == nil {
		t.Fatal("expected error for one-element sequence")
	}
	if err := yaml.Unmarshal([]byte("[10, continuous, extra]"), &f); err == nil {
		t.Fatal("expected error for three-element sequence")
	}
}

func TestFeatureSpec_ObjectForm(t *testing.T) {
	f := decodeFeature(t, "{enabled: true, buckets: 5, mode: discrete}")
	if !f.Enabled || f.Buckets != 5 || f.Mode != ModeDiscrete {
		t.Fatalf("unexpected spec: %+v", f)
	}
}

func TestFeatureSpec_ObjectForm_EnabledDefaultsTrue(t *testing.T) {
	f := decodeFeature(t, "{buckets: 3, mode: continuous}")
	if !f.Enabled {
		t.Fatal("object form without enabled should default to enabled")
	}
}

func TestFeatureSpec_ObjectForm_Disabled(t *testing.T) {
	f := decodeFeature(t, "{enabled: false, buckets: 3, mode: continuous}")
	if f.Enabled {
		t.Fatal("expected disabled")
	}
	if !f.Parameterized() {
		t.Fatal("disabled feature keeps its parameters")
	}
}
