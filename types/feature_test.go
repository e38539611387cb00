package types

import "testing"

func TestPrefixFeatureExtractor(t *testing.T) {
	extract := PrefixFeatureExtractor("memory_")
	obs := NewState(map[string]Value{
		"x":        Int(0),
		"symbol":   Int(-1),
		"memory_0": Null,
		"memory_1": Int(-1),
	})
	set := extract(obs)

	if !set.Contains(Bias()) {
		t.Errorf("bias feature missing")
	}
	if !set.Contains(Presence("x")) || !set.Contains(Presence("symbol")) {
		t.Errorf("presence features missing: %v", set)
	}
	if !set.Contains(AttrValue("memory_0", Null)) {
		t.Errorf("null memory value feature missing")
	}
	if !set.Contains(AttrValue("memory_1", Int(-1))) {
		t.Errorf("memory value feature missing")
	}
	if set.Contains(Presence("memory_0")) || set.Contains(Presence("memory_1")) {
		t.Errorf("memory attributes should not contribute presence features")
	}
	if set.Contains(AttrValue("symbol", Int(-1))) {
		t.Errorf("plain attributes should not contribute value features")
	}
	if len(set) != 5 {
		t.Errorf("expected 5 features, got %d: %v", len(set), set)
	}
}

func TestExtractorDeterministic(t *testing.T) {
	extract := PrefixFeatureExtractor("memory_")
	obs := NewState(map[string]Value{"row": Int(1), "memory_0": String("a")})
	first := extract(obs)
	second := extract(obs)
	if len(first) != len(second) {
		t.Fatalf("extraction not deterministic")
	}
	for f := range first {
		if !second.Contains(f) {
			t.Errorf("feature %s missing on re-extraction", f.Key())
		}
	}
}

func TestFeatureKeys(t *testing.T) {
	cases := []struct {
		feature Feature
		want    string
	}{
		{Bias(), "_bias"},
		{Presence("row"), "row"},
		{AttrValue("memory_0", Int(-1)), "memory_0=-1"},
		{AttrValue("memory_0", String("x")), `memory_0="x"`},
		{ActionFeature(NewAction("up")), "action:up"},
		{
			ActionFeature(NewAction("gate", P("slot", Int(0)), P("attribute", String("y")))),
			`action:gate(attribute="y",slot=0)`,
		},
	}
	for _, c := range cases {
		if got := c.feature.Key(); got != c.want {
			t.Errorf("expected key %q, got %q", c.want, got)
		}
	}
}
