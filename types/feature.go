package types

import "strings"

// FeatureKind tags the variants of a feature key.
type FeatureKind int

const (
	// FeatureBias is the constant bias feature present in every extraction.
	FeatureBias FeatureKind = iota
	// FeaturePresence keys on an attribute name alone.
	FeaturePresence
	// FeatureAttrValue keys on an (attribute, value) pair, so that distinct
	// contents of a variable-content attribute produce distinct features.
	FeatureAttrValue
	// FeatureAction keys on the identity of an action.
	FeatureAction
)

// Feature is one unit of linear weighting: a tagged key derived from an
// observation or an action. Features are comparable and usable as map keys.
type Feature struct {
	Kind      FeatureKind
	Attribute string // attribute name, or the action hash for FeatureAction
	Value     Value  // set only for FeatureAttrValue
}

func Bias() Feature {
	return Feature{Kind: FeatureBias}
}

func Presence(attribute string) Feature {
	return Feature{Kind: FeaturePresence, Attribute: attribute}
}

func AttrValue(attribute string, v Value) Feature {
	return Feature{Kind: FeatureAttrValue, Attribute: attribute, Value: v}
}

func ActionFeature(a Action) Feature {
	return Feature{Kind: FeatureAction, Attribute: a.Hash()}
}

// Key is the canonical string encoding of the feature, used when a weight
// mapping is serialized.
func (f Feature) Key() string {
	switch f.Kind {
	case FeatureBias:
		return "_bias"
	case FeatureAttrValue:
		return f.Attribute + "=" + f.Value.Key()
	case FeatureAction:
		return "action:" + f.Attribute
	default:
		return f.Attribute
	}
}

// FeatureSet is a duplicate-free collection of features.
type FeatureSet map[Feature]struct{}

func (s FeatureSet) Add(f Feature) {
	s[f] = struct{}{}
}

func (s FeatureSet) Contains(f Feature) bool {
	_, ok := s[f]
	return ok
}

// FeatureExtractor maps an observation to its feature set. Extractors must be
// pure: deterministic for a given observation, no side effects.
type FeatureExtractor func(*State) FeatureSet

// PrefixFeatureExtractor builds the reference extractor: a constant bias
// feature, a presence feature per attribute, except that attributes whose
// name starts with one of the given prefixes contribute an (attribute, value)
// feature instead. Memory slots are the usual variable-content attributes.
func PrefixFeatureExtractor(valuePrefixes ...string) FeatureExtractor {
	return func(obs *State) FeatureSet {
		set := make(FeatureSet, obs.Len()+1)
		set.Add(Bias())
		for _, name := range obs.Attributes() {
			variable := false
			for _, prefix := range valuePrefixes {
				if strings.HasPrefix(name, prefix) {
					variable = true
					break
				}
			}
			if variable {
				v, _ := obs.Get(name)
				set.Add(AttrValue(name, v))
			} else {
				set.Add(Presence(name))
			}
		}
		return set
	}
}
