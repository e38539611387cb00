package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// State is an immutable attribute snapshot of an environment, the unit of
// observation agents perceive. Equality and ordering are over the full
// attribute mapping, independent of construction order.
type State struct {
	attrs    map[string]Value
	names    []string // sorted
	hash     string
	terminal bool
}

// Terminal is the sentinel observation of an ended episode. It carries no
// attributes and compares equal only to itself.
var Terminal = &State{terminal: true, hash: "<end>"}

// NewState builds a state from the given attributes. The map is copied;
// callers may reuse it afterwards.
func NewState(attrs map[string]Value) *State {
	s := &State{
		attrs: make(map[string]Value, len(attrs)),
		names: make([]string, 0, len(attrs)),
	}
	for name, v := range attrs {
		s.attrs[name] = v
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)

	var b strings.Builder
	for i, name := range s.names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(s.attrs[name].Key())
	}
	s.hash = b.String()
	return s
}

// Terminal reports whether this is the end-of-episode sentinel.
func (s *State) Terminal() bool {
	return s.terminal
}

// Get returns the value of the named attribute.
func (s *State) Get(name string) (Value, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// Attributes returns the attribute names in sorted order.
// The returned slice must not be modified.
func (s *State) Attributes() []string {
	return s.names
}

func (s *State) Len() int {
	return len(s.attrs)
}

// Hash is the canonical encoding of the state.
// Should be deterministic; two equal states share one hash.
func (s *State) Hash() string {
	return s.hash
}

func (s *State) Eq(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.terminal == other.terminal && s.hash == other.hash
}

func (s *State) String() string {
	if s.terminal {
		return "<end>"
	}
	return "{" + s.hash + "}"
}

func (s *State) MarshalJSON() ([]byte, error) {
	if s.terminal {
		return []byte("null"), nil
	}
	return json.Marshal(s.attrs)
}
