package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// Param is a named action parameter, such as the slot and attribute of a
// gate action.
type Param struct {
	Name  string
	Value Value
}

// P builds a parameter.
func P(name string, v Value) Param {
	return Param{Name: name, Value: v}
}

// Action is an immutable action name with optional named parameters.
// Identity covers the name and every parameter; actions carry a total order
// (name first, then the sorted parameter tuple) so iteration and exploration
// tie-breaks are reproducible.
type Action struct {
	name   string
	params []Param // sorted by name
	hash   string
}

func NewAction(name string, params ...Param) Action {
	a := Action{name: name}
	if len(params) > 0 {
		a.params = make([]Param, len(params))
		copy(a.params, params)
		sort.Slice(a.params, func(i, j int) bool {
			return a.params[i].Name < a.params[j].Name
		})
	}
	a.hash = a.encode()
	return a
}

func (a Action) encode() string {
	if len(a.params) == 0 {
		return a.name
	}
	var b strings.Builder
	b.WriteString(a.name)
	b.WriteByte('(')
	for i, p := range a.params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(p.Value.Key())
	}
	b.WriteByte(')')
	return b.String()
}

func (a Action) Name() string {
	return a.name
}

// Param returns the value of the named parameter.
func (a Action) Param(name string) (Value, bool) {
	for _, p := range a.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Null, false
}

// Hash is the canonical encoding of the action.
// Should be deterministic; equal actions share one hash.
func (a Action) Hash() string {
	return a.hash
}

func (a Action) Eq(other Action) bool {
	return a.hash == other.hash
}

// Compare orders actions by name, then by parameter tuple. Returns -1, 0 or 1.
func (a Action) Compare(other Action) int {
	if a.name != other.name {
		if a.name < other.name {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.params) && i < len(other.params); i++ {
		p, q := a.params[i], other.params[i]
		if p.Name != q.Name {
			if p.Name < q.Name {
				return -1
			}
			return 1
		}
		if c := p.Value.Compare(q.Value); c != 0 {
			return c
		}
	}
	switch {
	case len(a.params) < len(other.params):
		return -1
	case len(a.params) > len(other.params):
		return 1
	}
	return 0
}

func (a Action) String() string {
	return a.hash
}

// SortActions orders actions in place by their total order.
func SortActions(actions []Action) {
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].Compare(actions[j]) < 0
	})
}

func (a Action) MarshalJSON() ([]byte, error) {
	out := struct {
		Name   string           `json:"name"`
		Params map[string]Value `json:"params,omitempty"`
	}{Name: a.name}
	if len(a.params) > 0 {
		out.Params = make(map[string]Value, len(a.params))
		for _, p := range a.params {
			out.Params[p.Name] = p.Value
		}
	}
	return json.Marshal(out)
}
