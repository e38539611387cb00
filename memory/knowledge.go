package memory

import (
	"context"
	"fmt"

	"github.com/rlmem/gating-rl/types"
)

// Binding is one result row of a knowledge lookup: attribute names to values.
type Binding map[string]types.Value

// Query selects bindings from a knowledge source. Match is an exact filter:
// every returned binding holds each listed attribute at exactly the listed
// value. Select optionally restricts which attributes are returned. Distinct
// deduplicates identical result bindings; Limit > 0 caps the result count.
type Query struct {
	Match    map[string]types.Value
	Select   []string
	Distinct bool
	Limit    int
}

// KnowledgeSource answers lookups for knowledge-backed memory content.
// Implementations live behind this boundary; the core never queries one
// during an environment transition. A failed lookup must surface as a
// *LookupError, never as an empty result, so that learners cannot mistake an
// outage for absent knowledge.
type KnowledgeSource interface {
	Query(ctx context.Context, q Query) ([]Binding, error)
}

// LookupError wraps a knowledge source failure.
type LookupError struct {
	Source string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("knowledge lookup against %s failed: %v", e.Source, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
