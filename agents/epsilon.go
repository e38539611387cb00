package agents

import (
	"fmt"

	"github.com/rlmem/gating-rl/types"
	"golang.org/x/exp/rand"
)

// EpsilonGreedy wraps any agent with uniform random exploration: with
// probability explorationRate it takes a random action from the set, and
// otherwise the wrapped agent's best stored action. Either way the choice is
// registered through ForceAct so the wrapped agent learns from it. All other
// operations are forwarded unchanged.
type EpsilonGreedy struct {
	types.Agent
	explorationRate float64
	rng             *rand.Rand
}

var _ types.Agent = &EpsilonGreedy{}

// NewEpsilonGreedy wraps the agent. The random source is owned by the wrapper
// and seeded explicitly for reproducibility.
func NewEpsilonGreedy(agent types.Agent, explorationRate float64, seed uint64) (*EpsilonGreedy, error) {
	if agent == nil {
		return nil, fmt.Errorf("nil wrapped agent: %w", types.ErrInvalidArgument)
	}
	if explorationRate < 0 || explorationRate > 1 {
		return nil, fmt.Errorf("exploration rate %v outside [0, 1]: %w", explorationRate, types.ErrInvalidArgument)
	}
	return &EpsilonGreedy{
		Agent:           agent,
		explorationRate: explorationRate,
		rng:             rand.New(rand.NewSource(seed)),
	}, nil
}

func (e *EpsilonGreedy) Act(obs *types.State, actions []types.Action) (types.Action, error) {
	if len(actions) == 0 {
		return types.Action{}, fmt.Errorf("act on an empty action set: %w", types.ErrInvalidArgument)
	}
	if e.rng.Float64() < e.explorationRate {
		return e.Agent.ForceAct(obs, actions[e.rng.Intn(len(actions))]), nil
	}
	best, err := e.Agent.BestStoredAction(obs, actions)
	if err != nil {
		return types.Action{}, err
	}
	return e.Agent.ForceAct(obs, best), nil
}
