package agents

import (
	"fmt"
	"math"

	"github.com/rlmem/gating-rl/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Softmax wraps any agent with Boltzmann exploration: actions are sampled
// with probability proportional to exp(value / temperature), so higher-valued
// actions are preferred but every action keeps non-zero probability. Low
// temperatures approach greedy selection, high temperatures approach uniform.
type Softmax struct {
	types.Agent
	temperature float64
	src         rand.Source
}

var _ types.Agent = &Softmax{}

func NewSoftmax(agent types.Agent, temperature float64, seed uint64) (*Softmax, error) {
	if agent == nil {
		return nil, fmt.Errorf("nil wrapped agent: %w", types.ErrInvalidArgument)
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("temperature %v not positive: %w", temperature, types.ErrInvalidArgument)
	}
	return &Softmax{
		Agent:       agent,
		temperature: temperature,
		src:         rand.NewSource(seed),
	}, nil
}

func (s *Softmax) Act(obs *types.State, actions []types.Action) (types.Action, error) {
	if len(actions) == 0 {
		return types.Action{}, fmt.Errorf("act on an empty action set: %w", types.ErrInvalidArgument)
	}
	ordered := make([]types.Action, len(actions))
	copy(ordered, actions)
	types.SortActions(ordered)

	vals := make([]float64, len(ordered))
	maxVal := math.Inf(-1)
	for i, a := range ordered {
		vals[i] = s.Agent.Value(obs, a) / s.temperature
		if vals[i] > maxVal {
			maxVal = vals[i]
		}
	}
	// Shift by the max before exponentiating to keep the weights finite.
	sum := 0.0
	weights := make([]float64, len(vals))
	for i, v := range vals {
		weights[i] = math.Exp(v - maxVal)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	i, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		return types.Action{}, fmt.Errorf("softmax sampling failed over %d actions: %w",
			len(ordered), types.ErrInvalidArgument)
	}
	return s.Agent.ForceAct(obs, ordered[i]), nil
}
