// Package agents provides the linear-approximation Q-learner and the
// exploration wrappers layered on top of it.
package agents

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/rlmem/gating-rl/types"
)

// LinearQLearner learns a linear action-value function over sparse binary
// features. The value of an (observation, action) pair is the sum of weights
// over the observation's extracted features plus an action-identifying
// feature; weights start at zero and grow lazily as new feature keys appear.
type LinearQLearner struct {
	learningRate float64
	discountRate float64
	extract      types.FeatureExtractor

	weights map[types.Feature]float64

	// features of the latest (observation, action) decision, updated by the
	// next ObserveReward
	prevFeatures types.FeatureSet
}

var _ types.Agent = &LinearQLearner{}

func NewLinearQLearner(learningRate, discountRate float64, extract types.FeatureExtractor) (*LinearQLearner, error) {
	if learningRate <= 0 || learningRate > 1 {
		return nil, fmt.Errorf("learning rate %v outside (0, 1]: %w", learningRate, types.ErrInvalidArgument)
	}
	if discountRate < 0 || discountRate > 1 {
		return nil, fmt.Errorf("discount rate %v outside [0, 1]: %w", discountRate, types.ErrInvalidArgument)
	}
	if extract == nil {
		return nil, fmt.Errorf("nil feature extractor: %w", types.ErrInvalidArgument)
	}
	return &LinearQLearner{
		learningRate: learningRate,
		discountRate: discountRate,
		extract:      extract,
		weights:      make(map[types.Feature]float64),
	}, nil
}

// features of an (observation, action) pair: the extracted observation
// features plus the action key. The extractor's set is copied, never mutated.
func (l *LinearQLearner) features(obs *types.State, action types.Action) types.FeatureSet {
	extracted := l.extract(obs)
	set := make(types.FeatureSet, len(extracted)+1)
	for f := range extracted {
		set.Add(f)
	}
	set.Add(types.ActionFeature(action))
	return set
}

func (l *LinearQLearner) valueOf(features types.FeatureSet) float64 {
	total := 0.0
	for f := range features {
		total += l.weights[f]
	}
	return total
}

func (l *LinearQLearner) Value(obs *types.State, action types.Action) float64 {
	return l.valueOf(l.features(obs, action))
}

func (l *LinearQLearner) BestStoredAction(obs *types.State, actions []types.Action) (types.Action, error) {
	if len(actions) == 0 {
		return types.Action{}, fmt.Errorf("best stored action of an empty action set: %w", types.ErrInvalidArgument)
	}
	ordered := make([]types.Action, len(actions))
	copy(ordered, actions)
	types.SortActions(ordered)

	best := ordered[0]
	bestValue := l.Value(obs, best)
	for _, a := range ordered[1:] {
		if v := l.Value(obs, a); v > bestValue {
			best = a
			bestValue = v
		}
	}
	return best, nil
}

func (l *LinearQLearner) Act(obs *types.State, actions []types.Action) (types.Action, error) {
	best, err := l.BestStoredAction(obs, actions)
	if err != nil {
		return types.Action{}, err
	}
	return l.ForceAct(obs, best), nil
}

func (l *LinearQLearner) ForceAct(obs *types.State, action types.Action) types.Action {
	l.prevFeatures = l.features(obs, action)
	return action
}

// ObserveReward performs the one-step temporal-difference update for the
// latest decision: target = reward + discount * max value at obs over
// actions, 0 bootstrap when the action set is empty (terminal).
func (l *LinearQLearner) ObserveReward(obs *types.State, reward float64, actions []types.Action) {
	if l.prevFeatures == nil {
		return
	}
	target := reward
	if len(actions) > 0 {
		best := math.Inf(-1)
		for _, a := range actions {
			if v := l.Value(obs, a); v > best {
				best = v
			}
		}
		target += l.discountRate * best
	}
	step := l.learningRate * (target - l.valueOf(l.prevFeatures))
	for f := range l.prevFeatures {
		l.weights[f] += step
	}
}

// Weight of a single feature, zero if never touched.
func (l *LinearQLearner) Weight(f types.Feature) float64 {
	return l.weights[f]
}

// Snapshot of the weight mapping under canonical feature keys.
func (l *LinearQLearner) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(l.weights))
	for f, w := range l.weights {
		out[f.Key()] = w
	}
	return out
}

func (l *LinearQLearner) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Snapshot())
}
