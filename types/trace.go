package types

import "encoding/json"

// Trace of an episode as (observation, action, reward, next observation)
// steps.
type Trace struct {
	observations []*State
	actions      []Action
	rewards      []float64
	nextObs      []*State
}

func NewTrace() *Trace {
	return &Trace{
		observations: make([]*State, 0),
		actions:      make([]Action, 0),
		rewards:      make([]float64, 0),
		nextObs:      make([]*State, 0),
	}
}

func (t *Trace) Append(obs *State, action Action, reward float64, next *State) {
	t.observations = append(t.observations, obs)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextObs = append(t.nextObs, next)
}

func (t *Trace) Len() int {
	return len(t.observations)
}

func (t *Trace) Get(i int) (*State, Action, float64, *State, bool) {
	if i < 0 || i >= len(t.observations) {
		return nil, Action{}, 0, nil, false
	}
	return t.observations[i], t.actions[i], t.rewards[i], t.nextObs[i], true
}

func (t *Trace) Last() (*State, Action, float64, *State, bool) {
	return t.Get(len(t.observations) - 1)
}

// TotalReward is the cumulative reward of the episode.
func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, r := range t.rewards {
		total += r
	}
	return total
}

type traceStep struct {
	Observation *State  `json:"observation"`
	Action      Action  `json:"action"`
	Reward      float64 `json:"reward"`
	Next        *State  `json:"next"`
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	steps := make([]traceStep, len(t.observations))
	for i := range t.observations {
		steps[i] = traceStep{
			Observation: t.observations[i],
			Action:      t.actions[i],
			Reward:      t.rewards[i],
			Next:        t.nextObs[i],
		}
	}
	return json.Marshal(steps)
}
