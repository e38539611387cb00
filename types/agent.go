package types

// Agent chooses actions from observations and learns from observed rewards.
// Exploration strategies are layered on top as wrappers holding an inner
// Agent; ForceAct is the hook that keeps the inner agent's bookkeeping
// coherent when a wrapper picks the action itself.
type Agent interface {
	// Act picks an action for the observation from the non-empty action set.
	// An empty action set fails with ErrInvalidArgument.
	Act(obs *State, actions []Action) (Action, error)
	// ForceAct registers an externally chosen (observation, action) pair as
	// the agent's latest decision and returns the action.
	ForceAct(obs *State, action Action) Action
	// Value estimates the value of taking the action at the observation.
	Value(obs *State, action Action) float64
	// BestStoredAction returns the highest-valued action in the set, ties
	// broken by the Action total order. An empty set fails with
	// ErrInvalidArgument.
	BestStoredAction(obs *State, actions []Action) (Action, error)
	// ObserveReward feeds back the reward of the latest decision, together
	// with the observation and action set that followed it. An empty action
	// set marks the episode end.
	ObserveReward(obs *State, reward float64, actions []Action)
}
