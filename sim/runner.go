// Package sim drives agents against environments: episode runner, experiment
// harness and trace analysis.
package sim

import (
	"fmt"

	"github.com/rlmem/gating-rl/types"
)

// Runner drives one agent against one environment following the episode
// protocol: observe, pick an action, react, feed the reward back, until the
// environment terminates or the step horizon is hit.
type Runner struct {
	env     types.Environment
	agent   types.Agent
	horizon int
}

func NewRunner(env types.Environment, agent types.Agent, horizon int) (*Runner, error) {
	if env == nil || agent == nil {
		return nil, fmt.Errorf("nil environment or agent: %w", types.ErrInvalidArgument)
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon %d: %w", horizon, types.ErrInvalidArgument)
	}
	return &Runner{env: env, agent: agent, horizon: horizon}, nil
}

// RunEpisode runs a single episode and returns its trace. Contract
// violations abort the episode with the error and the partial trace.
func (r *Runner) RunEpisode() (*types.Trace, error) {
	r.env.StartNewEpisode()
	trace := types.NewTrace()
	for step := 0; step < r.horizon && !r.env.Done(); step++ {
		obs := r.env.Observation()
		actions := r.env.Actions()
		if len(actions) == 0 {
			break
		}
		action, err := r.agent.Act(obs, actions)
		if err != nil {
			return trace, fmt.Errorf("step %d: act: %w", step, err)
		}
		reward, err := r.env.React(action)
		if err != nil {
			return trace, fmt.Errorf("step %d: react to %s: %w", step, action, err)
		}
		next := r.env.Observation()
		r.agent.ObserveReward(next, reward, r.env.Actions())
		trace.Append(obs, action, reward, next)
	}
	return trace, nil
}
