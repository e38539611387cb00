package agents

import (
	"errors"
	"math"
	"testing"

	"github.com/rlmem/gating-rl/types"
)

var extract = types.PrefixFeatureExtractor("memory_")

func newLearner(t *testing.T, alpha, gamma float64) *LinearQLearner {
	t.Helper()
	learner, err := NewLinearQLearner(alpha, gamma, extract)
	if err != nil {
		t.Fatalf("NewLinearQLearner: %v", err)
	}
	return learner
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLinearQLearnerTDUpdate(t *testing.T) {
	learner := newLearner(t, 0.5, 0.9)
	obs := types.NewState(map[string]types.Value{"row": types.Int(0)})
	left, right := types.NewAction("left"), types.NewAction("right")

	action, err := learner.Act(obs, []types.Action{right, left})
	if err != nil {
		t.Fatalf("Act: %v", err)
	}
	// All values are zero; the tie breaks to the smallest action.
	if !action.Eq(left) {
		t.Fatalf("expected the tie to break to left, got %s", action)
	}

	next := types.NewState(map[string]types.Value{"row": types.Int(1)})
	learner.ObserveReward(next, 1, []types.Action{left})

	// target = 1 + 0.9*0 = 1, step = 0.5*(1-0) spread over the three
	// features of (obs, left): bias, presence(row), action(left).
	for _, f := range []types.Feature{
		types.Bias(),
		types.Presence("row"),
		types.ActionFeature(left),
	} {
		if w := learner.Weight(f); !approx(w, 0.5) {
			t.Errorf("weight of %s: expected 0.5, got %v", f.Key(), w)
		}
	}
	if w := learner.Weight(types.ActionFeature(right)); w != 0 {
		t.Errorf("untouched action weight should stay 0, got %v", w)
	}
	if v := learner.Value(obs, left); !approx(v, 1.5) {
		t.Errorf("Value(obs, left): expected 1.5, got %v", v)
	}

	// Second decision bootstraps from the stored values:
	// Value(next, left) = bias 0.5 + presence(row) 0.5 + action(left) 0.5.
	if _, err := learner.Act(next, []types.Action{left}); err != nil {
		t.Fatalf("Act: %v", err)
	}
	learner.ObserveReward(types.Terminal, -1, nil)
	// target = -1 (terminal bootstrap 0), previous value 1.5,
	// step = 0.5*(-1-1.5) = -1.25.
	if w := learner.Weight(types.Bias()); !approx(w, 0.5-1.25) {
		t.Errorf("bias weight after terminal update: expected -0.75, got %v", w)
	}
}

func TestLinearQLearnerValueSeparatesActions(t *testing.T) {
	learner := newLearner(t, 1, 0)
	obs := types.NewState(map[string]types.Value{"x": types.Int(0)})
	up := types.NewAction("up")
	gate := types.NewAction("gate", types.P("slot", types.Int(0)), types.P("attribute", types.String("x")))

	learner.ForceAct(obs, up)
	learner.ObserveReward(types.Terminal, -1, nil)
	if v := learner.Value(obs, up); !approx(v, -1) {
		t.Errorf("Value(obs, up): expected -1, got %v", v)
	}
	// The gate action shares the state features but not the action feature.
	if v := learner.Value(obs, gate); approx(v, learner.Value(obs, up)) {
		t.Errorf("distinct actions should have distinct values after an update")
	}
}

func TestLinearQLearnerMemoryContentsSeparateStates(t *testing.T) {
	learner := newLearner(t, 0.5, 0.9)
	up := types.NewAction("up")
	withSignal := types.NewState(map[string]types.Value{"y": types.Int(2), "memory_0": types.Int(-1)})
	without := types.NewState(map[string]types.Value{"y": types.Int(2), "memory_0": types.Null})

	learner.ForceAct(withSignal, up)
	learner.ObserveReward(types.Terminal, 10, nil)

	if v := learner.Value(withSignal, up); !approx(v, learner.Value(withSignal, up)) || v == 0 {
		t.Fatalf("updated value should be non-zero")
	}
	if learner.Value(withSignal, up) == learner.Value(without, up) {
		t.Errorf("distinct memory contents should produce distinct values")
	}
}

func TestLinearQLearnerBestActionDeterministic(t *testing.T) {
	learner := newLearner(t, 0.1, 0.9)
	obs := types.NewState(map[string]types.Value{"row": types.Int(0)})
	actions := []types.Action{
		types.NewAction("up"),
		types.NewAction("right"),
		types.NewAction("down"),
		types.NewAction("left"),
	}
	for i := 0; i < 10; i++ {
		best, err := learner.BestStoredAction(obs, actions)
		if err != nil {
			t.Fatalf("BestStoredAction: %v", err)
		}
		if best.Name() != "down" {
			t.Errorf("tie should break to the smallest action, got %s", best)
		}
	}
}

func TestLinearQLearnerEmptyActions(t *testing.T) {
	learner := newLearner(t, 0.1, 0.9)
	obs := types.NewState(map[string]types.Value{"row": types.Int(0)})
	if _, err := learner.Act(obs, nil); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for an empty action set, got %v", err)
	}
	if _, err := learner.BestStoredAction(obs, nil); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for an empty action set, got %v", err)
	}
}

func TestLinearQLearnerObserveBeforeAct(t *testing.T) {
	learner := newLearner(t, 0.1, 0.9)
	// No decision yet; nothing to update.
	learner.ObserveReward(types.Terminal, 1, nil)
	if len(learner.Snapshot()) != 0 {
		t.Errorf("no weights should exist before the first decision")
	}
}

func TestLinearQLearnerSnapshot(t *testing.T) {
	learner := newLearner(t, 1, 0)
	obs := types.NewState(map[string]types.Value{"memory_0": types.Int(-1)})
	learner.ForceAct(obs, types.NewAction("up"))
	learner.ObserveReward(types.Terminal, 2, nil)

	snapshot := learner.Snapshot()
	want := map[string]float64{
		"_bias":       2,
		"memory_0=-1": 2,
		"action:up":   2,
	}
	if len(snapshot) != len(want) {
		t.Fatalf("expected %d weights, got %v", len(want), snapshot)
	}
	for key, w := range want {
		if !approx(snapshot[key], w) {
			t.Errorf("snapshot[%q]: expected %v, got %v", key, w, snapshot[key])
		}
	}
}

func TestLinearQLearnerInvalidParams(t *testing.T) {
	cases := []struct {
		name         string
		alpha, gamma float64
		extract      types.FeatureExtractor
	}{
		{"zero learning rate", 0, 0.9, extract},
		{"learning rate above one", 1.1, 0.9, extract},
		{"negative discount", 0.1, -0.1, extract},
		{"discount above one", 0.1, 1.1, extract},
		{"nil extractor", 0.1, 0.9, nil},
	}
	for _, c := range cases {
		if _, err := NewLinearQLearner(c.alpha, c.gamma, c.extract); !errors.Is(err, types.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", c.name, err)
		}
	}
}
