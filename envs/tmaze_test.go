package envs

import (
	"errors"
	"testing"

	"github.com/rlmem/gating-rl/types"
)

func tmazeState(x, y, symbol int) *types.State {
	return types.NewState(map[string]types.Value{
		"x":      types.Int(x),
		"y":      types.Int(y),
		"symbol": types.Int(symbol),
	})
}

func TestSimpleTMazeEpisode(t *testing.T) {
	env, err := NewSimpleTMaze(2, 1, -1, 0)
	if err != nil {
		t.Fatalf("NewSimpleTMaze: %v", err)
	}
	env.StartNewEpisode()

	steps := []struct {
		obs     *types.State
		actions []types.Action
		action  types.Action
		reward  float64
	}{
		{tmazeState(0, 0, 0), []types.Action{MoveUp}, MoveUp, -1},
		{tmazeState(0, 1, -1), []types.Action{MoveUp}, MoveUp, -1},
		{tmazeState(0, 2, 0), []types.Action{MoveLeft, MoveRight}, MoveLeft, 10},
	}
	for i, step := range steps {
		if obs := env.Observation(); !obs.Eq(step.obs) {
			t.Fatalf("step %d: expected observation %s, got %s", i, step.obs, obs)
		}
		if got := env.Actions(); !actionSetEq(got, step.actions) {
			t.Fatalf("step %d: expected actions %v, got %v", i, step.actions, got)
		}
		reward, err := env.React(step.action)
		if err != nil {
			t.Fatalf("step %d: React(%s): %v", i, step.action, err)
		}
		if reward != step.reward {
			t.Errorf("step %d: expected reward %v, got %v", i, step.reward, reward)
		}
	}

	if !env.Done() {
		t.Fatalf("episode should end after the junction choice")
	}
	if !env.Observation().Terminal() {
		t.Errorf("expected terminal observation")
	}
	if len(env.Actions()) != 0 {
		t.Errorf("expected no actions after the junction choice")
	}
	if _, err := env.React(MoveUp); !errors.Is(err, types.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState after the episode end, got %v", err)
	}
}

func TestSimpleTMazeExitRewards(t *testing.T) {
	for _, goal := range []int{-1, 1} {
		for _, length := range []int{1, 2, 5} {
			for _, exit := range []types.Action{MoveLeft, MoveRight} {
				env, err := NewSimpleTMaze(length, length-1, goal, 0)
				if err != nil {
					t.Fatalf("NewSimpleTMaze: %v", err)
				}
				env.StartNewEpisode()
				for y := 0; y < length; y++ {
					if _, err := env.React(MoveUp); err != nil {
						t.Fatalf("React(up) at y=%d: %v", y, err)
					}
				}
				reward, err := env.React(exit)
				if err != nil {
					t.Fatalf("React(%s): %v", exit, err)
				}
				matching := (exit.Eq(MoveLeft) && goal == -1) || (exit.Eq(MoveRight) && goal == 1)
				want := 10.0
				if !matching {
					want = -10.0
				}
				if reward != want {
					t.Errorf("goal %d, length %d, exit %s: expected %v, got %v",
						goal, length, exit, want, reward)
				}
				if !env.Done() {
					t.Errorf("junction choice should end the episode")
				}
			}
		}
	}
}

func TestSimpleTMazeCorridorActions(t *testing.T) {
	env, err := NewSimpleTMaze(3, 2, 1, 0)
	if err != nil {
		t.Fatalf("NewSimpleTMaze: %v", err)
	}
	env.StartNewEpisode()
	if _, err := env.React(MoveLeft); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for a junction action in the corridor, got %v", err)
	}
	for y := 0; y < 3; y++ {
		if _, err := env.React(MoveUp); err != nil {
			t.Fatalf("React(up): %v", err)
		}
	}
	if _, err := env.React(MoveUp); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for up at the junction, got %v", err)
	}
}

func TestSimpleTMazeHintSymbol(t *testing.T) {
	env, err := NewSimpleTMaze(4, 2, 1, 0)
	if err != nil {
		t.Fatalf("NewSimpleTMaze: %v", err)
	}
	env.StartNewEpisode()
	for y := 0; y <= 4; y++ {
		obs := env.Observation()
		symbol, _ := obs.Get("symbol")
		want := types.Int(0)
		if y == 2 {
			want = types.Int(1)
		}
		if symbol != want {
			t.Errorf("y=%d: expected symbol %s, got %s", y, want, symbol)
		}
		if y < 4 {
			if _, err := env.React(MoveUp); err != nil {
				t.Fatalf("React(up): %v", err)
			}
		}
	}
}

func TestSimpleTMazeRandomGoalReproducible(t *testing.T) {
	const seed = 8675309
	a, err := NewSimpleTMaze(2, 1, RandomGoal, seed)
	if err != nil {
		t.Fatalf("NewSimpleTMaze: %v", err)
	}
	b, err := NewSimpleTMaze(2, 1, RandomGoal, seed)
	if err != nil {
		t.Fatalf("NewSimpleTMaze: %v", err)
	}
	sawLeft, sawRight := false, false
	for i := 0; i < 50; i++ {
		a.StartNewEpisode()
		b.StartNewEpisode()
		if a.Goal() != b.Goal() {
			t.Fatalf("episode %d: same seed diverged: %d vs %d", i, a.Goal(), b.Goal())
		}
		switch a.Goal() {
		case -1:
			sawLeft = true
		case 1:
			sawRight = true
		default:
			t.Fatalf("episode %d: goal side %d not in {-1, +1}", i, a.Goal())
		}
	}
	if !sawLeft || !sawRight {
		t.Errorf("50 random episodes should cover both goal sides")
	}
}

func TestSimpleTMazeInvalidParams(t *testing.T) {
	cases := []struct {
		name                string
		length, hint, goalX int
	}{
		{"zero length", 0, 0, -1},
		{"hint past junction", 2, 3, -1},
		{"negative hint", 2, -1, -1},
		{"bad goal side", 2, 1, 2},
	}
	for _, c := range cases {
		if _, err := NewSimpleTMaze(c.length, c.hint, c.goalX, 0); !errors.Is(err, types.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", c.name, err)
		}
	}
}
