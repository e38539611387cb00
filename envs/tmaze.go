package envs

import (
	"fmt"

	"github.com/rlmem/gating-rl/types"
	"golang.org/x/exp/rand"
)

// RandomGoal makes the T-maze pick the goal side uniformly at each episode
// start instead of using a fixed side.
const RandomGoal = 0

// SimpleTMaze is a signaled T-maze: a corridor of hallwayLength cells ending
// at a junction with a left and a right exit, one of which hides the goal.
// The goal side is visible as the symbol attribute only at the hint cell
// partway down the corridor; everywhere else the symbol reads 0. Exiting on
// the goal side pays +10, the other side -10, and either ends the episode.
type SimpleTMaze struct {
	hallwayLength int
	hintY         int
	goalX         int // -1, +1, or RandomGoal
	rng           *rand.Rand

	x    int
	y    int
	goal int
	done bool
}

var _ types.Environment = &SimpleTMaze{}

// NewSimpleTMaze builds a T-maze with the hint at corridor position hintY.
// goalX fixes the goal side to -1 or +1; RandomGoal draws it per episode from
// the explicitly seeded per-instance generator.
func NewSimpleTMaze(hallwayLength, hintY, goalX int, seed uint64) (*SimpleTMaze, error) {
	if hallwayLength < 1 {
		return nil, fmt.Errorf("hallway length %d: %w", hallwayLength, types.ErrInvalidArgument)
	}
	if hintY < 0 || hintY > hallwayLength {
		return nil, fmt.Errorf("hint position %d outside corridor of length %d: %w",
			hintY, hallwayLength, types.ErrInvalidArgument)
	}
	if goalX != -1 && goalX != 1 && goalX != RandomGoal {
		return nil, fmt.Errorf("goal side %d: %w", goalX, types.ErrInvalidArgument)
	}
	t := &SimpleTMaze{
		hallwayLength: hallwayLength,
		hintY:         hintY,
		goalX:         goalX,
		rng:           rand.New(rand.NewSource(seed)),
	}
	t.resetEpisode()
	return t, nil
}

func (t *SimpleTMaze) resetEpisode() {
	t.x = 0
	t.y = 0
	t.done = false
	t.goal = t.goalX
	if t.goalX == RandomGoal {
		if t.rng.Intn(2) == 0 {
			t.goal = -1
		} else {
			t.goal = 1
		}
	}
}

func (t *SimpleTMaze) StartNewEpisode() {
	t.resetEpisode()
}

// Goal is the side holding the reward this episode. It is internal state, not
// part of the observation; agents only ever see it through the hint symbol.
func (t *SimpleTMaze) Goal() int {
	return t.goal
}

func (t *SimpleTMaze) symbol() int {
	if t.y == t.hintY {
		return t.goal
	}
	return 0
}

func (t *SimpleTMaze) Observation() *types.State {
	if t.done {
		return types.Terminal
	}
	return types.NewState(map[string]types.Value{
		"x":      types.Int(t.x),
		"y":      types.Int(t.y),
		"symbol": types.Int(t.symbol()),
	})
}

func (t *SimpleTMaze) Actions() []types.Action {
	if t.done {
		return nil
	}
	if t.y < t.hallwayLength {
		return []types.Action{MoveUp}
	}
	return []types.Action{MoveLeft, MoveRight}
}

func (t *SimpleTMaze) React(action types.Action) (float64, error) {
	if t.done {
		return 0, types.ErrInvalidState
	}
	if t.y < t.hallwayLength {
		if action.Name() != "up" {
			return 0, fmt.Errorf("action %s not available in the corridor: %w", action, types.ErrInvalidArgument)
		}
		t.y++
		return -1, nil
	}
	switch action.Name() {
	case "left":
		t.x = -1
	case "right":
		t.x = 1
	default:
		return 0, fmt.Errorf("action %s not available at the junction: %w", action, types.ErrInvalidArgument)
	}
	t.done = true
	if t.x == t.goal {
		return 10, nil
	}
	return -10, nil
}

func (t *SimpleTMaze) Done() bool {
	return t.done
}
