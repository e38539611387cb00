package envs

import (
	"fmt"

	"github.com/rlmem/gating-rl/types"
)

// Grid movement actions.
var (
	MoveUp    = types.NewAction("up")
	MoveDown  = types.NewAction("down")
	MoveLeft  = types.NewAction("left")
	MoveRight = types.NewAction("right")
)

// Cell is a (row, col) grid position.
type Cell struct {
	Row int
	Col int
}

// GridWorld is a bounded grid navigation task. Every step costs -1 until the
// goal cell is reached, which pays +1 and ends the episode.
//
// Actions returns only the moves that stay inside the grid, but React accepts
// all four names: the advertised set is a hint to agents, and a move into a
// wall clamps to the boundary without changing the position.
type GridWorld struct {
	width  int
	height int
	start  Cell
	goal   Cell

	pos  Cell
	done bool
}

var _ types.Environment = &GridWorld{}

func NewGridWorld(width, height int, start, goal Cell) (*GridWorld, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid dimensions %dx%d: %w", width, height, types.ErrInvalidArgument)
	}
	for _, c := range []struct {
		name string
		cell Cell
	}{{"start", start}, {"goal", goal}} {
		if c.cell.Row < 0 || c.cell.Row >= height || c.cell.Col < 0 || c.cell.Col >= width {
			return nil, fmt.Errorf("%s cell (%d, %d) outside %dx%d grid: %w",
				c.name, c.cell.Row, c.cell.Col, height, width, types.ErrInvalidArgument)
		}
	}
	return &GridWorld{
		width:  width,
		height: height,
		start:  start,
		goal:   goal,
		pos:    start,
	}, nil
}

func (g *GridWorld) StartNewEpisode() {
	g.pos = g.start
	g.done = false
}

func (g *GridWorld) Observation() *types.State {
	if g.done {
		return types.Terminal
	}
	return types.NewState(map[string]types.Value{
		"row": types.Int(g.pos.Row),
		"col": types.Int(g.pos.Col),
	})
}

func (g *GridWorld) Actions() []types.Action {
	if g.done {
		return nil
	}
	actions := make([]types.Action, 0, 4)
	if g.pos.Row > 0 {
		actions = append(actions, MoveUp)
	}
	if g.pos.Row < g.height-1 {
		actions = append(actions, MoveDown)
	}
	if g.pos.Col > 0 {
		actions = append(actions, MoveLeft)
	}
	if g.pos.Col < g.width-1 {
		actions = append(actions, MoveRight)
	}
	return actions
}

func (g *GridWorld) React(action types.Action) (float64, error) {
	if g.done {
		return 0, types.ErrInvalidState
	}
	next := g.pos
	switch action.Name() {
	case "up":
		next.Row = max(0, g.pos.Row-1)
	case "down":
		next.Row = min(g.height-1, g.pos.Row+1)
	case "left":
		next.Col = max(0, g.pos.Col-1)
	case "right":
		next.Col = min(g.width-1, g.pos.Col+1)
	default:
		return 0, fmt.Errorf("unknown grid action %s: %w", action, types.ErrInvalidArgument)
	}
	g.pos = next
	if g.pos == g.goal {
		g.done = true
		return 1, nil
	}
	return -1, nil
}

func (g *GridWorld) Done() bool {
	return g.done
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
