package experiments

import (
	"github.com/rlmem/gating-rl/agents"
	"github.com/rlmem/gating-rl/envs"
	"github.com/rlmem/gating-rl/memory"
	"github.com/rlmem/gating-rl/sim"
	"github.com/rlmem/gating-rl/types"
	"github.com/spf13/cobra"
)

// GatedTMazeReward compares the bare T-maze against the memory-augmented one.
// With the hint placed before the junction, only the gated variant can carry
// the signal to the junction choice.
func GatedTMazeReward(hallwayLength, hintY, slots int, gateReward float64) error {
	c := sim.NewComparison(sim.ReturnsAnalyzer, summarizeAndRecord)

	for _, gated := range []bool{false, true} {
		maze, err := envs.NewSimpleTMaze(hallwayLength, hintY, envs.RandomGoal, seed)
		if err != nil {
			return err
		}
		var env types.Environment = maze
		name := "tmaze-bare"
		if gated {
			wrapped, err := memory.NewGatingMemory(maze, slots, gateReward)
			if err != nil {
				return err
			}
			env = wrapped
			name = "tmaze-gated"
		}
		learner, err := newLearner()
		if err != nil {
			return err
		}
		agent, err := agents.NewEpsilonGreedy(learner, exploration, seed)
		if err != nil {
			return err
		}
		runner, err := sim.NewRunner(env, agent, horizon)
		if err != nil {
			return err
		}
		c.AddExperiment(sim.NewExperiment(name, runner, episodes))
	}

	return c.Run()
}

func GatedTMazeCommand() *cobra.Command {
	var hallwayLength int
	var hintY int
	var slots int
	var gateReward float64

	cmd := &cobra.Command{
		Use:   "gated-tmaze",
		Short: "Signaled T-maze with gated scratch memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GatedTMazeReward(hallwayLength, hintY, slots, gateReward)
		},
	}
	cmd.PersistentFlags().IntVar(&hallwayLength, "length", 2, "Length of the corridor")
	cmd.PersistentFlags().IntVar(&hintY, "hint", 1, "Corridor position revealing the goal side")
	cmd.PersistentFlags().IntVar(&slots, "slots", 1, "Number of memory slots")
	cmd.PersistentFlags().Float64Var(&gateReward, "gate-reward", -0.05, "Reward charged per gate action")
	return cmd
}
