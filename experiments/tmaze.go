package experiments

import (
	"github.com/rlmem/gating-rl/agents"
	"github.com/rlmem/gating-rl/envs"
	"github.com/rlmem/gating-rl/sim"
	"github.com/spf13/cobra"
)

func TMazeReward(hallwayLength, hintY int) error {
	c := sim.NewComparison(sim.ReturnsAnalyzer, summarizeAndRecord)

	env, err := envs.NewSimpleTMaze(hallwayLength, hintY, envs.RandomGoal, seed)
	if err != nil {
		return err
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
	c.AddExperiment(sim.NewExperiment("tmaze", runner, episodes))

	return c.Run()
}

func TMazeCommand() *cobra.Command {
	var hallwayLength int
	var hintY int

	cmd := &cobra.Command{
		Use:   "tmaze",
		Short: "Signaled T-maze without memory augmentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return TMazeReward(hallwayLength, hintY)
		},
	}
	cmd.PersistentFlags().IntVar(&hallwayLength, "length", 2, "Length of the corridor")
	cmd.PersistentFlags().IntVar(&hintY, "hint", 1, "Corridor position revealing the goal side")
	return cmd
}
