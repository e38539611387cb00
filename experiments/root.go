// Package experiments wires environments, wrappers and agents into runnable
// command-line experiments.
package experiments

import "github.com/spf13/cobra"

var (
	episodes     int
	horizon      int
	seed         uint64
	learningRate float64
	discountRate float64
	exploration  float64
	resultsDir   string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "gating-rl",
		Short: "Reinforcement-learning experiments with gated scratch memory",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 1000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Step horizon of each episode")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 8675309, "Random seed for every stochastic component")
	rootCommand.PersistentFlags().Float64Var(&learningRate, "learning-rate", 0.1, "Learning rate of the Q learner")
	rootCommand.PersistentFlags().Float64Var(&discountRate, "discount-rate", 0.9, "Discount rate of the Q learner")
	rootCommand.PersistentFlags().Float64Var(&exploration, "exploration", 0.05, "Exploration rate / softmax temperature")
	rootCommand.PersistentFlags().StringVarP(&resultsDir, "results", "s", "results", "Directory for recorded traces and datasets")
	rootCommand.AddCommand(GridCommand())
	rootCommand.AddCommand(TMazeCommand())
	rootCommand.AddCommand(GatedTMazeCommand())
	rootCommand.AddCommand(KnowledgeCommand())
	return rootCommand
}
