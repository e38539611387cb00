package experiments

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/rlmem/gating-rl/agents"
	"github.com/rlmem/gating-rl/envs"
	"github.com/rlmem/gating-rl/memory"
	"github.com/rlmem/gating-rl/sim"
	"github.com/rlmem/gating-rl/types"
	"github.com/spf13/cobra"
)

func newLearner() (*agents.LinearQLearner, error) {
	return agents.NewLinearQLearner(learningRate, discountRate,
		types.PrefixFeatureExtractor(memory.SlotPrefix))
}

// printSummaries reports the mean return of each compared experiment.
func printSummaries(names []string, datasets []sim.DataSet) {
	for i, name := range names {
		dataSet := datasets[i].(*sim.ReturnsDataSet)
		mean, stddev := dataSet.Summary()
		fmt.Printf("%s: mean return %s (stddev %.2f) over %d episodes\n",
			aurora.Bold(name), aurora.Green(fmt.Sprintf("%.2f", mean)), stddev, dataSet.Len())
	}
}

func summarizeAndRecord(names []string, datasets []sim.DataSet) {
	printSummaries(names, datasets)
	sim.JSONComparator(resultsDir)(names, datasets)
}

func GridReward(width, height int, start, goal envs.Cell) error {
	c := sim.NewComparison(sim.ReturnsAnalyzer, summarizeAndRecord)

	for _, setup := range []struct {
		name string
		wrap func(types.Agent) (types.Agent, error)
	}{
		{"grid-epsilon-greedy", func(a types.Agent) (types.Agent, error) {
			return agents.NewEpsilonGreedy(a, exploration, seed)
		}},
		{"grid-softmax", func(a types.Agent) (types.Agent, error) {
			return agents.NewSoftmax(a, 0.5, seed)
		}},
	} {
		env, err := envs.NewGridWorld(width, height, start, goal)
		if err != nil {
			return err
		}
		learner, err := newLearner()
		if err != nil {
			return err
		}
		agent, err := setup.wrap(learner)
		if err != nil {
			return err
		}
		runner, err := sim.NewRunner(env, agent, horizon)
		if err != nil {
			return err
		}
		c.AddExperiment(sim.NewExperiment(setup.name, runner, episodes))
	}

	return c.Run()
}

func GridCommand() *cobra.Command {
	var width int
	var height int
	var goalRow int
	var goalCol int

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Grid navigation with epsilon-greedy and softmax exploration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GridReward(width, height, envs.Cell{Row: 0, Col: 0}, envs.Cell{Row: goalRow, Col: goalCol})
		},
	}
	cmd.PersistentFlags().IntVar(&width, "width", 5, "Width of the grid")
	cmd.PersistentFlags().IntVar(&height, "height", 5, "Height of the grid")
	cmd.PersistentFlags().IntVar(&goalRow, "goal-row", 4, "Row of the goal cell")
	cmd.PersistentFlags().IntVar(&goalCol, "goal-col", 4, "Column of the goal cell")
	return cmd
}
