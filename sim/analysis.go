package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/rlmem/gating-rl/types"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// ReturnsDataSet is the per-episode return curve of an experiment.
type ReturnsDataSet struct {
	Returns []float64
	Steps   []int
}

var _ plotter.XYer = &ReturnsDataSet{}

func (d *ReturnsDataSet) Len() int {
	return len(d.Returns)
}

func (d *ReturnsDataSet) XY(i int) (float64, float64) {
	return float64(i), d.Returns[i]
}

// Summary is the mean and standard deviation of the returns.
func (d *ReturnsDataSet) Summary() (mean, stddev float64) {
	if len(d.Returns) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(d.Returns, nil)
}

// ReturnsAnalyzer condenses traces into their return curve.
func ReturnsAnalyzer(traces []*types.Trace) DataSet {
	dataSet := &ReturnsDataSet{
		Returns: make([]float64, len(traces)),
		Steps:   make([]int, len(traces)),
	}
	for i, trace := range traces {
		dataSet.Returns[i] = trace.TotalReward()
		dataSet.Steps[i] = trace.Len()
	}
	return dataSet
}

// JSONComparator writes every dataset to <dir>/<name>.json. Write failures
// are reported, not swallowed.
func JSONComparator(dir string) Comparator {
	return func(names []string, datasets []DataSet) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			fmt.Fprintf(os.Stderr, "record datasets: %v\n", err)
			return
		}
		for i := range names {
			bs, err := json.Marshal(datasets[i])
			if err == nil {
				err = os.WriteFile(path.Join(dir, names[i]+".json"), bs, 0644)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "record dataset %s: %v\n", names[i], err)
			}
		}
	}
}
