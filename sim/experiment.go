package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/rlmem/gating-rl/types"
	"github.com/rlmem/gating-rl/util"
)

// Experiment runs a Runner for a number of episodes and collects the traces.
type Experiment struct {
	Name     string
	Episodes int
	runner   *Runner
	runID    string

	Traces  []*types.Trace
	Returns []float64
}

func NewExperiment(name string, runner *Runner, episodes int) *Experiment {
	return &Experiment{
		Name:     name,
		Episodes: episodes,
		runner:   runner,
		runID:    uuid.NewString(),
		Traces:   make([]*types.Trace, 0, episodes),
		Returns:  make([]float64, 0, episodes),
	}
}

func (e *Experiment) Run() error {
	fmt.Printf("Running experiment: %s\n", e.Name)
	for i := 0; i < e.Episodes; i++ {
		fmt.Printf("\rExperiment: %s, Episode: %d/%d", e.Name, i+1, e.Episodes)
		trace, err := e.runner.RunEpisode()
		if err != nil {
			fmt.Println("")
			return fmt.Errorf("episode %d: %w", i, err)
		}
		e.Traces = append(e.Traces, trace)
		e.Returns = append(e.Returns, trace.TotalReward())
	}
	fmt.Println("")
	return nil
}

// RecordTraces appends every collected trace as one JSON line to a file named
// after the experiment and its run ID.
func (e *Experiment) RecordTraces(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	file := path.Join(dir, e.Name+"_"+e.runID+".jsonl")
	for _, trace := range e.Traces {
		bs, err := json.Marshal(trace)
		if err != nil {
			return err
		}
		if err := util.AppendToFile(file, string(bs)); err != nil {
			return err
		}
	}
	return nil
}

// DataSet is an analysis result; its shape is analyzer-specific.
type DataSet interface{}

// Analyzer condenses the traces of an experiment into a DataSet.
type Analyzer func([]*types.Trace) DataSet

// Comparator consumes the named datasets of the compared experiments.
type Comparator func(names []string, datasets []DataSet)

// Comparison runs several experiments and hands their analysis results to a
// comparator.
type Comparison struct {
	Experiments []*Experiment
	analyzer    Analyzer
	comparator  Comparator
}

func NewComparison(analyzer Analyzer, comparator Comparator) *Comparison {
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzer:    analyzer,
		comparator:  comparator,
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) Run() error {
	datasets := make([]DataSet, len(c.Experiments))
	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		if err := e.Run(); err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		datasets[i] = c.analyzer(e.Traces)
		names[i] = e.Name
	}
	c.comparator(names, datasets)
	return nil
}
