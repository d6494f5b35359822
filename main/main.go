package main

import (
	"fmt"
	"io"
	"os"

	"github.com/adammck/trot"
	"github.com/adammck/trot/components/refs"
	"github.com/adammck/trot/components/schedule"
	"github.com/adammck/trot/components/solver"
	"github.com/adammck/trot/components/viewer"
	"github.com/adammck/trot/config"
	fake "github.com/adammck/trot/fake/optimizer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "trot",
	Short:         "Plan flying trot contact sequences",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "planning file (default: built-in A1 flying trot)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "show debug logs")

	rootCmd.AddCommand(planCmd, solveCmd, showCmd, watchCmd, configCmd)
}

// loadConfig returns the planning file named by --config, or the defaults.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// newPlanner wires up the stages for a config. The solver is only added if
// solve is true, and the viewer only if w isn't nil.
func newPlanner(c *config.Config, solve bool, w io.Writer) (*trot.Planner, error) {
	params, err := c.Params()
	if err != nil {
		return nil, err
	}

	com, err := c.CoM()
	if err != nil {
		return nil, err
	}

	p := trot.NewPlanner(params)
	p.Add(schedule.New(c.Solver.Dt))
	p.Add(refs.New(com))

	if solve {
		s := solver.New(fake.New(c.Solver.Threads), c.SolverRobot()).WithBarrier(c.Barrier())
		if w != nil {
			s.WithViewer(viewer.New(w))
		}
		p.Add(s)
	}

	if w != nil {
		p.Add(viewer.New(w))
	}

	err = p.Boot()
	if err != nil {
		return nil, err
	}

	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
