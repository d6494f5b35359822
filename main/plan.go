package main

import (
	"context"
	"os"

	"github.com/adammck/trot/components/viewer"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and print the contact timeline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(ctx(cmd), false)
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Build the timeline and hand it to the optimizer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(ctx(cmd), true)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Step through the planned knots interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		p, err := newPlanner(c, false, nil)
		if err != nil {
			return err
		}

		plan, err := p.Run(ctx(cmd))
		if err != nil {
			return err
		}

		return viewer.Show(plan)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective planning file",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := c.Marshal()
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(data)
		return err
	},
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func run(c context.Context, solve bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPlanner(cfg, solve, os.Stdout)
	if err != nil {
		return err
	}

	_, err = p.Run(c)
	return err
}
