// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command replica is the demo wiring for the DA/Quorum sequencing core: it
// stands up a small in-process committee and drives one DA view followed
// by one Quorum view, logging each stage and printing a one-line summary.
// Grounded on the teacher's cmd/consensus cobra layout (see cmd/run.go).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "replica",
	Short: "Demo wiring for the daseq DA/Quorum sequencing core",
	Long: `replica stands up a small committee in-process and drives a single
DA view followed by a single Quorum view end to end: membership, vote
accumulation, certificate formation, and leaf construction all run for
real, against an in-memory transport and storage layer.`,
}

func main() {
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single DA view followed by a single Quorum view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a ReplicaConfig YAML file (defaults to a built-in 4-node committee)")
	return cmd
}
