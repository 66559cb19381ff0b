// Package main is the entry point for the ticketd CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "ticketd",
		Short:         "Print task slips on a networked thermal receipt printer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.json", "path to the JSON config file")

	root.AddCommand(
		newAgentCmd(&configPath),
		newPrintCmd(&configPath),
		newProbeCmd(&configPath),
	)
	return root
}
