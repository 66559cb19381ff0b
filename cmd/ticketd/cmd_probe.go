package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newProbeCmd creates the "ticketd probe" subcommand.
func newProbeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check printer reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			_, transport := buildPipeline(cfg)
			res := transport.Probe()
			if !res.Reachable {
				return fmt.Errorf("printer %s:%d unreachable: %s", res.Host, res.Port, res.Detail)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "printer %s:%d reachable\n", res.Host, res.Port)
			return nil
		},
	}
}
