package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ticketd/internal/services"
)

// newAgentCmd creates the "ticketd agent" subcommand.
func newAgentCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "Run the WebSocket job-feed agent",
		Long:  "Connects to the configured job feed and prints incoming tickets\nuntil interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.Agent.WsURL == "" {
				return fmt.Errorf("agent.wsUrl is not configured in %s", *configPath)
			}

			pipeline, _ := buildPipeline(cfg)
			agent := services.NewAgent(cfg.Agent, pipeline, nil)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := agent.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "shutting down")
			return nil
		},
	}
}
