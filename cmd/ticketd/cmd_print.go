package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticketd/internal/model"
)

// newPrintCmd creates the "ticketd print" subcommand for one-shot local
// prints without the job feed.
func newPrintCmd(configPath *string) *cobra.Command {
	var (
		name      string
		priority  string
		due       string
		signature string
		attach    string
		title     string
		items     []string
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a single ticket",
		Long: "Prints one task slip (--name, --due), todolist (--item, repeatable)\n" +
			"or raw image (--image) and exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			content, err := buildContent(name, priority, due, signature, attach, title, items, imagePath)
			if err != nil {
				return err
			}
			if err := content.Validate(); err != nil {
				return err
			}

			pipeline, _ := buildPipeline(cfg)
			job := model.NewPrintJob(content)

			entry, err := pipeline.Execute(context.Background(), job)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "printed %s (%s)\n", entry.Name, entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "task name")
	cmd.Flags().StringVar(&priority, "priority", "medium", "task priority: high, medium, low (or 1-3)")
	cmd.Flags().StringVar(&due, "due", "", "task due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&signature, "signature", "", "operator signature printed on the slip")
	cmd.Flags().StringVar(&attach, "attach", "", "image file embedded below the task slip")
	cmd.Flags().StringVar(&title, "title", "", "todolist title")
	cmd.Flags().StringArrayVar(&items, "item", nil, "todolist item (repeatable)")
	cmd.Flags().StringVar(&imagePath, "image", "", "print an image file as-is")
	return cmd
}

func buildContent(name, priority, due, signature, attach, title string, items []string, imagePath string) (model.TicketContent, error) {
	switch {
	case imagePath != "":
		raw, err := os.ReadFile(imagePath)
		if err != nil {
			return model.TicketContent{}, fmt.Errorf("read image: %w", err)
		}
		return model.TicketContent{Image: &model.RawImage{Bytes: raw}}, nil

	case len(items) > 0:
		return model.TicketContent{Todolist: &model.TodolistTicket{Title: title, Items: items}}, nil

	default:
		prio, err := model.ParsePriority(priority)
		if err != nil {
			return model.TicketContent{}, err
		}
		dueDate, err := parseDue(due)
		if err != nil {
			return model.TicketContent{}, err
		}
		task := &model.TaskTicket{
			Name:              name,
			Priority:          prio,
			DueDate:           dueDate,
			OperatorSignature: signature,
		}
		if attach != "" {
			raw, err := os.ReadFile(attach)
			if err != nil {
				return model.TicketContent{}, fmt.Errorf("read attachment: %w", err)
			}
			task.Attachment = raw
		}
		return model.TicketContent{Task: task}, nil
	}
}

func parseDue(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("task ticket requires --due")
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse due date %q", s)
}
