package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Ticket Structures ---

type TicketKind string

const (
	TicketKindTask     TicketKind = "task"
	TicketKindTodolist TicketKind = "todolist"
	TicketKindImage    TicketKind = "image"
)

// Priority uses the 1..3 numbering the slips are printed with: 1 is the
// most urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "HIGH PRIORITY"
	case PriorityLow:
		return "LOW PRIORITY"
	default:
		return "MEDIUM PRIORITY"
	}
}

func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// ParsePriority accepts both the numeric form used on the wire and the
// spelled-out form used on the command line.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "1", "high", "HIGH":
		return PriorityHigh, nil
	case "2", "medium", "MEDIUM", "":
		return PriorityMedium, nil
	case "3", "low", "LOW":
		return PriorityLow, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

type TaskTicket struct {
	Name              string    `json:"name"`
	Priority          Priority  `json:"priority"`
	DueDate           time.Time `json:"dueDate"`
	OperatorSignature string    `json:"operatorSignature,omitempty"`
	Attachment        []byte    `json:"attachment,omitempty"` // optional image shown below the slip
}

type TodolistTicket struct {
	Title string   `json:"title,omitempty"`
	Items []string `json:"items"`
}

type RawImage struct {
	Bytes  []byte `json:"bytes"`
	Format string `json:"format,omitempty"`
}

// TicketContent is a tagged union: exactly one field is non-nil per job.
type TicketContent struct {
	Task     *TaskTicket     `json:"task,omitempty"`
	Todolist *TodolistTicket `json:"todolist,omitempty"`
	Image    *RawImage       `json:"image,omitempty"`
}

func (c TicketContent) Kind() TicketKind {
	switch {
	case c.Task != nil:
		return TicketKindTask
	case c.Todolist != nil:
		return TicketKindTodolist
	default:
		return TicketKindImage
	}
}

// Validate enforces the content invariants. The web layer validates before
// constructing a job; the agent path revalidates payloads from the wire.
func (c TicketContent) Validate() error {
	set := 0
	if c.Task != nil {
		set++
	}
	if c.Todolist != nil {
		set++
	}
	if c.Image != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("ticket content must have exactly one variant, got %d", set)
	}
	switch {
	case c.Task != nil:
		if c.Task.Name == "" {
			return fmt.Errorf("task ticket requires a name")
		}
		if c.Task.DueDate.IsZero() {
			return fmt.Errorf("task ticket requires a due date")
		}
		if !c.Task.Priority.Valid() {
			return fmt.Errorf("task ticket priority %d out of range", c.Task.Priority)
		}
	case c.Todolist != nil:
		if len(c.Todolist.Items) == 0 {
			return fmt.Errorf("todolist ticket requires at least one item")
		}
		for i, item := range c.Todolist.Items {
			if item == "" {
				return fmt.Errorf("todolist item %d is empty", i)
			}
		}
	case c.Image != nil:
		if len(c.Image.Bytes) == 0 {
			return fmt.Errorf("image ticket has no bytes")
		}
	}
	return nil
}

// PrintJob is immutable once created; the orchestrator owns it until it is
// either recorded as a HistoryEntry or discarded on failure.
type PrintJob struct {
	ID        string
	Content   TicketContent
	CreatedAt time.Time
}

func NewPrintJob(content TicketContent) PrintJob {
	return PrintJob{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: time.Now(),
	}
}
