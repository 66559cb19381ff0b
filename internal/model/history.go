package model

import "time"

// HistoryEntry is created only after a successful print and never mutated.
// It carries the normalized artifact so a reprint replays exactly what went
// to the device, without re-rendering or re-validating the original request.
type HistoryEntry struct {
	ID                string
	Kind              TicketKind
	Name              string
	Priority          Priority
	DueDate           time.Time
	OperatorSignature string
	Items             []string
	ItemCount         int
	ImageOnly         bool
	Artifact          RasterImage
	Preview           string // PNG data URI for the UI, may be empty
	PrintedAt         time.Time
}
