package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ticketd/internal/model"
)

const reconnectDelay = 5 * time.Second

// --- WebSocket Agent Logic ---

// Agent keeps a WebSocket connection to the job feed, runs incoming
// tickets through the pipeline, and reports the outcome.
type Agent struct {
	cfg      model.AgentConfig
	pipeline *Pipeline
	logger   *slog.Logger
}

func NewAgent(cfg model.AgentConfig, pipeline *Pipeline, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{cfg: cfg, pipeline: pipeline, logger: logger}
}

// Run dials the feed and processes messages until ctx is cancelled,
// reconnecting after a short delay on any drop.
func (a *Agent) Run(ctx context.Context) error {
	header := http.Header{}
	header.Add("X-Api-Key", a.cfg.APIKey)

	a.logger.Info("connecting to job feed", "url", a.cfg.WsURL)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, a.cfg.WsURL, header)
		if err != nil {
			a.logger.Warn("connection failed, retrying", "error", err, "delay", reconnectDelay)
			if !sleepCtx(ctx, reconnectDelay) {
				return ctx.Err()
			}
			continue
		}

		a.logger.Info("connected to job feed")
		a.handleConnection(ctx, conn)
		conn.Close()

		a.logger.Info("disconnected, reconnecting", "delay", reconnectDelay)
		if !sleepCtx(ctx, reconnectDelay) {
			return ctx.Err()
		}
	}
}

func (a *Agent) handleConnection(ctx context.Context, conn *websocket.Conn) {
	regMsg := model.WSMessage{
		Type:     model.MessageTypeRegister,
		AgentKey: a.cfg.AgentKey,
	}
	if err := conn.WriteJSON(regMsg); err != nil {
		a.logger.Warn("failed to send register", "error", err)
		return
	}

	// Close the socket when ctx ends so the blocking read below returns.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg model.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			a.logger.Warn("read error", "error", err)
			return
		}

		switch msg.Type {
		case model.MessageTypeRegistered:
			a.logger.Info("registered with job feed")

		case model.MessageTypePing:
			conn.WriteJSON(model.WSMessage{Type: model.MessageTypePong, AgentKey: a.cfg.AgentKey})

		case model.MessageTypeNewTicket:
			a.handleTicket(ctx, conn, msg.Ticket)

		case model.MessageTypeUnregister:
			a.logger.Info("job feed requested unregister")
			return

		default:
			a.logger.Warn("unknown message type", "type", msg.Type)
		}
	}
}

func (a *Agent) handleTicket(ctx context.Context, conn *websocket.Conn, raw json.RawMessage) {
	var content model.TicketContent
	if err := json.Unmarshal(raw, &content); err != nil {
		a.reportFailure(conn, "", "parse ticket: "+err.Error())
		return
	}
	if err := content.Validate(); err != nil {
		a.reportFailure(conn, "", err.Error())
		return
	}

	job := model.NewPrintJob(content)
	entry, err := a.pipeline.Execute(ctx, job)
	if err != nil {
		a.logger.Warn("print failed", "job", job.ID, "error", err)
		a.reportFailure(conn, job.ID, err.Error())
		return
	}

	ack := model.WSMessage{
		Type:     model.MessageTypePrinted,
		AgentKey: a.cfg.AgentKey,
		EntryID:  entry.ID,
	}
	if err := conn.WriteJSON(ack); err != nil {
		a.logger.Warn("failed to send printed ack", "error", err)
	}
}

func (a *Agent) reportFailure(conn *websocket.Conn, jobID, detail string) {
	msg := model.WSMessage{
		Type:     model.MessageTypePrintFailed,
		AgentKey: a.cfg.AgentKey,
		EntryID:  jobID,
		Error:    detail,
	}
	if err := conn.WriteJSON(msg); err != nil {
		a.logger.Warn("failed to send print_failed", "error", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
