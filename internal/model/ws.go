package model

import "encoding/json"

type MessageType string

const (
	MessageTypeRegister    MessageType = "register"
	MessageTypeRegistered  MessageType = "registered"
	MessageTypeUnregister  MessageType = "unregister"
	MessageTypePing        MessageType = "ping"
	MessageTypePong        MessageType = "pong"
	MessageTypeNewTicket   MessageType = "print_ticket"
	MessageTypePrinted     MessageType = "printed"
	MessageTypePrintFailed MessageType = "print_failed"
)

// --- WebSocket Messages ---

type WSMessage struct {
	Type     MessageType     `json:"type"`
	AgentKey string          `json:"agent_key,omitempty"`
	Ticket   json.RawMessage `json:"ticket,omitempty"` // Keep raw to parse into TicketContent
	EntryID  string          `json:"entry_id,omitempty"`
	Error    string          `json:"error,omitempty"`
}
