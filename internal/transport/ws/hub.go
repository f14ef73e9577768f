package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgGenerationStarted    MessageType = "generation_started"
	MsgGenerationComplete   MessageType = "generation_complete"
	MsgQuestionsRegenerated MessageType = "questions_regenerated"
	MsgDraftComplete        MessageType = "draft_complete"
	MsgError                MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per author. An author may hold several
// connections at once (multiple tabs); broadcasts fan out to all of them.
type Hub struct {
	conns map[string]map[*Connection]bool // authorID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	logger *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	AuthorID string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	AuthorID string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.AuthorID] == nil {
				h.conns[conn.AuthorID] = make(map[*Connection]bool)
			}
			h.conns[conn.AuthorID][conn] = true
			h.logger.Info("author connected", zap.String("authorId", conn.AuthorID))
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.AuthorID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					h.logger.Info("author disconnected", zap.String("authorId", conn.AuthorID))
				}
				if len(conns) == 0 {
					delete(h.conns, conn.AuthorID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.AuthorID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToAuthor sends a message to all of an author's connections
// (implements service.Broadcaster)
func (h *Hub) BroadcastToAuthor(authorID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		AuthorID: authorID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
