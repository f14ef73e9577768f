package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToAuthor(authorID string, msgType string, payload interface{})
}
