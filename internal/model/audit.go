package model

import "time"

// AuditEntry records one author-visible action for the audit trail
type AuditEntry struct {
	ID        string                 `json:"id" bson:"_id,omitempty"`
	ActorID   string                 `json:"actorId" bson:"actorId"`
	Action    string                 `json:"action" bson:"action"` // e.g. "questions.generate"
	BookID    string                 `json:"bookId,omitempty" bson:"bookId,omitempty"`
	ChapterID string                 `json:"chapterId,omitempty" bson:"chapterId,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}
