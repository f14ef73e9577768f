package service

import (
	"context"

	"go.uber.org/zap"

	"bookforge/internal/model"
	"bookforge/internal/repository"
)

// AuditService writes author-visible actions to the audit log and mirrors
// them to the structured logger. Audit failures are logged, never propagated:
// a broken audit trail must not fail the action it describes.
type AuditService struct {
	repo   repository.AuditRepo
	logger *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditRepo, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record persists one audit entry
func (s *AuditService) Record(ctx context.Context, actorID, action, bookID, chapterID string, details map[string]interface{}) {
	entry := &model.AuditEntry{
		ActorID:   actorID,
		Action:    action,
		BookID:    bookID,
		ChapterID: chapterID,
		Details:   details,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error("audit insert failed",
			zap.String("action", action),
			zap.String("actorId", actorID),
			zap.Error(err))
		return
	}
	s.logger.Info("audit",
		zap.String("action", action),
		zap.String("actorId", actorID),
		zap.String("bookId", bookID),
		zap.String("chapterId", chapterID))
}

// Recent returns the latest audit entries for a book
func (s *AuditService) Recent(ctx context.Context, bookID string, limit int) ([]model.AuditEntry, error) {
	return s.repo.GetRecent(ctx, bookID, limit)
}
