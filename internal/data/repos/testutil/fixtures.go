package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wrongnotebook/notebook-backend/internal/domain"
)

// SeedErrorItem inserts an item whose created_at is base + offset so tests
// control ordering.
func SeedErrorItem(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string, knowledgePoints *string, offset time.Duration) *types.ErrorItem {
	tb.Helper()
	base := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)
	item := &types.ErrorItem{
		ID:              uuid.New(),
		UserID:          userID,
		Subject:         subject,
		QuestionText:    "q",
		KnowledgePoints: knowledgePoints,
		CreatedAt:       base.Add(offset),
	}
	if err := tx.WithContext(ctx).Create(item).Error; err != nil {
		tb.Fatalf("seed error item: %v", err)
	}
	return item
}
