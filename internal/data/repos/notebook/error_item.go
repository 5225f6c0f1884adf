package notebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wrongnotebook/notebook-backend/internal/domain"
	pkgerrors "github.com/wrongnotebook/notebook-backend/internal/pkg/errors"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

// ErrorItemFilter narrows item queries. Zero values match everything.
type ErrorItemFilter struct {
	UserID  uuid.UUID
	Subject string
}

type ErrorItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.ErrorItem) ([]*types.ErrorItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.ErrorItem, error)
	ListKnowledgePoints(ctx context.Context, tx *gorm.DB, filter ErrorItemFilter) ([]*string, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error
}

type errorItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewErrorItemRepo(db *gorm.DB, baseLog *logger.Logger) ErrorItemRepo {
	repoLog := baseLog.With("repo", "ErrorItemRepo")
	return &errorItemRepo{db: db, log: repoLog}
}

func (r *errorItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.ErrorItem) ([]*types.ErrorItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.ErrorItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, fmt.Errorf("create error items: %w", err)
	}
	return items, nil
}

// GetByID returns pkgerrors.ErrNotFound when the item does not exist or
// belongs to another user. A nil userID skips the ownership check.
func (r *errorItemRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.ErrorItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Where("id = ?", id)
	if userID != uuid.Nil {
		q = q.Where("user_id = ?", userID)
	}

	var item types.ErrorItem
	if err := q.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, fmt.Errorf("get error item %s: %w", id, err)
	}
	return &item, nil
}

// ListKnowledgePoints returns the raw knowledge_points column of every
// matching item in creation order, id breaking ties.
func (r *errorItemRepo) ListKnowledgePoints(ctx context.Context, tx *gorm.DB, filter ErrorItemFilter) ([]*string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.ErrorItem{})
	if filter.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Subject != "" {
		q = q.Where("subject = ?", filter.Subject)
	}

	var rows []struct {
		KnowledgePoints *string
	}
	if err := q.Select("knowledge_points").
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list knowledge points: %w", err)
	}

	out := make([]*string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.KnowledgePoints)
	}
	r.log.Debug("Listed knowledge points", "user_id", filter.UserID, "subject", filter.Subject, "count", len(out))
	return out, nil
}

func (r *errorItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	q := transaction.WithContext(ctx).Model(&types.ErrorItem{}).Where("id = ?", id)
	if userID != uuid.Nil {
		q = q.Where("user_id = ?", userID)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update error item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
