package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/wrongnotebook/notebook-backend/internal/customtags"
	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/observability"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

// CustomTagService gives each user their own custom-tag store.
type CustomTagService interface {
	Get(ctx context.Context, userID uuid.UUID) (customtags.Data, error)
	Add(ctx context.Context, userID uuid.UUID, subject knowledge.Subject, name, category string) (bool, error)
	Remove(ctx context.Context, userID uuid.UUID, subject knowledge.Subject, name string) (bool, error)
	AllFlat(ctx context.Context, userID uuid.UUID) ([]string, error)
	Export(ctx context.Context, userID uuid.UUID) (string, error)
	Import(ctx context.Context, userID uuid.UUID, jsonText string) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (customtags.Stats, error)
}

type customTagService struct {
	log     *logger.Logger
	kv      kv.Store
	metrics *observability.Metrics
}

func NewCustomTagService(log *logger.Logger, store kv.Store, metrics *observability.Metrics) CustomTagService {
	return &customTagService{log: log.With("service", "CustomTagService"), kv: store, metrics: metrics}
}

// UserNamespace is the key prefix holding one user's blobs.
func UserNamespace(userID uuid.UUID) string {
	if userID == uuid.Nil {
		return "user:anonymous"
	}
	return "user:" + userID.String()
}

func (s *customTagService) store(userID uuid.UUID) *customtags.Store {
	return customtags.NewStore(s.log.With("user_id", userID), kv.Namespace(s.kv, UserNamespace(userID)))
}

func (s *customTagService) Get(ctx context.Context, userID uuid.UUID) (customtags.Data, error) {
	return s.store(userID).Get(ctx)
}

func (s *customTagService) Add(ctx context.Context, userID uuid.UUID, subject knowledge.Subject, name, category string) (bool, error) {
	ok, err := s.store(userID).Add(ctx, subject, name, category)
	if err == nil {
		s.metrics.IncCustomTagWrite("add", ok)
	}
	return ok, err
}

func (s *customTagService) Remove(ctx context.Context, userID uuid.UUID, subject knowledge.Subject, name string) (bool, error) {
	ok, err := s.store(userID).Remove(ctx, subject, name)
	if err == nil {
		s.metrics.IncCustomTagWrite("remove", ok)
	}
	return ok, err
}

func (s *customTagService) AllFlat(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.store(userID).AllFlat(ctx)
}

func (s *customTagService) Export(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.store(userID).Export(ctx)
}

func (s *customTagService) Import(ctx context.Context, userID uuid.UUID, jsonText string) (bool, error) {
	ok, err := s.store(userID).Import(ctx, jsonText)
	if err == nil {
		s.metrics.IncCustomTagWrite("import", ok)
	}
	return ok, err
}

func (s *customTagService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store(userID).Clear(ctx); err != nil {
		return err
	}
	s.metrics.IncCustomTagWrite("clear", true)
	return nil
}

func (s *customTagService) Stats(ctx context.Context, userID uuid.UUID) (customtags.Stats, error) {
	return s.store(userID).Stats(ctx)
}
