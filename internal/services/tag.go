package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wrongnotebook/notebook-backend/internal/data/repos"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/observability"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
	"github.com/wrongnotebook/notebook-backend/internal/tagstats"
)

type NormalizedAnalysis struct {
	Subject *knowledge.Subject `json:"subject"`
	Tags    []string           `json:"tags"`
}

type GradeInfo struct {
	Grade    int      `json:"grade"`
	Semester int      `json:"semester"`
	Label    string   `json:"label"`
	Tags     []string `json:"tags"`
}

type TagService interface {
	Stats(ctx context.Context, userID uuid.UUID) (tagstats.Result, error)
	Suggestions(ctx context.Context, userID uuid.UUID, query string, existing []string) ([]string, error)
	NormalizeAnalysis(subjectName string, tags []string) NormalizedAnalysis
	UpdateItemKnowledgePoints(ctx context.Context, userID, itemID uuid.UUID, tags []string) ([]string, error)
	CurrentGrade(stage string, enrollmentYear int, now time.Time) (GradeInfo, bool)
}

type tagService struct {
	log        *logger.Logger
	catalog    *knowledge.Catalog
	itemRepo   repos.ErrorItemRepo
	customTags CustomTagService
	metrics    *observability.Metrics
}

// NewTagService wires the tag read paths. A nil catalog means the embedded
// default; nil metrics disables instrumentation.
func NewTagService(log *logger.Logger, catalog *knowledge.Catalog, itemRepo repos.ErrorItemRepo, customTags CustomTagService, metrics *observability.Metrics) TagService {
	serviceLog := log.With("service", "TagService")
	if catalog == nil {
		catalog = knowledge.Default()
	}
	return &tagService{
		log:        serviceLog,
		catalog:    catalog,
		itemRepo:   itemRepo,
		customTags: customTags,
		metrics:    metrics,
	}
}

func (s *tagService) Stats(ctx context.Context, userID uuid.UUID) (tagstats.Result, error) {
	fields, err := s.itemRepo.ListKnowledgePoints(ctx, nil, repos.ErrorItemFilter{UserID: userID})
	if err != nil {
		s.log.Error("Failed to load knowledge points", "user_id", userID, "error", err)
		return tagstats.Result{}, fmt.Errorf("load knowledge points: %w", err)
	}
	return tagstats.ComputeTagStats(fields), nil
}

// Suggestions searches catalog tags, then tags on the user's items, then the
// user's custom tags. The item and custom-tag reads are independent and are
// not taken from one snapshot.
func (s *tagService) Suggestions(ctx context.Context, userID uuid.UUID, query string, existing []string) ([]string, error) {
	var (
		fields []*string
		custom []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fields, err = s.itemRepo.ListKnowledgePoints(gctx, nil, repos.ErrorItemFilter{UserID: userID})
		if err != nil {
			return fmt.Errorf("load knowledge points: %w", err)
		}
		return nil
	})
	if s.customTags != nil {
		g.Go(func() error {
			var err error
			custom, err = s.customTags.AllFlat(gctx, userID)
			if err != nil {
				return fmt.Errorf("load custom tags: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to assemble suggestion pool", "user_id", userID, "error", err)
		return nil, err
	}

	out := tagstats.Suggest(query, existing, s.catalog.AllStandardTags(), tagstats.UsedTags(fields), custom)
	s.metrics.ObserveSuggestions(len(out))
	return out, nil
}

func (s *tagService) normalize(tags []string) []string {
	matched := 0
	for _, t := range tags {
		if s.catalog.IsStandardTag(t) {
			matched++
		}
	}
	s.metrics.ObserveNormalization(matched, len(tags)-matched)
	return s.catalog.NormalizeTags(tags)
}

// NormalizeAnalysis canonicalizes tags produced by the analysis step and
// infers the subject code from its display name. Subject is nil when the
// name matches no known subject.
func (s *tagService) NormalizeAnalysis(subjectName string, tags []string) NormalizedAnalysis {
	out := NormalizedAnalysis{Tags: s.normalize(tags)}
	if subj, ok := knowledge.InferSubject(subjectName); ok {
		out.Subject = &subj
	}
	return out
}

func (s *tagService) UpdateItemKnowledgePoints(ctx context.Context, userID, itemID uuid.UUID, tags []string) ([]string, error) {
	normalized := s.normalize(tags)
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encode knowledge points: %w", err)
	}
	if err := s.itemRepo.UpdateFields(ctx, nil, userID, itemID, map[string]interface{}{
		"knowledge_points": string(raw),
	}); err != nil {
		return nil, err
	}
	s.log.Debug("Updated knowledge points", "item_id", itemID, "count", len(normalized))
	return normalized, nil
}

func (s *tagService) CurrentGrade(stage string, enrollmentYear int, now time.Time) (GradeInfo, bool) {
	grade, ok := knowledge.CalculateGrade(stage, enrollmentYear, now)
	if !ok {
		return GradeInfo{}, false
	}
	semester := knowledge.CurrentSemester(now)
	return GradeInfo{
		Grade:    grade,
		Semester: semester,
		Label:    knowledge.GradeLabel(grade, semester),
		Tags:     s.catalog.MathTagsByGrade(grade, semester),
	}, true
}
