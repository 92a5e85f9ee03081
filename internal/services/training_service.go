package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
	"github.com/mhd0331/JinanCampaign/internal/utils"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

// TrainingDocInput creates a training document.
type TrainingDocInput struct {
	Title     string                  `json:"title"     binding:"required,max=255"`
	Content   string                  `json:"content"   binding:"required"`
	Category  domain.TrainingCategory `json:"category"  binding:"required"`
	Tags      []string                `json:"tags"`
	Embedding []float64               `json:"embedding"`
}

// TrainingDocPatch changes a training document; nil means unchanged.
type TrainingDocPatch struct {
	Title     *string                  `json:"title"    binding:"omitempty,max=255"`
	Content   *string                  `json:"content"`
	Category  *domain.TrainingCategory `json:"category"`
	Tags      *[]string                `json:"tags"`
	Embedding *[]float64               `json:"embedding"`
}

// TrainingStats summarizes the active corpus.
type TrainingStats struct {
	TotalDocs   int64            `json:"totalDocs"`
	ByCategory  map[string]int64 `json:"byCategory"`
	LastUpdated *time.Time       `json:"lastUpdated"`
}

// TrainingService manages the documents the assistant is primed with. Every
// write invalidates the training-context cache so the next chat turn sees it.
type TrainingService struct {
	DB    *gorm.DB
	Cache *trainingctx.Cache
}

// List returns active documents, optionally of one category.
func (s *TrainingService) List(ctx context.Context, category string) ([]domain.AiTrainingDoc, error) {
	category = strings.TrimSpace(category)
	if category != "" && !domain.TrainingCategory(category).Valid() {
		return nil, invalid("category must be one of policy, faq, biography, speech")
	}
	return repo.ListTrainingDocs(ctx, s.DB, category)
}

// Create stores an active document.
func (s *TrainingService) Create(ctx context.Context, in TrainingDocInput) (*domain.AiTrainingDoc, error) {
	if err := firstErr(
		requireText("title", &in.Title),
		requireText("content", &in.Content),
	); err != nil {
		return nil, err
	}
	if !in.Category.Valid() {
		return nil, invalid("category must be one of policy, faq, biography, speech")
	}
	d := &domain.AiTrainingDoc{
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      datatypes.JSONSlice[string](cleanTags(in.Tags)),
		Embedding: datatypes.JSONSlice[float64](in.Embedding),
	}
	if err := repo.CreateTrainingDoc(ctx, s.DB, d); err != nil {
		return nil, err
	}
	s.invalidate()
	return d, nil
}

// Update applies p to an active document and returns the result.
func (s *TrainingService) Update(ctx context.Context, id string, p TrainingDocPatch) (*domain.AiTrainingDoc, error) {
	up := patch{}
	if err := firstErr(
		up.text("title", p.Title),
		up.text("content", p.Content),
	); err != nil {
		return nil, err
	}
	if p.Category != nil {
		if !p.Category.Valid() {
			return nil, invalid("category must be one of policy, faq, biography, speech")
		}
		up["category"] = *p.Category
	}
	if p.Tags != nil {
		up["tags"] = datatypes.JSONSlice[string](cleanTags(*p.Tags))
	}
	if p.Embedding != nil {
		up["embedding"] = datatypes.JSONSlice[float64](*p.Embedding)
	}

	if err := repo.UpdateTrainingDoc(ctx, s.DB, id, up); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTrainingDocNotFound
		}
		return nil, err
	}
	s.invalidate()
	d, err := repo.GetTrainingDoc(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTrainingDocNotFound
	}
	return d, err
}

// Delete deactivates a document. It disappears from listings and prompts.
func (s *TrainingService) Delete(ctx context.Context, id string) error {
	if err := repo.DeactivateTrainingDoc(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTrainingDocNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

// Search returns active documents whose content contains q.
func (s *TrainingService) Search(ctx context.Context, q string) ([]domain.AiTrainingDoc, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrEmptyQuery
	}
	return repo.SearchTrainingDocs(ctx, s.DB, q)
}

// Similar ranks active documents by token overlap with q. limit defaults to 5
// and is capped at 20.
func (s *TrainingService) Similar(ctx context.Context, q string, limit int) ([]trainingctx.Match, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	limit = utils.LimitOr(limit, defaultSimilarLimit, maxSimilarLimit)
	if s.Cache == nil {
		docs, err := repo.SearchTrainingDocs(ctx, s.DB, q)
		if err != nil {
			return nil, err
		}
		if len(docs) > limit {
			docs = docs[:limit]
		}
		out := make([]trainingctx.Match, 0, len(docs))
		for _, d := range docs {
			out = append(out, trainingctx.Match{Doc: d})
		}
		return out, nil
	}
	return s.Cache.Similar(ctx, q, limit)
}

// Stats reports the number of active documents per category and the newest
// update time.
func (s *TrainingService) Stats(ctx context.Context) (*TrainingStats, error) {
	total, byCat, last, err := repo.TrainingStats(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return &TrainingStats{TotalDocs: total, ByCategory: byCat, LastUpdated: last}, nil
}

func (s *TrainingService) invalidate() {
	if s.Cache != nil {
		s.Cache.Invalidate()
	}
}

// cleanTags trims tags and drops blanks and duplicates, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
