package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/types"
)

// ImportanceService manages the global weight registry. Any write that can
// move the global maximum fans out a recompute across every live day
// before its transaction commits.
type ImportanceService interface {
	List(ctx context.Context) ([]*types.ImportanceLevel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.ImportanceLevel, error)
	Create(ctx context.Context, label string, score int) (*types.ImportanceLevel, error)
	Update(ctx context.Context, id uuid.UUID, label *string, score *int) (*types.ImportanceLevel, error)
	// UpsertByLabel creates the level or moves its score, matching the
	// label case-insensitively. Seeding runs through here.
	UpsertByLabel(ctx context.Context, label string, score int) (*types.ImportanceLevel, error)
	// Delete removes a level outright, but only when no live target
	// references it; otherwise it fails naming the reference count.
	Delete(ctx context.Context, id uuid.UUID) error
}

type importanceService struct {
	db             *gorm.DB
	log            *logger.Logger
	importanceRepo repos.ImportanceLevelRepo
	targetRepo     repos.TargetRepo
	scoreService   ScoreService
}

func NewImportanceService(db *gorm.DB, log *logger.Logger, importanceRepo repos.ImportanceLevelRepo, targetRepo repos.TargetRepo, scoreService ScoreService) ImportanceService {
	return &importanceService{
		db:             db,
		log:            log.With("service", "ImportanceService"),
		importanceRepo: importanceRepo,
		targetRepo:     targetRepo,
		scoreService:   scoreService,
	}
}

func (s *importanceService) List(ctx context.Context) ([]*types.ImportanceLevel, error) {
	return s.importanceRepo.List(dbctx.New(ctx))
}

func (s *importanceService) GetByID(ctx context.Context, id uuid.UUID) (*types.ImportanceLevel, error) {
	level, err := s.importanceRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, &types.NotFoundError{Resource: "importance level"}
	}
	return level, nil
}

func (s *importanceService) Create(ctx context.Context, label string, score int) (*types.ImportanceLevel, error) {
	cleaned, err := cleanName("label", label)
	if err != nil {
		return nil, err
	}
	if err := validateImportanceScore(score); err != nil {
		return nil, err
	}

	var out *types.ImportanceLevel
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		taken, err := s.importanceRepo.LabelTaken(dbc, cleaned, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return &types.ValidationError{Field: "label", Message: fmt.Sprintf("an importance level labeled %q already exists", cleaned)}
		}

		level := &types.ImportanceLevel{Label: cleaned, Score: score}
		if err := s.importanceRepo.Create(dbc, level); err != nil {
			return err
		}
		// A new level can raise the global max, which feeds every
		// category ceiling in the system.
		if err := s.scoreService.RecalculateAllDays(dbc); err != nil {
			return err
		}
		out = level
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *importanceService) Update(ctx context.Context, id uuid.UUID, label *string, score *int) (*types.ImportanceLevel, error) {
	updates := map[string]interface{}{}
	if label != nil {
		cleaned, err := cleanName("label", *label)
		if err != nil {
			return nil, err
		}
		updates["label"] = cleaned
	}
	if score != nil {
		if err := validateImportanceScore(*score); err != nil {
			return nil, err
		}
	}

	var out *types.ImportanceLevel
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		level, err := s.importanceRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if level == nil {
			return &types.NotFoundError{Resource: "importance level"}
		}

		if name, ok := updates["label"].(string); ok && name != level.Label {
			taken, err := s.importanceRepo.LabelTaken(dbc, name, id)
			if err != nil {
				return err
			}
			if taken {
				return &types.ValidationError{Field: "label", Message: fmt.Sprintf("an importance level labeled %q already exists", name)}
			}
		}

		scoreChanged := score != nil && *score != level.Score
		if score != nil {
			updates["score"] = *score
		}
		if len(updates) == 0 {
			out = level
			return nil
		}

		if err := s.importanceRepo.UpdateFields(dbc, id, updates); err != nil {
			return err
		}
		// Only a weight change touches score inputs; a relabel does not.
		if scoreChanged {
			if err := s.scoreService.RecalculateAllDays(dbc); err != nil {
				return err
			}
		}
		out, err = s.importanceRepo.GetByID(dbc, id)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *importanceService) UpsertByLabel(ctx context.Context, label string, score int) (*types.ImportanceLevel, error) {
	cleaned, err := cleanName("label", label)
	if err != nil {
		return nil, err
	}
	if err := validateImportanceScore(score); err != nil {
		return nil, err
	}

	var out *types.ImportanceLevel
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := s.importanceRepo.GetByLabel(dbc, cleaned)
		if err != nil {
			return err
		}
		if existing == nil {
			level := &types.ImportanceLevel{Label: cleaned, Score: score}
			if err := s.importanceRepo.Create(dbc, level); err != nil {
				return err
			}
			if err := s.scoreService.RecalculateAllDays(dbc); err != nil {
				return err
			}
			out = level
			return nil
		}
		if existing.Score == score {
			out = existing
			return nil
		}
		if err := s.importanceRepo.UpdateFields(dbc, existing.ID, map[string]interface{}{"score": score}); err != nil {
			return err
		}
		if err := s.scoreService.RecalculateAllDays(dbc); err != nil {
			return err
		}
		out, err = s.importanceRepo.GetByID(dbc, existing.ID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *importanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		level, err := s.importanceRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if level == nil {
			return &types.NotFoundError{Resource: "importance level"}
		}

		n, err := s.targetRepo.CountByImportanceID(dbc, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &types.ImportanceInUseError{Label: level.Label, Count: n}
		}

		if err := s.importanceRepo.FullDeleteByID(dbc, id); err != nil {
			return err
		}
		// Deleting the heaviest level lowers the global max, so every
		// ceiling must come down with it.
		return s.scoreService.RecalculateAllDays(dbc)
	})
}
