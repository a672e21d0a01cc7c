package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/types"
)

// TargetService owns target mutations. Each one finishes with a category
// and day recompute inside the same transaction, so a committed write is
// never observable with stale scores.
type TargetService interface {
	Create(ctx context.Context, dayID, categoryID, importanceID uuid.UUID, name string) (*types.Target, error)
	Update(ctx context.Context, dayID, targetID uuid.UUID, name *string, importanceID *uuid.UUID) (*types.Target, error)
	ToggleAchievement(ctx context.Context, dayID, targetID uuid.UUID) (*types.Target, error)
	SoftDelete(ctx context.Context, dayID, targetID uuid.UUID) error
	HardDelete(ctx context.Context, dayID, targetID uuid.UUID) error
}

type targetService struct {
	db             *gorm.DB
	log            *logger.Logger
	dayRepo        repos.DayRepo
	categoryRepo   repos.CategoryRepo
	targetRepo     repos.TargetRepo
	importanceRepo repos.ImportanceLevelRepo
	scoreService   ScoreService
}

func NewTargetService(db *gorm.DB, log *logger.Logger, dayRepo repos.DayRepo, categoryRepo repos.CategoryRepo, targetRepo repos.TargetRepo, importanceRepo repos.ImportanceLevelRepo, scoreService ScoreService) TargetService {
	return &targetService{
		db:             db,
		log:            log.With("service", "TargetService"),
		dayRepo:        dayRepo,
		categoryRepo:   categoryRepo,
		targetRepo:     targetRepo,
		importanceRepo: importanceRepo,
		scoreService:   scoreService,
	}
}

func (s *targetService) Create(ctx context.Context, dayID, categoryID, importanceID uuid.UUID, name string) (*types.Target, error) {
	cleaned, err := cleanName("name", name)
	if err != nil {
		return nil, err
	}

	var out *types.Target
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		category, err := s.categoryRepo.GetByID(dbc, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return &types.NotFoundError{Resource: "category"}
		}
		if category.DayID != dayID {
			return &types.ScopeError{Resource: "category"}
		}
		level, err := s.importanceRepo.GetByID(dbc, importanceID)
		if err != nil {
			return err
		}
		if level == nil {
			return &types.NotFoundError{Resource: "importance level"}
		}

		target := &types.Target{
			CategoryID:   categoryID,
			ImportanceID: importanceID,
			Name:         cleaned,
		}
		if err := s.targetRepo.Create(dbc, target); err != nil {
			return err
		}
		if err := s.recompute(dbc, categoryID, dayID); err != nil {
			return err
		}
		out, err = s.targetRepo.GetByID(dbc, target.ID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *targetService) Update(ctx context.Context, dayID, targetID uuid.UUID, name *string, importanceID *uuid.UUID) (*types.Target, error) {
	updates := map[string]interface{}{}
	if name != nil {
		cleaned, err := cleanName("name", *name)
		if err != nil {
			return nil, err
		}
		updates["name"] = cleaned
	}

	var out *types.Target
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		target, err := s.resolveScoped(dbc, dayID, targetID)
		if err != nil {
			return err
		}
		if importanceID != nil {
			level, err := s.importanceRepo.GetByID(dbc, *importanceID)
			if err != nil {
				return err
			}
			if level == nil {
				return &types.NotFoundError{Resource: "importance level"}
			}
			updates["importance_id"] = *importanceID
		}
		if len(updates) == 0 {
			out = target
			return nil
		}

		if err := s.targetRepo.UpdateFields(dbc, targetID, updates); err != nil {
			return err
		}
		if err := s.recompute(dbc, target.CategoryID, dayID); err != nil {
			return err
		}
		out, err = s.targetRepo.GetByID(dbc, targetID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *targetService) ToggleAchievement(ctx context.Context, dayID, targetID uuid.UUID) (*types.Target, error) {
	var out *types.Target
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		target, err := s.resolveScoped(dbc, dayID, targetID)
		if err != nil {
			return err
		}
		if err := s.targetRepo.UpdateFields(dbc, targetID, map[string]interface{}{
			"is_achieved": !target.IsAchieved,
		}); err != nil {
			return err
		}
		if err := s.recompute(dbc, target.CategoryID, dayID); err != nil {
			return err
		}
		out, err = s.targetRepo.GetByID(dbc, targetID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *targetService) SoftDelete(ctx context.Context, dayID, targetID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		target, err := s.resolveScoped(dbc, dayID, targetID)
		if err != nil {
			return err
		}
		if err := s.targetRepo.SoftDeleteByID(dbc, target.ID); err != nil {
			return err
		}
		return s.recompute(dbc, target.CategoryID, dayID)
	})
}

func (s *targetService) HardDelete(ctx context.Context, dayID, targetID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		target, err := s.resolveScoped(dbc, dayID, targetID)
		if err != nil {
			return err
		}
		if err := s.targetRepo.FullDeleteByID(dbc, target.ID); err != nil {
			return err
		}
		return s.recompute(dbc, target.CategoryID, dayID)
	})
}

// resolveScoped loads a live target and checks that it sits on the
// addressed day via its category.
func (s *targetService) resolveScoped(dbc dbctx.Context, dayID, targetID uuid.UUID) (*types.Target, error) {
	target, err := s.targetRepo.GetByID(dbc, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &types.NotFoundError{Resource: "target"}
	}
	category, err := s.categoryRepo.GetByID(dbc, target.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.DayID != dayID {
		return nil, &types.ScopeError{Resource: "target"}
	}
	return target, nil
}

func (s *targetService) recompute(dbc dbctx.Context, categoryID, dayID uuid.UUID) error {
	if err := s.scoreService.RecalculateCategory(dbc, categoryID); err != nil {
		return err
	}
	return s.scoreService.RecalculateDay(dbc, dayID)
}
