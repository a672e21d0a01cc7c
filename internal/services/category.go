package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/types"
)

// CategoryService owns category mutations. Every operation is scoped to a
// day: acting on a category that belongs to a different day is rejected
// before anything is written.
type CategoryService interface {
	Create(ctx context.Context, dayID uuid.UUID, name, description string) (*types.Category, error)
	Update(ctx context.Context, dayID, categoryID uuid.UUID, name, description string) (*types.Category, error)
	// SoftDelete tombstones the category and all its live targets as one
	// operation, then brings the day's scores up to date.
	SoftDelete(ctx context.Context, dayID, categoryID uuid.UUID) error
	HardDelete(ctx context.Context, dayID, categoryID uuid.UUID) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	dayRepo      repos.DayRepo
	categoryRepo repos.CategoryRepo
	targetRepo   repos.TargetRepo
	scoreService ScoreService
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, dayRepo repos.DayRepo, categoryRepo repos.CategoryRepo, targetRepo repos.TargetRepo, scoreService ScoreService) CategoryService {
	return &categoryService{
		db:           db,
		log:          log.With("service", "CategoryService"),
		dayRepo:      dayRepo,
		categoryRepo: categoryRepo,
		targetRepo:   targetRepo,
		scoreService: scoreService,
	}
}

func (s *categoryService) Create(ctx context.Context, dayID uuid.UUID, name, description string) (*types.Category, error) {
	cleaned, err := cleanName("name", name)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)

	var out *types.Category
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		day, err := s.dayRepo.GetByID(dbc, dayID)
		if err != nil {
			return err
		}
		if day == nil {
			return &types.NotFoundError{Resource: "day"}
		}
		if err := s.checkNameFree(dbc, dayID, cleaned, uuid.Nil); err != nil {
			return err
		}

		category := &types.Category{DayID: dayID, Name: cleaned, Description: description}
		if err := s.categoryRepo.Create(dbc, category); err != nil {
			return err
		}
		if err := s.scoreService.RecalculateDay(dbc, dayID); err != nil {
			return err
		}
		out, err = s.categoryRepo.GetByID(dbc, category.ID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, dayID, categoryID uuid.UUID, name, description string) (*types.Category, error) {
	cleaned, err := cleanName("name", name)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)

	var out *types.Category
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		category, err := s.resolveScoped(dbc, dayID, categoryID)
		if err != nil {
			return err
		}
		if cleaned != category.Name {
			if err := s.checkNameFree(dbc, dayID, cleaned, categoryID); err != nil {
				return err
			}
		}

		if err := s.categoryRepo.UpdateFields(dbc, categoryID, map[string]interface{}{
			"name":        cleaned,
			"description": description,
		}); err != nil {
			return err
		}
		// Field edits change no score input, but the day is recomputed
		// anyway so every category write leaves fresh caches behind.
		if err := s.scoreService.RecalculateDay(dbc, dayID); err != nil {
			return err
		}
		out, err = s.categoryRepo.GetByID(dbc, categoryID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *categoryService) SoftDelete(ctx context.Context, dayID, categoryID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		category, err := s.resolveScoped(dbc, dayID, categoryID)
		if err != nil {
			return err
		}
		if err := s.categoryRepo.SoftDeleteByID(dbc, category.ID); err != nil {
			return err
		}
		if err := s.targetRepo.SoftDeleteByCategoryID(dbc, category.ID); err != nil {
			return err
		}
		return s.scoreService.RecalculateDay(dbc, dayID)
	})
}

func (s *categoryService) HardDelete(ctx context.Context, dayID, categoryID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		category, err := s.resolveScoped(dbc, dayID, categoryID)
		if err != nil {
			return err
		}
		// Targets go with it via the foreign key cascade.
		if err := s.categoryRepo.FullDeleteByID(dbc, category.ID); err != nil {
			return err
		}
		return s.scoreService.RecalculateDay(dbc, dayID)
	})
}

func (s *categoryService) resolveScoped(dbc dbctx.Context, dayID, categoryID uuid.UUID) (*types.Category, error) {
	category, err := s.categoryRepo.GetByID(dbc, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &types.NotFoundError{Resource: "category"}
	}
	if category.DayID != dayID {
		return nil, &types.ScopeError{Resource: "category"}
	}
	return category, nil
}

func (s *categoryService) checkNameFree(dbc dbctx.Context, dayID uuid.UUID, name string, excludeID uuid.UUID) error {
	taken, err := s.categoryRepo.NameTakenOnDay(dbc, dayID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &types.ValidationError{Field: "name", Message: fmt.Sprintf("a category named %q already exists on this day", name)}
	}
	// The unique index covers tombstoned rows too; surface that as a
	// validation failure instead of letting the insert blow up.
	occupied, err := s.categoryRepo.NameOccupiedUnscoped(dbc, dayID, name, excludeID)
	if err != nil {
		return err
	}
	if occupied {
		return &types.ValidationError{Field: "name", Message: fmt.Sprintf("the name %q is still held by a deleted category on this day", name)}
	}
	return nil
}
