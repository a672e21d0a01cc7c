package seed

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/betterday-backend/internal/observability"
	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/services"
	"github.com/yungbote/betterday-backend/internal/types"
)

// Seeder applies a seed spec through the regular services, so every write
// it makes runs the same validation and recompute paths as a live request.
type Seeder struct {
	log          *logger.Logger
	days         services.DayService
	categories   services.CategoryService
	importance   services.ImportanceService
	categoryRepo repos.CategoryRepo
}

type Options struct {
	Date datatypes.Date
	// LevelsOnly applies the importance levels and leaves days untouched.
	LevelsOnly bool
	// Overwrite refreshes descriptions of categories that already exist.
	Overwrite bool
}

type Summary struct {
	LevelsApplied     int
	CategoriesAdded   int
	CategoriesUpdated int
	CategoriesSkipped int
}

func New(log *logger.Logger, days services.DayService, categories services.CategoryService, importance services.ImportanceService, categoryRepo repos.CategoryRepo) *Seeder {
	return &Seeder{
		log:          log.With("component", "Seeder"),
		days:         days,
		categories:   categories,
		importance:   importance,
		categoryRepo: categoryRepo,
	}
}

// Run seeds importance levels, then lays the default categories onto the
// day for opts.Date. Existing categories are skipped unless Overwrite asks
// for their descriptions to be refreshed.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	summary, err := s.run(ctx, opts)
	if metrics := observability.Current(); metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.IncSeedRun(status)
	}
	return summary, err
}

func (s *Seeder) run(ctx context.Context, opts Options) (*Summary, error) {
	spec := LoadSpec(s.log)
	summary := &Summary{}

	for _, level := range spec.Levels {
		if _, err := s.importance.UpsertByLabel(ctx, level.Label, level.Score); err != nil {
			return summary, err
		}
		summary.LevelsApplied++
	}
	if opts.LevelsOnly {
		s.log.Info("Seeded importance levels", "levels", summary.LevelsApplied)
		return summary, nil
	}

	day, err := s.days.GetOrCreateByDate(ctx, opts.Date)
	if err != nil {
		return summary, err
	}
	existing, err := s.categoryRepo.ListByDayID(dbctx.New(ctx), day.ID)
	if err != nil {
		return summary, err
	}
	byName := make(map[string]*types.Category, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c
	}

	for _, categorySpec := range spec.Categories {
		current := byName[strings.ToLower(categorySpec.Name)]
		switch {
		case current == nil:
			if _, err := s.categories.Create(ctx, day.ID, categorySpec.Name, categorySpec.Description); err != nil {
				return summary, err
			}
			summary.CategoriesAdded++
		case opts.Overwrite:
			if _, err := s.categories.Update(ctx, day.ID, current.ID, current.Name, categorySpec.Description); err != nil {
				return summary, err
			}
			summary.CategoriesUpdated++
		default:
			summary.CategoriesSkipped++
		}
	}

	s.log.Info("Seed complete",
		"date", types.FormatDate(opts.Date),
		"levels", summary.LevelsApplied,
		"added", summary.CategoriesAdded,
		"updated", summary.CategoriesUpdated,
		"skipped", summary.CategoriesSkipped)
	return summary, nil
}
