package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/observability"
	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/types"
)

type DayService interface {
	// GetOrCreateByDate is the single entry point that materializes a
	// day. A fresh day inherits the most recent earlier day's active
	// categories and targets with achievement reset, then gets its
	// scores computed so the caches are never null.
	GetOrCreateByDate(ctx context.Context, date datatypes.Date) (*types.Day, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Day, error)
	GetByDate(ctx context.Context, date datatypes.Date) (*types.Day, error)
	// SetTimes records wake and sleep times as given. A sleep time that
	// reads earlier than the wake time means the day crossed midnight;
	// the derived views normalize it, storage keeps it verbatim.
	SetTimes(ctx context.Context, dayID uuid.UUID, wake, sleep *time.Time) (*types.Day, error)
}

type dayService struct {
	db           *gorm.DB
	log          *logger.Logger
	dayRepo      repos.DayRepo
	categoryRepo repos.CategoryRepo
	targetRepo   repos.TargetRepo
	scoreService ScoreService
}

func NewDayService(db *gorm.DB, log *logger.Logger, dayRepo repos.DayRepo, categoryRepo repos.CategoryRepo, targetRepo repos.TargetRepo, scoreService ScoreService) DayService {
	return &dayService{
		db:           db,
		log:          log.With("service", "DayService"),
		dayRepo:      dayRepo,
		categoryRepo: categoryRepo,
		targetRepo:   targetRepo,
		scoreService: scoreService,
	}
}

func (s *dayService) GetOrCreateByDate(ctx context.Context, date datatypes.Date) (*types.Day, error) {
	var out *types.Day
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := s.dayRepo.GetByDate(dbc, date)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}

		// The unique index spans tombstones, so a deleted day still owns
		// its date slot. Bring it back instead of inserting a duplicate.
		tombstone, err := s.dayRepo.GetByDateUnscoped(dbc, date)
		if err != nil {
			return err
		}
		if tombstone != nil {
			if err := s.dayRepo.Restore(dbc, tombstone.ID); err != nil {
				return err
			}
			if err := s.scoreService.RecalculateDay(dbc, tombstone.ID); err != nil {
				return err
			}
			s.log.Info("Restored tombstoned day", "date", types.FormatDate(date))
			if metrics := observability.Current(); metrics != nil {
				metrics.IncDayMaterialized("restored")
			}
			out, err = s.dayRepo.GetByID(dbc, tombstone.ID)
			return err
		}

		day := &types.Day{Date: date}
		if err := s.dayRepo.Create(dbc, day); err != nil {
			return err
		}
		if err := s.carryForward(dbc, day); err != nil {
			return err
		}
		if err := s.scoreService.RecalculateDay(dbc, day.ID); err != nil {
			return err
		}
		if metrics := observability.Current(); metrics != nil {
			metrics.IncDayMaterialized("created")
		}
		out, err = s.dayRepo.GetByID(dbc, day.ID)
		return err
	}); err != nil {
		s.log.Error("GetOrCreateByDate failed", "date", types.FormatDate(date), "error", err)
		return nil, err
	}
	return out, nil
}

// carryForward clones the active categories and targets of the most recent
// earlier day onto a fresh one. Achievement never carries over.
func (s *dayService) carryForward(dbc dbctx.Context, day *types.Day) error {
	prev, err := s.dayRepo.GetLatestBefore(dbc, day.Date)
	if err != nil {
		return err
	}
	if prev == nil {
		// First-ever day starts empty.
		return nil
	}

	categories, err := s.categoryRepo.ListByDayID(dbc, prev.ID)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}

	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}
	targets, err := s.targetRepo.ListByCategoryIDs(dbc, categoryIDs)
	if err != nil {
		return err
	}
	targetsByCategory := map[uuid.UUID][]*types.Target{}
	for _, t := range targets {
		targetsByCategory[t.CategoryID] = append(targetsByCategory[t.CategoryID], t)
	}

	for _, c := range categories {
		clone := &types.Category{
			DayID:       day.ID,
			Name:        c.Name,
			Description: c.Description,
		}
		if err := s.categoryRepo.Create(dbc, clone); err != nil {
			return err
		}
		for _, t := range targetsByCategory[c.ID] {
			copied := &types.Target{
				CategoryID:   clone.ID,
				ImportanceID: t.ImportanceID,
				Name:         t.Name,
				IsAchieved:   false,
			}
			if err := s.targetRepo.Create(dbc, copied); err != nil {
				return err
			}
		}
	}
	s.log.Info("Carried forward previous day",
		"from", types.FormatDate(prev.Date),
		"to", types.FormatDate(day.Date),
		"categories", len(categories),
		"targets", len(targets))
	return nil
}

func (s *dayService) GetByID(ctx context.Context, id uuid.UUID) (*types.Day, error) {
	day, err := s.dayRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, &types.NotFoundError{Resource: "day"}
	}
	return day, nil
}

func (s *dayService) GetByDate(ctx context.Context, date datatypes.Date) (*types.Day, error) {
	day, err := s.dayRepo.GetByDate(dbctx.New(ctx), date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, &types.NotFoundError{Resource: "day"}
	}
	return day, nil
}

func (s *dayService) SetTimes(ctx context.Context, dayID uuid.UUID, wake, sleep *time.Time) (*types.Day, error) {
	var out *types.Day
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		day, err := s.dayRepo.GetByID(dbc, dayID)
		if err != nil {
			return err
		}
		if day == nil {
			return &types.NotFoundError{Resource: "day"}
		}
		if err := s.dayRepo.UpdateFields(dbc, dayID, map[string]interface{}{
			"wake_time":  wake,
			"sleep_time": sleep,
		}); err != nil {
			return err
		}
		out, err = s.dayRepo.GetByID(dbc, dayID)
		return err
	}); err != nil {
		return nil, err
	}
	return out, nil
}
