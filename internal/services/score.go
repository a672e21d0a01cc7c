package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/observability"
	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
)

// ScoreService is the recalculation engine. Every mutation path that can
// change a target's contribution, a category's membership, or the global
// max importance weight calls into here before its transaction commits.
// Recomputes persist through narrow field updates and never call back into
// a mutation path, so propagation cannot loop.
type ScoreService interface {
	// RecalculateCategory refreshes one category's cached (score,
	// max_score) pair from its live targets. A category with no live
	// targets lands on (0, 0), never null.
	RecalculateCategory(dbc dbctx.Context, categoryID uuid.UUID) error
	// RecalculateDay refreshes every live category of the day bottom-up,
	// then sums their caches into the day's pair.
	RecalculateDay(dbc dbctx.Context, dayID uuid.UUID) error
	// RecalculateAllDays fans out over every live day in date order.
	// Importance weight changes pay this full cost synchronously.
	RecalculateAllDays(dbc dbctx.Context) error
}

type scoreService struct {
	log            *logger.Logger
	dayRepo        repos.DayRepo
	categoryRepo   repos.CategoryRepo
	targetRepo     repos.TargetRepo
	importanceRepo repos.ImportanceLevelRepo
}

func NewScoreService(log *logger.Logger, dayRepo repos.DayRepo, categoryRepo repos.CategoryRepo, targetRepo repos.TargetRepo, importanceRepo repos.ImportanceLevelRepo) ScoreService {
	return &scoreService{
		log:            log.With("service", "ScoreService"),
		dayRepo:        dayRepo,
		categoryRepo:   categoryRepo,
		targetRepo:     targetRepo,
		importanceRepo: importanceRepo,
	}
}

func (s *scoreService) RecalculateCategory(dbc dbctx.Context, categoryID uuid.UUID) error {
	start := time.Now()
	err := s.recalculateCategory(dbc, categoryID)
	observeRecalc("category", start, err)
	return err
}

func (s *scoreService) recalculateCategory(dbc dbctx.Context, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(dbc, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		// Tombstoned or gone; its cache no longer feeds any day sum.
		return nil
	}

	targets, err := s.targetRepo.ListByCategoryID(dbc, categoryID)
	if err != nil {
		return err
	}

	// The ceiling assumes every live target could carry the globally
	// heaviest weight, whatever its targets actually use. Read fresh on
	// every recompute; the global max is never cached.
	globalMax, err := s.importanceRepo.MaxScore(dbc)
	if err != nil {
		return err
	}
	maxScore := len(targets) * globalMax

	score := 0
	achievedIDs := make([]uuid.UUID, 0, len(targets))
	for _, t := range targets {
		if t.IsAchieved {
			achievedIDs = append(achievedIDs, t.ImportanceID)
		}
	}
	if len(achievedIDs) > 0 {
		weights, err := s.importanceWeights(dbc, achievedIDs)
		if err != nil {
			return err
		}
		for _, t := range targets {
			if t.IsAchieved {
				score += weights[t.ImportanceID]
			}
		}
	}

	return s.categoryRepo.UpdateFields(dbc, categoryID, map[string]interface{}{
		"score":     score,
		"max_score": maxScore,
	})
}

func (s *scoreService) RecalculateDay(dbc dbctx.Context, dayID uuid.UUID) error {
	start := time.Now()
	err := s.recalculateDay(dbc, dayID)
	observeRecalc("day", start, err)
	return err
}

func (s *scoreService) recalculateDay(dbc dbctx.Context, dayID uuid.UUID) error {
	day, err := s.dayRepo.GetByID(dbc, dayID)
	if err != nil {
		return err
	}
	if day == nil {
		return nil
	}

	categories, err := s.categoryRepo.ListByDayID(dbc, dayID)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if err := s.RecalculateCategory(dbc, c.ID); err != nil {
			return err
		}
	}

	// Re-read for the caches the loop just persisted.
	categories, err = s.categoryRepo.ListByDayID(dbc, dayID)
	if err != nil {
		return err
	}
	dayScore, dayMax := 0, 0
	for _, c := range categories {
		dayScore += intOr0(c.Score)
		dayMax += intOr0(c.MaxScore)
	}

	return s.dayRepo.UpdateFields(dbc, dayID, map[string]interface{}{
		"score":     dayScore,
		"max_score": dayMax,
	})
}

func (s *scoreService) RecalculateAllDays(dbc dbctx.Context) error {
	start := time.Now()
	err := s.recalculateAllDays(dbc)
	observeRecalc("all_days", start, err)
	return err
}

func (s *scoreService) recalculateAllDays(dbc dbctx.Context) error {
	days, err := s.dayRepo.ListAll(dbc)
	if err != nil {
		return err
	}
	s.log.Info("Recalculating all days", "count", len(days))
	for _, d := range days {
		if err := s.RecalculateDay(dbc, d.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *scoreService) importanceWeights(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	levels, err := s.importanceRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	weights := make(map[uuid.UUID]int, len(levels))
	for _, l := range levels {
		weights[l.ID] = l.Score
	}
	return weights, nil
}

func intOr0(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func observeRecalc(scope string, started time.Time, err error) {
	metrics := observability.Current()
	if metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ObserveRecalc(scope, status, time.Since(started))
}
