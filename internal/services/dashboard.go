package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/scores"
	"github.com/yungbote/betterday-backend/internal/types"
)

// DashboardView is the read-only aggregate the presentation layer renders.
// Everything here is derived from stored scores; nothing feeds back.
type DashboardView struct {
	Day                *types.Day               `json:"day"`
	IsToday            bool                     `json:"is_today"`
	IsFirstDay         bool                     `json:"is_first_day"`
	Categories         []*CategoryView          `json:"categories"`
	Yesterday          *types.Day               `json:"yesterday,omitempty"`
	ProgressPercentage float64                  `json:"progress_percentage"`
	NormalizedScore    float64                  `json:"normalized_score"`
	ProgressDelta      *float64                 `json:"progress_delta,omitempty"`
	ActiveHours        *float64                 `json:"active_hours,omitempty"`
	AchievedCount      int                      `json:"achieved_count"`
	TargetCount        int                      `json:"target_count"`
	ImportanceLevels   []*types.ImportanceLevel `json:"importance_levels"`
}

type CategoryView struct {
	Category        *types.Category `json:"category"`
	Targets         []*types.Target `json:"targets"`
	NormalizedScore float64         `json:"normalized_score"`
	Delta           *float64        `json:"delta,omitempty"`
	AchievedCount   int             `json:"achieved_count"`
	TargetCount     int             `json:"target_count"`
}

type DashboardService interface {
	// GetDashboard assembles the view for a date. Today's day is
	// materialized on first sight; any other date must already exist.
	GetDashboard(ctx context.Context, date datatypes.Date) (*DashboardView, error)
	// GetDashboardForDay assembles the same view for a day that already
	// exists, addressed by id.
	GetDashboardForDay(ctx context.Context, dayID uuid.UUID) (*DashboardView, error)
}

type dashboardService struct {
	log            *logger.Logger
	loc            *time.Location
	dayService     DayService
	dayRepo        repos.DayRepo
	categoryRepo   repos.CategoryRepo
	targetRepo     repos.TargetRepo
	importanceRepo repos.ImportanceLevelRepo
}

func NewDashboardService(log *logger.Logger, loc *time.Location, dayService DayService, dayRepo repos.DayRepo, categoryRepo repos.CategoryRepo, targetRepo repos.TargetRepo, importanceRepo repos.ImportanceLevelRepo) DashboardService {
	return &dashboardService{
		log:            log.With("service", "DashboardService"),
		loc:            loc,
		dayService:     dayService,
		dayRepo:        dayRepo,
		categoryRepo:   categoryRepo,
		targetRepo:     targetRepo,
		importanceRepo: importanceRepo,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, date datatypes.Date) (*DashboardView, error) {
	now := time.Now().In(s.loc)
	isToday := types.SameDate(date, types.DateOf(now))

	var day *types.Day
	var err error
	if isToday {
		day, err = s.dayService.GetOrCreateByDate(ctx, date)
	} else {
		day, err = s.dayService.GetByDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, day, isToday, now)
}

func (s *dashboardService) GetDashboardForDay(ctx context.Context, dayID uuid.UUID) (*DashboardView, error) {
	now := time.Now().In(s.loc)
	day, err := s.dayService.GetByID(ctx, dayID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, day, types.SameDate(day.Date, types.DateOf(now)), now)
}

func (s *dashboardService) assemble(ctx context.Context, day *types.Day, isToday bool, now time.Time) (*DashboardView, error) {
	dbc := dbctx.New(ctx)

	categories, err := s.categoryRepo.ListByDayID(dbc, day.ID)
	if err != nil {
		return nil, err
	}
	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}
	targets, err := s.targetRepo.ListByCategoryIDs(dbc, categoryIDs)
	if err != nil {
		return nil, err
	}
	targetsByCategory := map[uuid.UUID][]*types.Target{}
	for _, t := range targets {
		targetsByCategory[t.CategoryID] = append(targetsByCategory[t.CategoryID], t)
	}

	// Comparison runs against the exact calendar predecessor, not just
	// any earlier day.
	prevDate := types.DateOf(time.Time(day.Date).AddDate(0, 0, -1))
	yesterday, err := s.dayRepo.GetByDate(dbc, prevDate)
	if err != nil {
		return nil, err
	}
	yesterdayByName := map[string]*types.Category{}
	if yesterday != nil {
		prevCategories, err := s.categoryRepo.ListByDayID(dbc, yesterday.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range prevCategories {
			yesterdayByName[c.Name] = c
		}
	}

	earliest, err := s.dayRepo.GetLatestBefore(dbc, day.Date)
	if err != nil {
		return nil, err
	}

	levels, err := s.importanceRepo.List(dbc)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Day:              day,
		IsToday:          isToday,
		IsFirstDay:       earliest == nil,
		Categories:       make([]*CategoryView, 0, len(categories)),
		Yesterday:        yesterday,
		ImportanceLevels: levels,
		ActiveHours:      scores.ActiveHours(day.WakeTime, day.SleepTime, isToday, now),
	}

	dayScore, dayMax := intOr0(day.Score), intOr0(day.MaxScore)
	view.ProgressPercentage = scores.Round1(scores.Percentage(dayScore, dayMax))
	view.NormalizedScore = scores.Normalized(dayScore, dayMax)
	if yesterday != nil {
		view.ProgressDelta = scores.Delta(dayScore, dayMax, intOr0(yesterday.Score), intOr0(yesterday.MaxScore))
	}

	for _, c := range categories {
		cv := &CategoryView{
			Category:        c,
			Targets:         targetsByCategory[c.ID],
			NormalizedScore: scores.Normalized(intOr0(c.Score), intOr0(c.MaxScore)),
			TargetCount:     len(targetsByCategory[c.ID]),
		}
		if cv.Targets == nil {
			cv.Targets = []*types.Target{}
		}
		for _, t := range cv.Targets {
			if t.IsAchieved {
				cv.AchievedCount++
			}
		}
		if prev, ok := yesterdayByName[c.Name]; ok {
			cv.Delta = scores.Delta(intOr0(c.Score), intOr0(c.MaxScore), intOr0(prev.Score), intOr0(prev.MaxScore))
		}
		view.AchievedCount += cv.AchievedCount
		view.TargetCount += cv.TargetCount
		view.Categories = append(view.Categories, cv)
	}

	return view, nil
}
