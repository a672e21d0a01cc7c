package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/services"
)

type Services struct {
	Score      services.ScoreService
	Day        services.DayService
	Category   services.CategoryService
	Target     services.TargetService
	Importance services.ImportanceService
	Dashboard  services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	score := services.NewScoreService(log, r.Day, r.Category, r.Target, r.Importance)
	day := services.NewDayService(db, log, r.Day, r.Category, r.Target, score)
	return Services{
		Score:      score,
		Day:        day,
		Category:   services.NewCategoryService(db, log, r.Day, r.Category, r.Target, score),
		Target:     services.NewTargetService(db, log, r.Day, r.Category, r.Target, r.Importance, score),
		Importance: services.NewImportanceService(db, log, r.Importance, r.Target, score),
		Dashboard:  services.NewDashboardService(log, cfg.Location, day, r.Day, r.Category, r.Target, r.Importance),
	}
}
