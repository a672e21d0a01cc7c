package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/repos"
)

type Repos struct {
	Day        repos.DayRepo
	Category   repos.CategoryRepo
	Target     repos.TargetRepo
	Importance repos.ImportanceLevelRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Day:        repos.NewDayRepo(db, log),
		Category:   repos.NewCategoryRepo(db, log),
		Target:     repos.NewTargetRepo(db, log),
		Importance: repos.NewImportanceLevelRepo(db, log),
	}
}
