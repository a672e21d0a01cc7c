package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/db"
	bhttp "github.com/yungbote/betterday-backend/internal/http"
	"github.com/yungbote/betterday-backend/internal/observability"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/seed"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *bhttp.Server
	Seeder   *seed.Seeder
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbs, err := db.NewService(db.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN}, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbs.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbs.DB()

	metrics := observability.Init(log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet)
	handlerset := wireHandlers(log, cfg, serviceset)
	server := wireServer(log, cfg, metrics, handlerset)

	seeder := seed.New(log, serviceset.Day, serviceset.Category, serviceset.Importance, reposet.Category)

	return &App{
		Log:      log,
		DB:       theDB,
		Cfg:      cfg,
		Metrics:  metrics,
		Repos:    reposet,
		Services: serviceset,
		Server:   server,
		Seeder:   seeder,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
