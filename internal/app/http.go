package app

import (
	bhttp "github.com/yungbote/betterday-backend/internal/http"
	httpH "github.com/yungbote/betterday-backend/internal/http/handlers"
	"github.com/yungbote/betterday-backend/internal/observability"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Dashboard  *httpH.DashboardHandler
	Day        *httpH.DayHandler
	Category   *httpH.CategoryHandler
	Target     *httpH.TargetHandler
	Importance *httpH.ImportanceHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Dashboard:  httpH.NewDashboardHandler(services.Dashboard, cfg.Location),
		Day:        httpH.NewDayHandler(services.Day, services.Dashboard),
		Category:   httpH.NewCategoryHandler(services.Category),
		Target:     httpH.NewTargetHandler(services.Target),
		Importance: httpH.NewImportanceHandler(services.Importance),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *bhttp.Server {
	return bhttp.NewServer(bhttp.RouterConfig{
		Log:         log,
		Metrics:     metrics,
		ServiceName: cfg.ServiceName,

		HealthHandler:     handlers.Health,
		DashboardHandler:  handlers.Dashboard,
		DayHandler:        handlers.Day,
		CategoryHandler:   handlers.Category,
		TargetHandler:     handlers.Target,
		ImportanceHandler: handlers.Importance,
	})
}
