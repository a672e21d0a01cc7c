package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/betterday-backend/internal/http/handlers"
	httpMW "github.com/yungbote/betterday-backend/internal/http/middleware"
	"github.com/yungbote/betterday-backend/internal/observability"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string

	HealthHandler     *httpH.HealthHandler
	DashboardHandler  *httpH.DashboardHandler
	DayHandler        *httpH.DayHandler
	CategoryHandler   *httpH.CategoryHandler
	TargetHandler     *httpH.TargetHandler
	ImportanceHandler *httpH.ImportanceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Dashboard
		if cfg.DashboardHandler != nil {
			api.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
		}

		// Days
		if cfg.DayHandler != nil {
			api.GET("/days/:id", cfg.DayHandler.GetDay)
			api.PUT("/days/:id/times", cfg.DayHandler.SetTimes)
		}

		// Categories
		if cfg.CategoryHandler != nil {
			api.POST("/categories", cfg.CategoryHandler.CreateCategory)
			api.PUT("/categories/:id", cfg.CategoryHandler.UpdateCategory)
			api.DELETE("/categories/:id", cfg.CategoryHandler.DeleteCategory)
		}

		// Targets
		if cfg.TargetHandler != nil {
			api.POST("/targets", cfg.TargetHandler.CreateTarget)
			api.POST("/targets/:id/toggle", cfg.TargetHandler.ToggleTarget)
			api.PUT("/targets/:id", cfg.TargetHandler.UpdateTarget)
			api.DELETE("/targets/:id", cfg.TargetHandler.DeleteTarget)
		}

		// Importance levels
		if cfg.ImportanceHandler != nil {
			api.GET("/importance", cfg.ImportanceHandler.ListImportance)
			api.POST("/importance", cfg.ImportanceHandler.CreateImportance)
			api.PUT("/importance/:id", cfg.ImportanceHandler.UpdateImportance)
			api.DELETE("/importance/:id", cfg.ImportanceHandler.DeleteImportance)
		}
	}

	return r
}
