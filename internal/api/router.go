package api

import (
	"github.com/gin-gonic/gin"
	"github.com/tannerdj/wokelens/internal/api/handler"
	"github.com/tannerdj/wokelens/internal/api/middleware"
	"github.com/tannerdj/wokelens/internal/config"
	"github.com/tannerdj/wokelens/internal/logger"
	"github.com/tannerdj/wokelens/internal/repository"
	"github.com/tannerdj/wokelens/internal/scheduler"
	"github.com/tannerdj/wokelens/internal/service"
	"github.com/tannerdj/wokelens/internal/storage"
	"github.com/tannerdj/wokelens/internal/watch"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	cfg *config.Config,
	log *logger.Logger,
	photos *repository.PhotoRepository,
	objectStorage storage.ObjectStorage,
	trigger scheduler.Trigger,
	hub *watch.Hub,
	madlibs *service.MadLibService,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))
	r.Use(middleware.Scope(cfg.Auth.JWTSecret))

	healthHandler := handler.NewHealthHandler()
	photoHandler := handler.NewPhotoHandler(
		photos, objectStorage, trigger, hub,
		cfg.Analysis.Delay, cfg.Storage.UploadURLExpiry,
	)
	triviaHandler := handler.NewTriviaHandler(madlibs)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/session", photoHandler.CreateSession)

		v1.POST("/uploads", photoHandler.CreateUpload)

		v1.POST("/photos", photoHandler.SavePhoto)
		v1.GET("/photos", photoHandler.ListPhotos)
		v1.GET("/photos/:id", photoHandler.GetPhoto)
		v1.GET("/photos/:id/watch", photoHandler.WatchPhoto)

		v1.GET("/trivia/madlib", triviaHandler.GetMadLib)
	}

	return r
}
