package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/learn-sphere/analytics-api/api/swagger"
	"github.com/learn-sphere/analytics-api/internal/handler"
	"github.com/learn-sphere/analytics-api/internal/middleware"
	"github.com/learn-sphere/analytics-api/internal/models"
	"github.com/learn-sphere/analytics-api/internal/repository"
	"github.com/learn-sphere/analytics-api/internal/repository/memstore"
	"github.com/learn-sphere/analytics-api/internal/service"
	"github.com/learn-sphere/analytics-api/pkg/cache"
	"github.com/learn-sphere/analytics-api/pkg/config"
	"github.com/learn-sphere/analytics-api/pkg/database"
	"github.com/learn-sphere/analytics-api/pkg/jobs"
	"github.com/learn-sphere/analytics-api/pkg/logger"
	corsmiddleware "github.com/learn-sphere/analytics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/learn-sphere/analytics-api/pkg/middleware/requestid"
	"github.com/learn-sphere/analytics-api/pkg/storage"
)

// recordStore is the full driver surface; both the Postgres-backed store and
// the in-memory store satisfy it.
type recordStore interface {
	service.RecordStore

	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	ListCourses(ctx context.Context) ([]models.Course, error)
	FindCourseByID(ctx context.Context, id string) (*models.Course, error)
	FindCourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id string) error

	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	DeleteEnrollmentsByCourse(ctx context.Context, courseID string) (int64, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	GetAttendance(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error)
	UpsertAttendance(ctx context.Context, rec *models.AttendanceRecord) error
	ListLiveSessions(ctx context.Context) ([]models.LiveSession, error)
	FindLiveSession(ctx context.Context, id string) (*models.LiveSession, error)
}

// @title LearnSphere Analytics API
// @version 1.0.0
// @description Learning-analytics aggregation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var store recordStore
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close()
		store = repository.NewStore(db)
		logr.Sugar().Infow("record store ready", "driver", cfg.Store.Driver)
	default:
		mem := memstore.New(cfg.Store.FetchLatency)
		if cfg.Store.Seed {
			mem.Seed()
		}
		store = mem
		logr.Sugar().Infow("record store ready", "driver", config.StoreDriverMemory, "seeded", cfg.Store.Seed)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	analyticsSvc := service.NewAnalyticsService(store, cacheSvc, metricsSvc, logr, cfg.Analytics.CacheTTL)
	authSvc := service.NewAuthService(store, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(store, analyticsSvc, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(store, analyticsSvc, logr)
	attendanceSvc := service.NewAttendanceService(store, analyticsSvc, logr)
	assessmentSvc := service.NewAssessmentService(store, analyticsSvc, validate, logr)

	var reportSvc *service.ReportService
	if cfg.Reports.Enabled {
		fileStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		exportSvc := service.NewExportService(analyticsSvc, fileStore, signer, cfg.APIPrefix, logr)
		reportSvc = service.NewReportService(exportSvc, logr)

		queue := jobs.NewQueue("reports", reportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Reports.WorkerConcurrency,
			MaxRetries: cfg.Reports.WorkerRetries,
			Logger:     logr,
		})
		queue.Start(context.Background())
		defer queue.Stop()
		reportSvc.BindQueue(queue)

		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				if removed := reportSvc.CleanupExpired(cfg.Reports.ResultTTL); removed > 0 {
					logr.Sugar().Infow("expired reports removed", "count", removed)
				}
			}
		}()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	assessmentHandler := handler.NewAssessmentHandler(assessmentSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", middleware.JWT(authSvc), authHandler.Me)

	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)

	admin := api.Group("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/courses", courseHandler.Create)
	admin.PUT("/courses/:id", courseHandler.Update)
	admin.DELETE("/courses/:id", courseHandler.Delete)
	admin.DELETE("/enrollments/:courseId", enrollmentHandler.Unenroll)
	admin.POST("/students/:studentId/courses/:courseId/assessments", assessmentHandler.Add)
	admin.GET("/analytics/students", analyticsHandler.StudentPerformance)
	admin.GET("/analytics/courses", analyticsHandler.CoursePerformance)
	admin.GET("/analytics/summary", analyticsHandler.Summary)

	authed := api.Group("", middleware.JWT(authSvc))
	authed.GET("/enrollments", enrollmentHandler.List)
	authed.POST("/enrollments", enrollmentHandler.Enroll)
	authed.GET("/sessions", attendanceHandler.Sessions)

	self := api.Group("", middleware.JWT(authSvc), middleware.RBAC(string(models.RoleAdmin), "SELF"))
	self.POST("/students/:studentId/sessions/:sessionId/enrollment", attendanceHandler.Enroll)
	self.PUT("/students/:studentId/sessions/:sessionId/attendance", attendanceHandler.Mark)

	if reportSvc != nil {
		reportHandler := handler.NewReportHandler(reportSvc)
		api.GET("/reports/download", reportHandler.Download)
		reports := api.Group("/reports", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
		reports.POST("", reportHandler.Create)
		reports.GET("/:id", reportHandler.Status)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
