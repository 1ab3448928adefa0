package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutorboard-api/api/swagger"
	"github.com/noah-isme/tutorboard-api/internal/handler"
	"github.com/noah-isme/tutorboard-api/internal/middleware"
	"github.com/noah-isme/tutorboard-api/internal/repository"
	"github.com/noah-isme/tutorboard-api/internal/service"
	"github.com/noah-isme/tutorboard-api/pkg/cache"
	"github.com/noah-isme/tutorboard-api/pkg/config"
	"github.com/noah-isme/tutorboard-api/pkg/database"
	"github.com/noah-isme/tutorboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutorboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutorboard-api/pkg/middleware/requestid"
)

// @title TutorBoard API
// @version 1.0.0
// @description Class management backend for tutoring teachers
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Stats.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled)

	teacherRepo := repository.NewTeacherRepository(db)
	hubUserRepo := repository.NewHubUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	memberRepo := repository.NewMembershipRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	validate := validator.New()

	identitySvc := service.NewIdentityService(teacherRepo, logr)
	hubAuthSvc := service.NewHubAuthService(cfg.Hub, logr)
	classSvc := service.NewClassService(classRepo, memberRepo, hubUserRepo, nil, validate, logr)
	statsSvc := service.NewStatsService(classSvc, memberRepo, snapshotRepo, cacheSvc, metricsSvc, logr)
	classSvc.SetStatsInvalidator(statsSvc)
	lessonSvc := service.NewLessonService(lessonRepo, classSvc, validate, logr, cfg.Lessons.RecordProgressIncrement)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, classSvc, statsSvc, validate, logr)
	scheduleSvc := service.NewScheduleSyncService(scheduleRepo, metricsSvc, logr, cfg.Schedule)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, lessonSvc, memberRepo, scheduleSvc, validate, logr)
	commentSvc := service.NewCommentService(commentRepo, teacherRepo, validate, logr)

	handlers := handler.Handlers{
		Class:      handler.NewClassHandler(classSvc),
		Stats:      handler.NewStatsHandler(statsSvc),
		Lesson:     handler.NewLessonHandler(lessonSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Assessment: handler.NewAssessmentHandler(assessmentSvc),
		Comment:    handler.NewCommentHandler(commentSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", handlers.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", handlers.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, hubAuthSvc, identitySvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
