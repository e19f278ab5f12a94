package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/cache"
	"github.com/hiresphere/api/internal/config"
	"github.com/hiresphere/api/internal/domain/fiber/handler"
	"github.com/hiresphere/api/internal/jobs"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/service"
	"github.com/hiresphere/api/internal/task"
	"github.com/hiresphere/api/internal/usecase"
	"github.com/hiresphere/api/internal/util"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	logger := newLogger(appConfig.Env)
	defer logger.Sync()

	db := connectDB(logger)
	redisCache := cache.New(logger)
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, running without cache", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	linkRepo := repository.NewInterviewLinkRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	questionSetRepo := repository.NewQuestionSetRepository(db)

	if err := subscriptionRepo.SeedPlans(usecase.DefaultPlans()); err != nil {
		logger.Fatal("could not seed subscription plans", zap.Error(err))
	}

	// LLM providers: gemini primary, openrouter fallback.
	gemini, err := service.NewGeminiService(ctx, logger)
	if err != nil {
		logger.Fatal("could not initialize gemini", zap.Error(err))
	}
	openRouter := service.NewOpenRouterService(logger)

	llmConfig := config.LoadLLMConfig()
	questionSvc := service.NewQuestionService(gemini, openRouter, gemini, questionSetRepo, logger, llmConfig.QuestionCount)
	analyzerSvc := service.NewAnalyzerService(gemini, openRouter, logger)
	emailSvc := service.NewSMTPEmailService(logger)

	runner := task.NewRunner(logger)

	// Usecases
	authUC := usecase.NewAuthUsecase(userRepo, logger)
	subscriptionUC := usecase.NewSubscriptionUsecase(subscriptionRepo, logger)
	linkUC := usecase.NewLinkUsecase(linkRepo, subscriptionUC, emailSvc, logger, appConfig.BaseURL, appConfig.Name)
	analysisUC := usecase.NewAnalysisUsecase(interviewRepo, analyzerSvc, logger, llmConfig.RequestTimeout)
	interviewUC := usecase.NewInterviewUsecase(linkRepo, interviewRepo, questionSvc, analysisUC, runner, logger)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, logger)
	dashboardUC := usecase.NewDashboardUsecase(linkRepo, interviewRepo, candidateRepo, redisCache, logger)
	reportUC := usecase.NewReportUsecase(interviewRepo, logger)

	app := newApp(appConfig)
	api := app.Group("/api")

	handler.NewAuthHandler(authUC, userRepo).RegisterRoutes(api)
	handler.NewInterviewLinkHandler(linkUC, dashboardUC, userRepo).RegisterRoutes(api)
	handler.NewPublicInterviewHandler(linkUC, interviewUC, analysisUC).RegisterRoutes(api)
	handler.NewCandidateHandler(candidateUC, userRepo).RegisterRoutes(api)
	handler.NewSubscriptionHandler(subscriptionUC, userRepo).RegisterRoutes(api)
	handler.NewDashboardHandler(dashboardUC, reportUC, userRepo).RegisterRoutes(api)
	handler.NewInterviewHandler(interviewRepo, interviewUC, userRepo).RegisterRoutes(api)
	handler.NewAdminHandler(userRepo, subscriptionRepo, interviewRepo, authUC).RegisterRoutes(api)

	scheduler := jobs.StartScheduler(subscriptionUC, logger)
	go serveMetrics(logger)

	go func() {
		logger.Info("server listening", zap.String("port", appConfig.Port))
		if err := app.Listen(appConfig.Port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	scheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := runner.Shutdown(shutdownCtx); err != nil {
		logger.Warn("background tasks did not drain", zap.Error(err))
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
	redisCache.Close()
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	return logger
}

func newApp(appConfig *config.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return util.HandleError(c, err)
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	return app
}

// serveMetrics exposes prometheus on its own listener so the scrape endpoint
// never shares the public port.
func serveMetrics(logger *zap.Logger) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		addr = ":9091"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}

func connectDB(logger *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		logger.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.InterviewLink{},
		&model.Interview{},
		&model.InterviewResponse{},
		&model.Candidate{},
		&model.Subscription{},
		&model.SubscriptionPlan{},
		&model.QuestionSet{},
	)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	return db
}
