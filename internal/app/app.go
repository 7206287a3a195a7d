package app

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/controller"
	"codeverse_backend/internal/quiz"
	"codeverse_backend/internal/repository"
	"codeverse_backend/internal/service"
	"codeverse_backend/pkg/database"
	"codeverse_backend/pkg/logger"
	"codeverse_backend/pkg/monitoring"
	"codeverse_backend/pkg/security"
	"codeverse_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	ctx             context.Context
	cancel          context.CancelFunc
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	participant *repository.ParticipantRepository
	cache       *repository.ParticipantCache
}

type services struct {
	participant *service.ParticipantService
	auth        *service.AuthService
	progress    *service.ProgressService
	score       *service.ScoreService
	export      *service.ExportService
}

type controllers struct {
	auth     *controller.AuthController
	quiz     *controller.QuizController
	puzzle   *controller.PuzzleController
	progress *controller.ProgressController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig applies the hot-reloadable parts of cfg: log level and
// whatever registered callbacks pick up. Storage, identity and listener
// settings need a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	logger.ApplyLevel(cfg)

	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	r := &repositories{
		participant: repository.NewParticipantRepository(db, cfg.Database.StoreTimeout),
	}
	if rdb != nil {
		r.cache = repository.NewParticipantCache(rdb, cfg.Redis.CacheTTL)
	}
	return r
}

func (a *App) initServices(repos *repositories, cfg *config.Config, bank *quiz.Bank) *services {
	s := &services{}

	var cache service.DisplayCache
	if repos.cache != nil {
		cache = repos.cache
	}
	s.participant = service.NewParticipantService(repos.participant, cache)
	s.auth = service.NewAuthService(s.participant, cfg)
	s.progress = service.NewProgressService(s.participant, bank)
	s.score = service.NewScoreService(s.participant, bank)
	s.export = service.NewExportService(s.participant)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, cfg *config.Config, bank *quiz.Bank) *controllers {
	var cachePing controller.Pinger
	if repos.cache != nil {
		cachePing = repos.cache
	}

	c := &controllers{
		auth:     controller.NewAuthController(s.auth, s.participant),
		quiz:     controller.NewQuizController(bank, cfg.Quiz.ServedQuestions),
		puzzle:   controller.NewPuzzleController(s.progress),
		progress: controller.NewProgressController(s.progress, s.score, s.participant),
		admin:    controller.NewAdminController(s.export),
		health:   controller.NewHealthController(repos.participant, cachePing),
	}

	a.RegisterConfigCallback(func(cfg *config.Config) {
		c.quiz.SetServed(cfg.Quiz.ServedQuestions)
	})
	return c
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires an App around already opened connections. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		ctx:    ctx,
		cancel: cancel,
	}

	bank := quiz.DefaultBank()
	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg, bank)
	controllers := app.initControllers(services, repos, cfg, bank)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	gin.SetMode(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认跳过自动迁移，除非显式指定 -migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// 缓存仅用于展示，不可用时降级运行
			logger.Log.Warn("Redis unavailable, running without display cache", zap.Error(err))
			rdb = nil
		}
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// Context is cancelled when the App shuts down.
func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close stops background work and releases connections.
func (a *App) Close(ctx context.Context) {
	a.cancel()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
