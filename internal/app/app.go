package app

import (
	"better_results_backend/internal/config"
	"better_results_backend/internal/controller"
	"better_results_backend/internal/repository"
	"better_results_backend/internal/service"
	"better_results_backend/pkg/configwatcher"
	"better_results_backend/pkg/database"
	"better_results_backend/pkg/logger"
	"better_results_backend/pkg/monitoring"
	"better_results_backend/pkg/security"
	"better_results_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
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
	Config          *config.Config
	ConfigFile      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	datasetCache service.DatasetCache
	exportRecord *repository.ExportRecordRepository
}

type services struct {
	smartschool *service.SmartschoolClient
	storage     *service.StorageService
	results     *service.ResultsService
	export      *service.ExportService
}

type controllers struct {
	results *controller.ResultsController
	export  *controller.ExportController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置文件变更后依次通知各组件
func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	a.Config = cfg
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		exportRecord: repository.NewExportRecordRepository(db),
	}
	// 未配置 Redis 时保持 nil 接口，ResultsService 据此关闭缓存
	if rdb != nil {
		repos.datasetCache = repository.NewDatasetCacheRepository(rdb)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.smartschool = service.NewSmartschoolClient(cfg.Smartschool)
	s.results = service.NewResultsService(s.smartschool, repos.datasetCache, cfg.Cache.TTL())
	s.export = service.NewExportService(s.results, s.storage, repos.exportRecord)

	// 热更新：分页大小、限流、超时和缓存时间
	a.RegisterConfigCallback(func(c *config.Config) {
		s.smartschool.UpdateConfig(c.Smartschool)
		s.results.SetCacheTTL(c.Cache.TTL())
		logger.Log.Info("Smartschool client reconfigured",
			zap.Int("itemsOnPage", c.Smartschool.ItemsOnPage),
			zap.Float64("rps", c.Smartschool.RequestsPerSecond),
			zap.Duration("cacheTTL", c.Cache.TTL()),
		)
	})

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		results: controller.NewResultsController(s.results),
		export:  controller.NewExportController(s.export),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config, configFile string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:     cfg,
		ConfigFile: configFile,
		DB:         db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("better-results", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 配置热加载
	if a.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.String("file", filepath.Clean(a.ConfigFile)), zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
