package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"msgsource-go/internal/apperrors"
	"msgsource-go/internal/handler"
	"msgsource-go/internal/i18n"
	"msgsource-go/internal/middleware"
	"msgsource-go/internal/repository"
	"msgsource-go/internal/service"
	"msgsource-go/pkg/logging"
)

func initConfig() {
	wd, _ := os.Getwd()
	log.Printf("Loading config from: %s/config.yaml", wd)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

// initMessageEngine 初始化消息引擎：manifest -> store -> catalog -> resolver
// 资源解析错误和绑定声明错误都是部署配置问题，启动阶段直接失败，绝不带病上线
func initMessageEngine() {
	manifestPath := viper.GetString("i18n.manifest")
	if manifestPath == "" {
		manifestPath = "bundles.toml"
	}

	manifest, err := i18n.LoadManifest(manifestPath)
	if err != nil {
		logging.Logger.Fatal("Failed to load bundle manifest", zap.Error(err))
	}

	policy, err := i18n.ParseMissPolicy(viper.GetString("i18n.miss_policy"))
	if err != nil {
		logging.Logger.Fatal("Invalid miss policy", zap.Error(err))
	}
	frozen := viper.GetBool("i18n.frozen")

	// 文件资源打底，数据库条目叠加覆盖
	catalog, store, err := manifest.BuildCatalog(policy, frozen, repository.NewDBSource(repository.DB))
	if err != nil {
		logging.Logger.Fatal("Failed to build message catalog", zap.Error(err))
	}

	// 预加载全部 bundle，把格式非法的资源在启动时暴露出来
	if err := catalog.Preload(); err != nil {
		logging.Logger.Fatal("Failed to preload bundles", zap.Error(err))
	}

	resolver := i18n.NewResolver(catalog)
	service.InitMessageEngine(resolver, catalog, store)

	// 组件注入点注册：空 key、解析不到的 key 都在这里暴露
	if err := service.InitBindings(resolver); err != nil {
		logging.Logger.Fatal("Failed to register message bindings", zap.Error(err))
	}

	// 启动时跑一遍一致性校验，发现漏翻只告警不阻断（上线前由 bundlecheck 阻断）
	report, err := i18n.ValidateConsistency(catalog, apperrors.RequiredMessageKeys())
	if err != nil {
		logging.Logger.Fatal("Consistency check failed to run", zap.Error(err))
	}
	if !report.OK() {
		logging.Logger.Warn("Bundle consistency issues found",
			zap.Int("findings", len(report.Findings)),
			zap.String("report", report.String()),
		)
	}

	logging.Logger.Info("Message engine initialized",
		zap.Strings("basenames", catalog.Basenames()),
		zap.String("default_locale", catalog.DefaultLocale().String()),
		zap.String("miss_policy", policy.String()),
		zap.Bool("frozen", frozen),
	)
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	conn := repository.RedisPool.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			logging.Logger.Warn("Redis connection close failed", zap.Error(err))
		}
	}()

	logging.Logger.Info("Server exiting")
}

func main() {

	initConfig()
	// 初始化日志系统
	logging.InitLoggerFromConfig()

	logging.Logger.Info("Application started")

	repository.InitDB(logging.Logger, logging.AtomicLevel)
	repository.InitRedis()

	// 初始化消息引擎（加载 bundle、注册绑定、启动期校验）
	initMessageEngine()

	r := gin.New()
	r.Use(gin.Recovery()) // 显式添加 Recovery 中间件

	// 注册全局中间件：错误处理、日志、跨域、语言协商
	r.Use(middleware.GlobalErrorMiddleware(service.Resolver))
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.LocaleMiddleware(service.Catalog))

	api := r.Group("/api")
	{
		api.GET("/message/:key", handler.ResolveMessageHandler)
		api.GET("/message/:key/locale/:locale", handler.ResolveForLocaleHandler)
		api.GET("/greeting", handler.GreetingHandler)

		api.POST("/entry", handler.UpsertEntryHandler)
		api.GET("/entry", handler.ListEntriesHandler)
		api.POST("/invalidate", handler.InvalidateHandler)
		api.GET("/report", handler.ReportHandler)
	}

	c := cron.New()

	// 定时热加载：非冻结模式下周期性清空缓存，让文件/数据库里的改动生效
	reloadSpec := viper.GetString("i18n.reload_cron")
	if reloadSpec == "" {
		reloadSpec = "*/10 * * * *"
	}
	if !service.Store.Frozen() {
		if _, err := c.AddFunc(reloadSpec, func() {
			if err := service.Store.InvalidateAll(); err != nil {
				logging.Logger.Error("Failed to reload bundles via cron job", zap.Error(err))
				return
			}
			logging.Logger.Info("Bundle cache invalidated, will reload on next resolve")
		}); err != nil {
			logging.Logger.Fatal("Failed to schedule reload cron job", zap.Error(err))
		}
	}

	// 定时把未命中计数器落库
	if _, err := c.AddFunc("*/10 * * * *", func() {
		if err := service.StatisticalData(); err != nil {
			logging.Logger.Error("Failed to flush miss stats via cron job", zap.Error(err))
		}
	}); err != nil {
		logging.Logger.Fatal("Failed to schedule stats cron job", zap.Error(err))
	}

	c.Start()

	startServer(r)
}
