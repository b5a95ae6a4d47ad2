package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/config"
	_ "github.com/d60-Lab/social-feed/docs"
	"github.com/d60-Lab/social-feed/internal/api/handler"
	"github.com/d60-Lab/social-feed/internal/api/router"
	"github.com/d60-Lab/social-feed/internal/cacheindex"
	"github.com/d60-Lab/social-feed/internal/media"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/database"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// @title social-feed API
// @version 1.0
// @description 社交 Feed 服务：帖子 / 点赞 / 评论 / 关注 / 通知
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Mode)
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing := initTracing(cfg)
	defer shutdownTracing()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("init database", zap.Error(err))
		os.Exit(1)
	}
	rdb := database.InitRedis(cfg)

	storage := media.New(cfg)
	purger := service.NewMediaPurger(storage, 1024)
	stopPurger := purger.Start(2)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	fanRepo := repository.NewFanRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var userIndex *cacheindex.UserIndex
	if rdb != nil {
		userIndex = cacheindex.NewUserIndex(db, rdb, 10*time.Minute)
	}

	engagementSvc := service.NewEngagementService(db, userRepo, postRepo, likeRepo, cfg.Notify)
	feedSvc := service.NewFeedService(postRepo, userRepo, followRepo, likeRepo)
	postSvc := service.NewPostService(db, userRepo, postRepo, storage, purger)
	userSvc := service.NewUserService(db, userRepo, followRepo, fanRepo, userIndex, storage, purger)
	notificationSvc := service.NewNotificationService(notificationRepo)

	h := handler.New(engagementSvc, feedSvc, postSvc, userSvc, notificationSvc)
	engine := router.Setup(cfg, h)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	_ = stopPurger(ctx)
	if rdb != nil {
		_ = rdb.Close()
	}
}

// initTracing 按配置接 OTLP/HTTP exporter；关闭时返回的函数负责 flush
func initTracing(cfg *config.Config) func() {
	if !cfg.Trace.Enabled {
		return func() {}
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Trace.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("tracing exporter init failed", zap.Error(err))
		return func() {}
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
}
