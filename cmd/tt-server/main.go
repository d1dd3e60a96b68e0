package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/haconeco/task-tracker/internal/config"
	"github.com/haconeco/task-tracker/internal/mcp"
	"github.com/haconeco/task-tracker/internal/repository"
	"github.com/haconeco/task-tracker/internal/service"
)

func main() {
	// stdoutはMCPのstdioトランスポートが使うため、ログはstderrへ
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.JSONFormatter{})

	// 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}
	if err := configureLogger(logger, cfg); err != nil {
		logger.WithError(err).Fatal("invalid log level")
	}

	tp := newTracerProvider(logger)
	otel.SetTracerProvider(tp)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Warn("failed to shut down tracer provider")
		}
	}()

	// リポジトリ層初期化
	repos, err := repository.NewRepositories(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize repositories")
	}
	defer repos.Close()

	// サービス層初期化
	services := service.NewServices(repos, cfg, logger)

	// MCPサーバー初期化・起動
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.WithField("signal", sig.String()).Info("received signal, shutting down")
		cancel()
	}()

	server, err := mcp.NewServer(services, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create MCP server")
	}

	logger.WithFields(log.Fields{
		"version": cfg.Version,
		"storage": cfg.Storage.Driver,
	}).Info("starting task tracker MCP server")
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("server error")
		os.Exit(1)
	}
}

func configureLogger(logger *log.Logger, cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}
