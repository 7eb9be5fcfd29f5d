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

	"go.uber.org/zap"

	"risk-assessment/internal/auth"
	"risk-assessment/internal/catalog"
	"risk-assessment/internal/config"
	"risk-assessment/internal/database"
	"risk-assessment/internal/handlers"
	"risk-assessment/internal/logger"
	"risk-assessment/internal/metrics"
	"risk-assessment/internal/report"
	"risk-assessment/internal/server"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := database.Init(cfg.DBDSN, zlog, cfg.LogLevel); err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	cat, err := catalog.Default()
	if err != nil {
		zlog.Fatal("risk catalog", zap.Error(err))
	}

	var mailer auth.Mailer = auth.LogMailer{Log: zlog.Named("mail")}
	if cfg.SMTPAddr != "" {
		mailer = auth.SMTPMailer{
			Addr:     cfg.SMTPAddr,
			From:     cfg.SMTPFrom,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}
	} else if cfg.IsProduction() {
		zlog.Warn("SMTP_ADDR not set, login links are only logged")
	}

	pdf := report.NewChromeRenderer(report.ChromeConfig{
		RemoteURL: cfg.ChromeRemoteURL,
		NoSandbox: cfg.ChromeNoSandbox,
	}, zlog)
	defer pdf.Close()

	h := handlers.New(
		database.DB,
		auth.NewService(database.DB, mailer, cfg.BaseURL, cfg.MagicLinkTTL),
		cat,
		metrics.New(true),
		pdf,
	)
	r := server.NewRouter(cfg, h, zlog)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
