package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"register-server/configs"
	httpEngine "register-server/internal/app/http"
	"register-server/internal/logics"
	"register-server/internal/notifier"
	"register-server/internal/repositories"
	"register-server/internal/utils"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", "", "Path to config file (short)")
	flag.StringVar(&configPath, "config", "", "Path to config file (long)")
	flag.Parse()

	// Initialize configuration
	configs.Init(&configPath)
	configs.Logger.Info("Configuration loaded.",
		zap.String("configPath", configPath),
	)

	// Initialize repositories (Postgres, Redis, MongoDB, S3)
	repositories.Init()

	// Assignment notifications go through a background dispatcher so request
	// handlers never wait on SMTP.
	emailService := utils.NewEmailService(
		configs.Configs.Email.SMTPHost,
		configs.Configs.Email.SMTPPort,
		configs.Configs.Email.Username,
		configs.Configs.Email.Password,
	)
	emailSender := notifier.NewEmailSender(emailService, configs.Configs.Email.SenderEmail)
	dispatcher := notifier.NewDispatcher(emailSender, repositories.DBS.Postgres, configs.Logger, 256)
	dispatcher.Start(2)

	// Weekly pending report scheduler.
	reportCtx, reportCancel := context.WithCancel(context.Background())
	reportService := logics.NewReportService(repositories.DBS.Postgres, emailService, configs.Logger)
	go reportService.Run(reportCtx)

	// Create HTTP server and run it in a separate goroutine.
	httpServer := httpEngine.NewServer(dispatcher)
	go func() {
		if err := httpServer.Start(); err != nil {
			if err.Error() != "http: Server closed" {
				configs.Logger.Fatal("HTTP server error", zap.Error(err))
			}
		}
	}()

	// Wait for an OS shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	configs.Logger.Info("Shutdown signal received")

	reportCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		configs.Logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		configs.Logger.Info("HTTP server shutdown gracefully")
	}

	// Drain the notification queue before exit.
	if err := dispatcher.Shutdown(ctx); err != nil {
		configs.Logger.Error("Notification dispatcher shutdown error", zap.Error(err))
	} else {
		configs.Logger.Info("Notification dispatcher shutdown gracefully")
	}

	configs.Logger.Info("Server exited")
}
