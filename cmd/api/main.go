package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	dbadapter "studyplanner/internal/adapter/db"
	httpadapter "studyplanner/internal/adapter/http"
	"studyplanner/internal/adapter/http/handlers"
	httpmiddleware "studyplanner/internal/adapter/http/middleware"
	"studyplanner/internal/adapter/llm"
	"studyplanner/internal/adapter/notify"
	"studyplanner/internal/app/planner"
	appservice "studyplanner/internal/app/service"
	"studyplanner/internal/config"
	"studyplanner/internal/core/ports"
	"studyplanner/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageKo},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	var generator ports.PlanGenerator
	if cfg.OpenAIKey != "" {
		generator = llm.NewClient(llm.Config{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.OpenAITimeout,
		})
		logger.Info("plan generation service enabled", zap.String("model", cfg.OpenAIModel))
	} else {
		logger.Info("no generation key configured, plans use the deterministic fallback")
	}

	taskRepository := dbadapter.NewTaskRepository(db)
	deriver := planner.NewDeriver(generator)
	taskService := appservice.NewTaskService(taskRepository, deriver)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	healthHandler := handlers.NewHealthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	scheduler := startReminderJob(cfg, taskRepository, logger)
	if scheduler != nil {
		defer func() {
			ctx := scheduler.Stop()
			<-ctx.Done()
		}()
	}

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

// startReminderJob wires the daily deadline summary when a telegram token is
// configured. Returns nil when reminders are disabled.
func startReminderJob(cfg *config.Config, taskRepository ports.TaskRepository, logger *zap.Logger) *cron.Cron {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		logger.Info("telegram not configured, deadline reminders disabled")
		return nil
	}

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		logger.Warn("failed to init telegram notifier, reminders disabled", zap.Error(err))
		return nil
	}

	reminders := appservice.NewReminderService(taskRepository, cfg.ReminderHorizon)

	scheduler := cron.New()
	spec, err := dailySpec(cfg.ReminderTime)
	if err != nil {
		logger.Warn("invalid reminder time, reminders disabled", zap.String("time", cfg.ReminderTime), zap.Error(err))
		return nil
	}

	_, err = scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		summary, err := reminders.DueSoonSummary(ctx, time.Now())
		if err != nil {
			logger.Error("failed to build reminder summary", zap.Error(err))
			return
		}
		if summary == "" {
			return
		}
		if err := notifier.Send(summary); err != nil {
			logger.Error("failed to send reminder", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("failed to schedule reminders", zap.Error(err))
		return nil
	}

	scheduler.Start()
	logger.Info("deadline reminders scheduled", zap.String("time", cfg.ReminderTime))
	return scheduler
}

// dailySpec converts HH:MM into a cron expression.
func dailySpec(timeStr string) (string, error) {
	parsed, err := time.Parse("15:04", timeStr)
	if err != nil {
		return "", fmt.Errorf("parse reminder time %q: %w", timeStr, err)
	}
	return fmt.Sprintf("%d %d * * *", parsed.Minute(), parsed.Hour()), nil
}
