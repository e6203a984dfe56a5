package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/browser"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/mahwari/internal/api"
	"github.com/terraincognita07/mahwari/internal/config"
	"github.com/terraincognita07/mahwari/internal/db"
	"github.com/terraincognita07/mahwari/internal/logger"
	"github.com/terraincognita07/mahwari/internal/scheduler"
	"github.com/terraincognita07/mahwari/internal/services"
	"github.com/terraincognita07/mahwari/internal/telegram"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var openBrowser bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server and the reminder scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, log, openBrowser)
		},
	}
	cmd.Flags().BoolVar(&openBrowser, "open", false, "open the dashboard in the default browser")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, log *zap.Logger, openBrowser bool) error {
	secretKey, err := config.ResolveSecretKey()
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.CloseSQLite(database); err != nil {
			log.Warn("database close failed", zap.Error(err))
		}
	}()

	handler, err := api.NewHandler(database, api.Options{
		SecretKey:    secretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler, log)

	reminders, err := startReminders(cfg, database, log)
	if err != nil {
		return err
	}
	if reminders != nil {
		defer reminders.Stop()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	address := ":" + cfg.Port
	if openBrowser {
		go openDashboard(dashboardURL(cfg.Port), log)
	}

	log.Info("mahwari listening",
		zap.String("address", address),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
		zap.Bool("reminders", reminders != nil),
	)
	if err := app.Listen(address); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// startReminders returns nil when Telegram credentials are not configured.
func startReminders(cfg *config.Config, database *gorm.DB, log *zap.Logger) (*scheduler.ReminderScheduler, error) {
	if !cfg.RemindersEnabled() {
		log.Info("telegram reminders disabled")
		return nil, nil
	}

	sender, err := telegram.NewSender(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramAPIURL)
	if err != nil {
		return nil, fmt.Errorf("telegram init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	cycles := services.NewCycleService(repositories.Cycles)
	reminderService := services.NewReminderService(cycles, sender, cfg.ReminderDaysBefore, cfg.Location, log.Named("reminders"))

	reminderScheduler := scheduler.NewReminderScheduler(reminderService, cfg.ReminderCron, cfg.Location, log)
	if err := reminderScheduler.Start(); err != nil {
		return nil, err
	}
	return reminderScheduler, nil
}

func dashboardURL(port string) string {
	return "http://localhost:" + port + api.HomePath
}

func openDashboard(url string, log *zap.Logger) {
	time.Sleep(300 * time.Millisecond)
	if err := browser.OpenURL(url); err != nil {
		log.Warn("open browser failed", zap.String("url", url), zap.Error(err))
	}
}
