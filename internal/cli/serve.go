package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"prompt-lab/config"
	"prompt-lab/internal/database"
	"prompt-lab/internal/handler"
	"prompt-lab/internal/logger"
	"prompt-lab/internal/observability"
	"prompt-lab/internal/provider"
	"prompt-lab/internal/scheduler"
	"prompt-lab/internal/service"
)

func newServeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, log)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	shutdownTracing, err := observability.InitOTel(ctx, log, cfg.Otel)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := openAndMigrate(cfg, log)
	if err != nil {
		return err
	}

	// 初始化默认配置
	if err := service.NewSettingsService(db).InitDefaults(); err != nil {
		return fmt.Errorf("init default config: %w", err)
	}

	registry := provider.NewRegistryFromConfig(cfg.Providers, cfg.Stream.SimulatedDelay)
	for _, p := range registry.Providers() {
		log.Info("Provider registered", "provider", p, "configured", registry.Configured(p))
	}

	// 启动定时任务
	janitor := service.NewJanitorService(db, log, cfg.Cron.SessionRetentionDays)
	sched := scheduler.NewScheduler(janitor, cfg.Cron, log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	gin.SetMode(cfg.Server.Mode)
	h := handler.NewHandler(db, registry, log)
	h.SetScheduler(sched)
	router := handler.NewRouter(h, log, cfg.Otel.ServiceName)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

func openAndMigrate(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	// 自动迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openAndMigrate(cfg, log)
			if err != nil {
				return err
			}
			if err := service.NewSettingsService(db).InitDefaults(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ migration complete"))
			return nil
		},
	}
}

func newSeedCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the built-in prompt templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openAndMigrate(cfg, log)
			if err != nil {
				return err
			}
			created, err := service.NewTemplateService(db).SeedDefaults()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %d templates created", created)))
			return nil
		},
	}
}
