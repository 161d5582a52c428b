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
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solune-backend/config"
	"solune-backend/controllers"
	"solune-backend/feed"
	"solune-backend/metrics"
	"solune-backend/routes"
	"solune-backend/services"
	"solune-backend/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "solune-backend",
		Short: "Salon bookkeeping and analytics API",
		RunE:  serve,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE:  serve,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE:  migrate,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	printRoutes bool
	version     = "dev"
)

func main() {
	serveCmd.Flags().BoolVar(&printRoutes, "routes", false, "print registered routes on startup")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "solune-backend:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap() (*config.Config, *zap.Logger, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := config.InitLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Migrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, logger, store.New(db), nil
}

func migrate(cmd *cobra.Command, args []string) error {
	_, logger, _, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("Schema is up to date")
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, logger, s, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	generated, err := cfg.EnsureJWTSecret()
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("JWT_SECRET not set, using a random key; sessions end on restart")
	}

	m := metrics.New()
	hub := feed.NewHub(s, logger.Named("feed"))

	var sender services.Sender
	if cfg.Twilio.Configured() {
		sender = services.NewTwilioSender(cfg.Twilio)
	} else {
		logger.Warn("Twilio credentials missing, promotions are disabled")
	}
	promos := services.NewPromotionService(sender, s.PromotionLogs, cfg.MessageDelay, logger.Named("promotions"), m.PromotionSent)

	ctl := controllers.New(s, hub, cfg, m, promos, logger)
	if _, err := ctl.Refresh(cmd.Context()); err != nil {
		logger.Warn("Initial snapshot failed", zap.Error(err))
	}

	sched := services.NewScheduler(cfg.Location(), time.Minute, logger.Named("scheduler"))
	if err := sched.Add(cfg.RefreshCron, "refresh", func(ctx context.Context) error {
		_, err := ctl.Refresh(ctx)
		return err
	}); err != nil {
		return err
	}
	if err := sched.Add(cfg.DailyCron, "daily-report", ctl.DailyReport); err != nil {
		return err
	}
	sched.Start()

	r := routes.SetupRouter(ctl)
	if printRoutes {
		for _, route := range r.Routes() {
			fmt.Printf("%-6s %s\n", route.Method, route.Path)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// open event streams never finish on their own
	srv.RegisterOnShutdown(hub.Close)

	errc := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
