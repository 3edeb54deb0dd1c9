package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/cmd"
	"fooddelivery/internal/adapters/out/postgres/migrations"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fooddelivery",
		Short:         "Food delivery order service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), quoteCmd())
	return root
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the delivery tracking job",
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			configs, err := getConfigs()
			if err != nil {
				return err
			}

			gormDB, err := openDatabase(configs)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if down {
				return migrations.Down(sqlDB)
			}
			return migrations.Up(sqlDB)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "Revert every migration instead")
	return cmd
}

// quoteCmd prices a delivery without any infrastructure, handy to check the
// fee table.
func quoteCmd() *cobra.Command {
	var (
		fixedFee         string
		fromLat, fromLng float64
		toLat, toLng     float64
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a delivery fee",
		RunE: func(c *cobra.Command, _ []string) error {
			fee, err := decimal.NewFromString(fixedFee)
			if err != nil {
				return fmt.Errorf("invalid fixed fee %q: %w", fixedFee, err)
			}

			// Invalid coordinates are priced 0.00 rather than refused.
			origin, _ := kernel.NewLocation(fromLat, fromLng)
			destination, _ := kernel.NewLocation(toLat, toLng)

			quote := services.NewDeliveryFeeCalculator().Calculate(fee, origin, destination)
			_, err = fmt.Fprintln(c.OutOrStdout(), quote.StringFixed(2))
			return err
		},
	}

	cmd.Flags().StringVar(&fixedFee, "fixed-fee", "0", "Business flat fee, 0 for distance pricing")
	cmd.Flags().Float64Var(&fromLat, "from-lat", 0, "Business latitude")
	cmd.Flags().Float64Var(&fromLng, "from-lng", 0, "Business longitude")
	cmd.Flags().Float64Var(&toLat, "to-lat", 0, "Client latitude")
	cmd.Flags().Float64Var(&toLng, "to-lng", 0, "Client longitude")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	configs, err := getConfigs()
	if err != nil {
		return err
	}
	if err = configs.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	defer sqlDB.Close()

	if migrate {
		if err = migrations.Up(sqlDB); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, m, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to flush order events", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs.HTTPPort)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	e, err := app.CreateHTTPServer().NewEcho()
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func getConfigs() (cmd.Config, error) {
	// A missing .env is fine: the environment may already be set.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return cmd.Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return configs, nil
}
