package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/hrms-lite/assets"
	"github.com/ogurasousui/hrms-lite/internal/adapters/events/natsbus"
	"github.com/ogurasousui/hrms-lite/internal/adapters/httpapi"
	"github.com/ogurasousui/hrms-lite/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
	"github.com/ogurasousui/hrms-lite/internal/core/event"
	"github.com/ogurasousui/hrms-lite/internal/core/hello"
	"github.com/ogurasousui/hrms-lite/internal/core/payroll"
	"github.com/ogurasousui/hrms-lite/internal/platform/config"
	pg "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/ogurasousui/hrms-lite/internal/platform/logging"
	"github.com/ogurasousui/hrms-lite/internal/platform/metrics"
	"github.com/ogurasousui/hrms-lite/internal/platform/server"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.ResolvePath(*configPath)); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	if cfg.Database.AutoMigrate {
		if err := migrateUp(cfg.Database.DSN()); err != nil {
			return err
		}
		logger.Info("database migrated")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer dbPool.Close()

	isolation, err := pg.ParseIsolationLevel(cfg.Database.IsolationLevel)
	if err != nil {
		return err
	}

	m := metrics.New()
	txManager := pg.NewTransactionManager(dbPool, isolation, m)

	publishers := event.Fanout{m}
	if cfg.NATS.URL != "" {
		conn, err := natsbus.Connect(cfg.NATS.URL, "hrms-lite")
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Drain(); err != nil {
				logger.Warn("nats drain failed", "error", err)
			}
		}()
		publishers = append(publishers, natsbus.NewPublisher(conn, cfg.NATS.SubjectPrefix))
		logger.Info("publishing domain events", "url", cfg.NATS.URL, "prefix", cfg.NATS.SubjectPrefix)
	}

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	attendanceRepo := postgres.NewAttendanceRepository(dbPool)
	salaryRepo := postgres.NewSalaryRepository(dbPool)

	directorySvc := directory.NewService(employeeRepo, nil, txManager, publishers)
	attendanceSvc := attendance.NewService(attendanceRepo, directorySvc, nil, txManager, publishers, cfg.Attendance.Location)
	payrollSvc := payroll.NewService(salaryRepo, directorySvc, nil, txManager, publishers)
	greeterSvc := hello.NewService()

	grpcServer := server.New(cfg.Server.ListenAddr, server.Services{
		Greeter:    greeterSvc,
		Directory:  directorySvc,
		Attendance: attendanceSvc,
		Payroll:    payrollSvc,
	}, grpc.ChainUnaryInterceptor(server.UnaryObserver(logger, m), server.UnaryRecoverer(logger)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening", "addr", cfg.Server.ListenAddr)
		return grpcServer.Run(gctx)
	})

	if cfg.HTTP.ListenAddr != "" {
		router := httpapi.NewRouter(httpapi.Deps{
			Greeter:     greeterSvc,
			Directory:   directorySvc,
			Attendance:  attendanceSvc,
			Payroll:     payrollSvc,
			RecentLimit: cfg.Attendance.RecentLimit,
			Ready:       dbPool.Ping,
			Metrics:     m.Handler(),
			Logger:      logger,
			Observer:    m,
		})
		httpServer := server.NewHTTP(cfg.HTTP.ListenAddr, router, cfg.HTTP.ShutdownTimeout)
		g.Go(func() error {
			logger.Info("HTTP server listening", "addr", cfg.HTTP.ListenAddr)
			return httpServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func migrateUp(dsn string) error {
	migrator, err := pg.NewMigrator(assets.Migrations, "migrations", dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
