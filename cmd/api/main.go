package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	hoursService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/hours"
	settingsService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/settings"
)

var version = "dev"

type repositories struct {
	tx            database.Transactor
	timeRecords   attendance.TimeRecordRepository
	employees     employee.EmployeeRepository
	workSchedules schedule.WorkScheduleRepository
	settings      settings.SettingsRepository
	reprocessLogs hours.ReprocessLogRepository
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := appHTTP.NewLogger(cfg.App.Env, version, level)
	slog.SetDefault(logger)
	response.ExposeInternalErrors(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	policy, err := config.LoadPolicy(cfg.Policy.File)
	if err != nil {
		slog.Error("Failed to load punch policy", "file", cfg.Policy.File, "error", err)
		os.Exit(1)
	}

	loc := cfg.Location()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	settingsSvc := settingsService.NewSettingsService(repos.settings, policy)
	if _, err := settingsSvc.Reload(ctx); err != nil {
		slog.Error("Failed to load system settings", "error", err)
		os.Exit(1)
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.timeRecords,
		repos.employees,
		settingsSvc,
		attendanceService.Options{
			Location:     loc,
			OrderMode:    cfg.Attendance.PunchOrder,
			CodeAttempts: cfg.Attendance.CodeAttempts,
		},
	)
	hoursSvc := hoursService.NewHoursService(repos.tx, repos.timeRecords, repos.employees, repos.reprocessLogs, loc, time.Now)
	dashboardSvc := dashboardService.NewDashboardService(repos.timeRecords, repos.employees, repos.workSchedules, loc, time.Now)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, loc, time.Now)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Logger: logger, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
			Hours:      appHTTP.NewHoursHandler(hoursSvc),
			Settings:   appHTTP.NewSettingsHandler(settingsSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewHoursJobs(hoursSvc, cfg.Reprocess.SystemUserID, cfg.Reprocess.Timeout).RegisterJobs(scheduler, cfg.Reprocess.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", loc.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		if cfg.Database.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.Database.SeedFile); err != nil {
				return nil, err
			}
		}
		slog.Warn("Using in-memory storage; data is lost on restart")
		return &repositories{
			tx:            store,
			timeRecords:   store.TimeRecords(),
			employees:     store.Employees(),
			workSchedules: store.WorkSchedules(),
			settings:      store.Settings(),
			reprocessLogs: store.ReprocessLogs(),
			close:         func() {},
		}, nil

	case config.DriverPostgres:
		opts := database.DefaultPoolOptions()
		if cfg.Database.MaxConns > 0 {
			opts.MaxConns = cfg.Database.MaxConns
		}
		if cfg.Database.MinConns > 0 {
			opts.MinConns = cfg.Database.MinConns
		}
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), opts)
		if err != nil {
			return nil, err
		}
		return &repositories{
			tx:            postgresql.NewTransactor(db),
			timeRecords:   postgresql.NewTimeRecordRepository(db),
			employees:     postgresql.NewEmployeeRepository(db),
			workSchedules: postgresql.NewWorkScheduleRepository(db),
			settings:      postgresql.NewSettingsRepository(db),
			reprocessLogs: postgresql.NewReprocessLogRepository(db),
			close:         db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
