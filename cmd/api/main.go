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

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	serviceCompany "github.com/cmlabs-hris/hris-attendance-go/internal/service/company"
	holidayService "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
	reportService "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	normalizer := cfg.Normalizer()
	thresholds := cfg.Thresholds()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo, companyRepo, normalizer)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, companyRepo, normalizer, thresholds)
	reportSvc := reportService.NewReportService(companyRepo, holidayRepo, attendanceRepo, normalizer, thresholds)
	companySvc := serviceCompany.NewCompanyService(db, companyRepo, holidayRepo, normalizer, thresholds)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.Handlers{
			Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Company:    appHTTP.NewCompanyHandler(companySvc),
		},
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewWeeklyDriftJobs(companyRepo, holidayRepo).RegisterJobs(scheduler, cfg.Cron.DriftCheckInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "env", cfg.App.Env, "reference_tz", normalizer.Zone())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
