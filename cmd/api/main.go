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

	"github.com/cmlabs-hris/hris-portal-go/internal/config"
	"github.com/cmlabs-hris/hris-portal-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-portal-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-portal-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hris-portal-go/internal/service/calendar"
	dashboardService "github.com/cmlabs-hris/hris-portal-go/internal/service/dashboard"
	taskService "github.com/cmlabs-hris/hris-portal-go/internal/service/task"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(slog.String("app", "hris-portal")))

	policy, err := timepolicy.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Failed to initialize time policy: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hrisClient := hrisapi.NewClient(cfg.HRISAPI.BaseURL, hrisapi.WithTimeout(cfg.HRISAPI.Timeout))
	taskRepo := memory.NewTaskRepository()
	hub := sse.NewHub()

	seeder := fixtures.NewSeeder(policy, taskRepo, cfg.Demo.TasksFile, cfg.Demo.Seed)
	if _, err := seeder.Reset(ctx); err != nil {
		log.Fatal("Failed to seed demo tasks: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	calendarSvc := calendarService.NewCalendarService(policy, taskRepo)
	attendanceSvc := attendanceService.NewAttendanceService(policy, hrisClient)
	taskSvc := taskService.NewTaskService(policy, taskRepo, hrisClient,
		taskService.WithProvisioner(seeder),
		taskService.WithPublisher(hub),
	)
	dashboardSvc := dashboardService.NewDashboardService(policy, attendanceSvc, taskSvc, calendarSvc)

	// Midnight in the portal timezone
	scheduler := cron.NewScheduler(policy.Location())
	var resetter cron.DemoResetter
	if cfg.Demo.ResetDaily {
		resetter = seeder
	}
	if err := cron.NewDayRolloverJobs(calendarSvc, hub, resetter).RegisterJobs(scheduler); err != nil {
		log.Fatal("Failed to register cron jobs: ", err)
	}
	scheduler.Start()
	if next, ok := scheduler.NextAfter(cron.JobDayRollover, policy.Now()); ok {
		slog.Info("Day rollover scheduled", "next", next.Format(time.RFC3339), "timezone", policy.Zone())
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			Version:     version,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewTimeHandler(calendarSvc, hub),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewTaskHandler(taskSvc),
		appHTTP.NewCalendarHandler(calendarSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "timezone", policy.Descriptor().DisplayLabel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}
