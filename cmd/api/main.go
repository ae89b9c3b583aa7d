package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/shiftwise-hq/workforce-backend-go/internal/config"
	appHTTP "github.com/shiftwise-hq/workforce-backend-go/internal/handler/http"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/jwt"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/sse"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftwise-hq/workforce-backend-go/internal/service/attendance"
	authService "github.com/shiftwise-hq/workforce-backend-go/internal/service/auth"
	notifierService "github.com/shiftwise-hq/workforce-backend-go/internal/service/notifier"
	reportService "github.com/shiftwise-hq/workforce-backend-go/internal/service/report"
	scheduleService "github.com/shiftwise-hq/workforce-backend-go/internal/service/schedule"
	settingsService "github.com/shiftwise-hq/workforce-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	alertRepo := postgresql.NewAlertRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	notifier := notifierService.NewAlertNotifier(alertRepo, hub, logger)
	clockEventSvc := attendanceService.NewClockEventService(recordRepo, assignmentRepo, settingsRepo, notifier)
	reportSvc := reportService.NewReportService(recordRepo, assignmentRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	scheduleSvc := scheduleService.NewScheduleService(assignmentRepo, userRepo)
	authSvc := authService.NewAuthService(userRepo, JWTService)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		JWTService:          JWTService,
		AuthHandler:         appHTTP.NewAuthHandler(authSvc, JWTService),
		AttendanceHandler:   appHTTP.NewAttendanceHandler(clockEventSvc),
		ReportHandler:       appHTTP.NewReportHandler(reportSvc),
		SettingsHandler:     appHTTP.NewSettingsHandler(settingsSvc),
		ScheduleHandler:     appHTTP.NewScheduleHandler(scheduleSvc),
		NotificationHandler: appHTTP.NewNotificationHandler(hub, JWTService),
		AllowedOrigins:      []string{cfg.App.FrontendURL},
		Env:                 cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
