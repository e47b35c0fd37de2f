package main

import (
	"fmt"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/config"
	appHTTP "github.com/fachturrpl1/absensi-sub002/internal/handler/http"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/cron"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/jwt"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/sse"
	"github.com/fachturrpl1/absensi-sub002/internal/repository/postgresql"
	attendanceService "github.com/fachturrpl1/absensi-sub002/internal/service/attendance"
	dashboardService "github.com/fachturrpl1/absensi-sub002/internal/service/dashboard"
	deviceService "github.com/fachturrpl1/absensi-sub002/internal/service/device"
	groupService "github.com/fachturrpl1/absensi-sub002/internal/service/group"
	leaveService "github.com/fachturrpl1/absensi-sub002/internal/service/leave"
	memberService "github.com/fachturrpl1/absensi-sub002/internal/service/member"
	notificationService "github.com/fachturrpl1/absensi-sub002/internal/service/notification"
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
	defer db.Close()

	organizationRepo := postgresql.NewOrganizationRepository(db)
	memberRepo := postgresql.NewMemberRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := sse.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, memberRepo, hub)
	memberSvc := memberService.NewMemberService(memberRepo, groupRepo)
	groupSvc := groupService.NewGroupService(groupRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, memberRepo, deviceRepo, notificationSvc)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, memberRepo, attendanceRepo, notificationSvc)
	deviceSvc := deviceService.NewDeviceService(deviceRepo, memberRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, organizationRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(organizationRepo, memberRepo, attendanceRepo, dashboardRepo, notificationSvc).
		RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:     JWTService,
		DeviceService:  deviceSvc,
		Dashboard:      appHTTP.NewDashboardHandler(dashboardSvc),
		Member:         appHTTP.NewMemberHandler(memberSvc),
		Group:          appHTTP.NewGroupHandler(groupSvc),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:          appHTTP.NewLeaveHandler(leaveSvc),
		Notification:   appHTTP.NewNotificationHandler(notificationSvc, JWTService, hub),
		Device:         appHTTP.NewDeviceHandler(deviceSvc),
		AllowedOrigins: cfg.App.AllowedOrigins,
		Environment:    cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
