package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mvclass/classroom-api/internal/api/handler"
	"github.com/mvclass/classroom-api/internal/api/middleware"
	"github.com/mvclass/classroom-api/internal/core/domain"
	"github.com/mvclass/classroom-api/internal/core/service"
	"github.com/mvclass/classroom-api/internal/infrastructure/config"
	mongodb "github.com/mvclass/classroom-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mvclass/classroom-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = newErrorHandler(logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	identityRepo := mongodb.NewIdentityRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)
	classroomRepo := mongodb.NewClassroomRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)
	noticeRepo := mongodb.NewNoticeRepository(db)
	seatStore := redisdb.NewSeatStore(rdb)

	// --- Services ---
	roleService := service.NewRoleService(profileRepo, logger)
	bootstrapService := service.NewBootstrapService(profileRepo, teacherRepo, classroomRepo, logger)
	authService := service.NewAuthService(
		identityRepo, profileRepo, roleService, bootstrapService,
		cfg.JWTSecret, cfg.TeacherInviteCode, cfg.TokenTTL, logger,
	)
	joinService := service.NewJoinService(classroomRepo, seatStore, cfg.StudentSessionTTL, logger)
	classroomService := service.NewClassroomService(classroomRepo, seatStore, bootstrapService, logger)
	todoService := service.NewTodoService(todoRepo, classroomRepo, logger)
	noticeService := service.NewNoticeService(noticeRepo, classroomRepo, logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, profileRepo)
	adminHandler := handler.NewAdminHandler(bootstrapService)
	studentHandler := handler.NewStudentHandler(joinService, todoService, noticeService)
	classroomHandler := handler.NewClassroomHandler(classroomService, todoService)
	todoHandler := handler.NewTodoHandler(todoService)
	noticeHandler := handler.NewNoticeHandler(noticeService)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Teacher auth ---
	e.POST("/auth/teacher/signup", authHandler.Signup)
	e.POST("/auth/teacher/login", authHandler.Login)
	e.POST("/auth/teacher/reset-password", authHandler.RequestReset)
	e.POST("/auth/teacher/reset-password/confirm", authHandler.ConfirmReset)
	e.GET("/auth/me", authHandler.Me, authMW)

	// --- Admin ---
	e.POST("/admin/users/:id/role", adminHandler.SetRole, authMW, middleware.RBAC(domain.RoleAdmin))

	// --- Student (cookie session, no bearer token) ---
	student := e.Group("/student")
	student.POST("/join", studentHandler.Join)
	student.POST("/leave", studentHandler.Leave)
	student.GET("/session", studentHandler.Session)
	student.GET("/todos", studentHandler.Todos)
	student.POST("/todos/:id/done", studentHandler.SetTodoDone)
	student.GET("/notices", studentHandler.Notices)
	student.POST("/notices/:id/read", studentHandler.MarkNoticeRead)

	// --- Teacher dashboard ---
	teacher := e.Group("/teacher", authMW, middleware.TeacherOnly())
	teacher.GET("/classroom", classroomHandler.Classroom)
	teacher.GET("/students", classroomHandler.Students)
	teacher.POST("/todos", todoHandler.Create)
	teacher.GET("/todos", todoHandler.List)
	teacher.POST("/notices", noticeHandler.Create)
	teacher.GET("/notices", noticeHandler.List)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  - is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness - are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
