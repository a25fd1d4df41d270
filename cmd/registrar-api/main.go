package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leopardweb/registrar-api/api/swagger"
	"github.com/leopardweb/registrar-api/internal/handler"
	"github.com/leopardweb/registrar-api/internal/middleware"
	"github.com/leopardweb/registrar-api/internal/models"
	"github.com/leopardweb/registrar-api/internal/repository"
	"github.com/leopardweb/registrar-api/internal/service"
	"github.com/leopardweb/registrar-api/pkg/cache"
	"github.com/leopardweb/registrar-api/pkg/config"
	"github.com/leopardweb/registrar-api/pkg/database"
	"github.com/leopardweb/registrar-api/pkg/logger"
	corsmiddleware "github.com/leopardweb/registrar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/leopardweb/registrar-api/pkg/middleware/requestid"
)

// @title LeopardWeb Registrar API
// @version 1.0.0
// @description Course registration service for students, instructors and admins
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	validate := validator.New()

	accountRepo := repository.NewAccountRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	var catalogCache *service.CatalogCache
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		catalogCache = service.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL, logr)
	}

	authSvc := service.NewAuthService(accountRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	accountSvc := service.NewAccountService(accountRepo, validate, logr)

	// pass a true nil interface when the cache is disabled
	var courseSvc *service.CourseService
	if catalogCache != nil {
		courseSvc = service.NewCourseService(courseRepo, accountRepo, catalogCache, validate, logr)
	} else {
		courseSvc = service.NewCourseService(courseRepo, accountRepo, nil, validate, logr)
	}
	enrollmentSvc := service.NewEnrollmentService(registrationRepo, accountRepo, logr)
	metricsSvc := service.NewMetricsService()

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportSvc = service.NewExportService(enrollmentSvc, logr)
	}

	authHandler := handler.NewAuthHandler(authSvc, accountSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, enrollmentSvc, exportSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	courses := api.Group("/courses", middleware.JWT(authSvc))
	{
		courses.GET("", courseHandler.List)
		courses.GET("/:crn", courseHandler.Get)
		courses.POST("", middleware.RequireRoles(models.RoleAdmin), courseHandler.Create)
		courses.DELETE("/:crn", middleware.RequireRoles(models.RoleAdmin), courseHandler.Delete)
		courses.GET("/:crn/roster", middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin), courseHandler.Roster)
		courses.GET("/:crn/roster/export", middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin), courseHandler.ExportRoster)
	}

	students := api.Group("/students/me", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleStudent))
	{
		students.GET("/schedule", enrollmentHandler.Schedule)
		students.GET("/schedule/export", enrollmentHandler.ExportSchedule)
		students.POST("/registrations", enrollmentHandler.Register)
		students.DELETE("/registrations/:crn", enrollmentHandler.Drop)
	}

	instructors := api.Group("/instructors/me", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleInstructor))
	{
		instructors.GET("/courses", courseHandler.MyCourses)
	}

	admin := api.Group("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/accounts", accountHandler.Create)
		admin.GET("/accounts", accountHandler.List)
		admin.GET("/accounts/:username", accountHandler.Get)
		admin.DELETE("/accounts/:username", accountHandler.Delete)
		admin.POST("/registrations", enrollmentHandler.AdminRegister)
		admin.DELETE("/registrations", enrollmentHandler.AdminDrop)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
