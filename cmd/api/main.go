package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/codecraft/institute-backend/internal/config"
	"github.com/codecraft/institute-backend/internal/events"
	"github.com/codecraft/institute-backend/internal/gateway"
	"github.com/codecraft/institute-backend/internal/handler"
	"github.com/codecraft/institute-backend/internal/middleware"
	"github.com/codecraft/institute-backend/internal/migration"
	"github.com/codecraft/institute-backend/internal/repository"
	"github.com/codecraft/institute-backend/internal/routes"
	"github.com/codecraft/institute-backend/internal/scheduler"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/pkg/jwt"
	pkglogger "github.com/codecraft/institute-backend/pkg/logger"
	pkgredis "github.com/codecraft/institute-backend/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Institute Payment API
// @version         1.0
// @description     강의 결제, 분할 납부, 쿠폰, 수료증 API
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath(env string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	dotenvFiles := config.LoadDotEnv(".", env)

	// 로거 초기화
	pkglogger.InitStructured(env)
	log := pkglogger.GetLogger()
	log.Info().Str("env", env).Strs("env_files", dotenvFiles).Msg("starting")

	// 설정 로드
	configPath := getConfigPath(env)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}
	pkglogger.SetLevel(cfg.Log.Level)
	config.LogResolved(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// MySQL 연결 (결제 원장이므로 DB 없이는 기동하지 않음)
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("connected to MySQL")

	// Redis 연결 (없으면 캐시, 이벤트 발행, 요청 제한 없이 동작)
	var redisClient *redis.Client
	redisClient, err = pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without Redis")
		redisClient = nil
	} else {
		log.Info().Msg("connected to Redis")
	}

	// Repositories
	courseRepo := repository.NewCourseRepository(db)
	planRepo := repository.NewCachedInstallmentPlanRepository(
		repository.NewInstallmentPlanRepository(db),
		redisClient,
		repository.DefaultPlanCacheConfig(),
	)
	couponRepo := repository.NewCouponRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	eventRepo := repository.NewGatewayEventRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)

	// Gateway
	sslcommerz := gateway.NewSSLCommerzGateway(gateway.SSLCommerzConfig{
		StoreID:       cfg.Gateway.StoreID,
		StorePassword: cfg.Gateway.StorePassword,
		Sandbox:       cfg.Gateway.Sandbox,
		BaseURL:       cfg.Gateway.BaseURL,
		Timeout:       cfg.Gateway.Timeout,
	})

	// Services
	pricingService := service.NewPricingService(courseRepo, planRepo, couponRepo)
	paymentService := service.NewPaymentService(
		paymentRepo,
		eventRepo,
		courseRepo,
		pricingService,
		sslcommerz,
		events.NewRedisPublisher(redisClient, cfg.Redis.Channel),
		service.PaymentConfig{
			SuccessURL:      cfg.Gateway.SuccessURL,
			FailURL:         cfg.Gateway.FailURL,
			CancelURL:       cfg.Gateway.CancelURL,
			IPNURL:          cfg.Gateway.IPNURL,
			ProductCategory: cfg.Gateway.ProductCategory,
		},
	)
	planService := service.NewInstallmentPlanService(planRepo)
	couponService := service.NewCouponService(couponRepo)
	certificateService := service.NewCertificateService(certificateRepo, paymentRepo)

	// JWT Manager
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Gin 라우터 생성
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SecurityHeaders("/api/"))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unavailable"
		}
		c.JSON(status, gin.H{
			"status":  dbStatus,
			"service": "institute-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auditLogger := middleware.NewAuditLogger(db)
	if err := routes.Setup(router, routes.Handlers{
		Payment:     handler.NewPaymentHandler(paymentService),
		Pricing:     handler.NewPricingHandler(pricingService, planService),
		Coupon:      handler.NewCouponHandler(couponService),
		Certificate: handler.NewCertificateHandler(certificateService),
		Audit:       handler.NewAuditHandler(auditLogger),
	}, jwtManager, redisClient, auditLogger, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "not found"}})
	})

	// 주기 작업
	jobs := scheduler.New(paymentService, func() int {
		sqlDB, err := db.DB()
		if err != nil {
			return 0
		}
		return sqlDB.Stats().InUse
	}, scheduler.Config{
		SweepEnabled:  cfg.Sweep.Enabled,
		SweepSchedule: cfg.Sweep.Schedule,
		StaleAfter:    cfg.Sweep.StaleAfter,
		BatchSize:     cfg.Sweep.BatchSize,
	})
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	// 서버 시작
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	jobs.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s, delimiter string) []string {
	var out []string
	for _, part := range strings.Split(s, delimiter) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// initDB MySQL 연결 초기화
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+00:00'"

	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
