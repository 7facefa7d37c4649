package routes

import (
	"github.com/codecraft/institute-backend/internal/config"
	"github.com/codecraft/institute-backend/internal/handler"
	"github.com/codecraft/institute-backend/internal/middleware"
	"github.com/codecraft/institute-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles the HTTP handlers mounted under /api/v1
type Handlers struct {
	Payment     *handler.PaymentHandler
	Pricing     *handler.PricingHandler
	Coupon      *handler.CouponHandler
	Certificate *handler.CertificateHandler
	Audit       *handler.AuditHandler
}

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	h Handlers,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	auditLogger *middleware.AuditLogger,
	cfg *config.Config,
) error {
	api := router.Group("/api/v1")

	ipnSources, err := middleware.ParseIPAllowlist(cfg.Gateway.IPNAllowedIPs)
	if err != nil {
		return err
	}

	// 요청 제한은 설정이 켜져 있을 때만 적용 (Redis 장애 시 통과)
	var ipnLimit, initiateLimit gin.HandlerFunc = passThrough, passThrough
	if cfg.RateLimit.Enabled {
		ipnCfg := middleware.DefaultRateLimitConfig()
		ipnCfg.RequestsPerMinute = cfg.RateLimit.IPNPerMinute
		ipnCfg.KeyPrefix += "ipn:"
		ipnLimit = middleware.RateLimit(redisClient, ipnCfg)

		initiateCfg := middleware.DefaultRateLimitConfig()
		initiateCfg.RequestsPerMinute = cfg.RateLimit.InitiatePerMinute
		initiateCfg.KeyPrefix += "initiate:"
		initiateCfg.KeyFunc = middleware.UserKey
		initiateLimit = middleware.RateLimit(redisClient, initiateCfg)
	}

	auth := middleware.JWTAuth(jwtManager)
	adminOnly := []gin.HandlerFunc{auth, middleware.RequireAdmin(), middleware.AdminAudit(auditLogger)}

	// 공개 API
	api.GET("/installment-plans", h.Pricing.ListActivePlans)
	api.GET("/courses/:id/pricing", h.Pricing.Quote)
	api.POST("/coupons/validate", h.Coupon.Validate)

	// 게이트웨이 서버 간 통지 (인증 없음, 검증 API로 확인)
	api.POST("/payments/ipn", middleware.RestrictIPs(ipnSources), ipnLimit, h.Payment.IPN)

	// 결제 (로그인 필요)
	payments := api.Group("/payments", auth)
	payments.POST("/initiate", initiateLimit, h.Payment.Initiate)
	payments.GET("/:transactionId", h.Payment.Get)
	payments.POST("/verify/:transactionId", middleware.RequireAdmin(), middleware.AdminAudit(auditLogger), h.Payment.Verify) // 수동 검증 (관리자)

	// 내 정보
	me := api.Group("/me", auth)
	me.GET("/payments", h.Payment.ListMine)
	me.GET("/certificates", h.Certificate.ListMine)

	// 수료증 신청
	api.POST("/certificates", auth, h.Certificate.Apply)

	// 관리자
	admin := api.Group("/admin", adminOnly...)

	adminPayments := admin.Group("/payments")
	adminPayments.GET("", h.Payment.List)
	adminPayments.GET("/summary", h.Payment.Summary)
	adminPayments.PATCH("/:id/check", h.Payment.MarkChecked)
	admin.GET("/payment-events/:transactionId", h.Payment.Events) // 게이트웨이 통지 이력

	plans := admin.Group("/installment-plans")
	plans.GET("", h.Pricing.ListAllPlans)
	plans.POST("", h.Pricing.CreatePlan)
	plans.PUT("/:id", h.Pricing.UpdatePlan)
	plans.DELETE("/:id", h.Pricing.DeletePlan)

	coupons := admin.Group("/coupons")
	coupons.GET("", h.Coupon.List)
	coupons.POST("", h.Coupon.Create)
	coupons.PUT("/:id", h.Coupon.Update)
	coupons.DELETE("/:id", h.Coupon.Delete)

	certificates := admin.Group("/certificates")
	certificates.GET("", h.Certificate.List)
	certificates.POST("/:id/approve", h.Certificate.Approve)
	certificates.POST("/:id/issue", h.Certificate.Issue)
	certificates.POST("/:id/reject", h.Certificate.Reject)

	if h.Audit != nil {
		admin.GET("/audit-logs", h.Audit.List)
	}

	return nil
}

func passThrough(c *gin.Context) {
	c.Next()
}
