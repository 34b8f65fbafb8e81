package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"reservas-backend/internal/handler/api"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	spaceHandler *api.SpaceHandler,
	memberHandler *api.MemberHandler,
	couponHandler *api.CouponHandler,
	blockedDateHandler *api.BlockedDateHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, reservationHandler, spaceHandler, memberHandler,
		couponHandler, blockedDateHandler, paymentHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	spaceHandler *api.SpaceHandler,
	memberHandler *api.MemberHandler,
	couponHandler *api.CouponHandler,
	blockedDateHandler *api.BlockedDateHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/auth/login", Handler: authHandler.Login},

			{Method: http.MethodGet, Path: "/spaces", Handler: spaceHandler.List},
			{Method: http.MethodGet, Path: "/availability", Handler: reservationHandler.Availability},
			{Method: http.MethodGet, Path: "/blocked-dates", Handler: blockedDateHandler.List},

			{Method: http.MethodPost, Path: "/reservations", Handler: reservationHandler.Create},
			{Method: http.MethodPost, Path: "/coupons/validate", Handler: couponHandler.Validate},
			{Method: http.MethodPost, Path: "/members/validate", Handler: memberHandler.Validate},

			{Method: http.MethodPost, Path: "/payments/checkout", Handler: paymentHandler.StartCheckout},
			{Method: http.MethodPost, Path: "/payments/webhook", Handler: paymentHandler.Webhook},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/reservations", Handler: reservationHandler.List},
				{Method: http.MethodGet, Path: "/reservations/:id", Handler: reservationHandler.Get},
				{Method: http.MethodPost, Path: "/reservations/:id/confirm", Handler: reservationHandler.Confirm},
				{Method: http.MethodPatch, Path: "/reservations/:id/status", Handler: reservationHandler.UpdateStatus},
				{Method: http.MethodDelete, Path: "/reservations/:id", Handler: reservationHandler.Delete},

				{Method: http.MethodGet, Path: "/members", Handler: memberHandler.List},
				{Method: http.MethodPost, Path: "/members", Handler: memberHandler.Create},
				{Method: http.MethodPut, Path: "/members/:id", Handler: memberHandler.Update},
				{Method: http.MethodDelete, Path: "/members/:id", Handler: memberHandler.Delete},

				{Method: http.MethodPost, Path: "/blocked-dates", Handler: blockedDateHandler.Block},
				{Method: http.MethodDelete, Path: "/blocked-dates/:id", Handler: blockedDateHandler.Unblock},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
