package handler

import (
	"net/http"

	"local-deals/internal/domain/user"
	"local-deals/internal/handler/api"
	"local-deals/internal/handler/middleware"
	"local-deals/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Auth         *api.AuthHandler
	Business     *api.BusinessHandler
	Deal         *api.DealHandler
	Cart         *api.CartHandler
	Wishlist     *api.WishlistHandler
	Claim        *api.ClaimHandler
	Verification *api.VerificationHandler
	Rating       *api.RatingHandler
	Report       *api.ReportHandler
	Upload       *api.UploadHandler

	AuthMiddleware *middleware.AuthMiddleware
	AuthLimiter    *middleware.RateLimiter
	Metrics        *middleware.Metrics
	Logger         *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, h Handlers) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(h.Logger.LoggingMiddleware())
	engine.Use(h.Metrics.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", h.Metrics.Handler())
	engine.Static(cfg.Upload.PublicPrefix, cfg.Upload.Dir)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authMw := h.AuthMiddleware
	requireAuth := authMw.RequireAuth()
	businessOnly := []gin.HandlerFunc{authMw.RequireRole(user.RoleBusiness)}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			limited := auth.Group("")
			limited.Use(h.AuthLimiter.Handler())
			addRoutes(limited, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		public := apiGroup.Group("")
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/businesses/:id", Handler: h.Business.Get},
			{Method: http.MethodGet, Path: "/categories", Handler: h.Deal.Categories},
			{Method: http.MethodGet, Path: "/deals", Handler: h.Deal.List, Mw: []gin.HandlerFunc{authMw.OptionalAuth()}},
			{Method: http.MethodGet, Path: "/deals/trending", Handler: h.Deal.Trending},
			{Method: http.MethodGet, Path: "/deals/:id", Handler: h.Deal.Get},
			{Method: http.MethodGet, Path: "/deals/:id/verifications", Handler: h.Verification.Summary, Mw: []gin.HandlerFunc{authMw.OptionalAuth()}},
			{Method: http.MethodGet, Path: "/ratings/business/:id", Handler: h.Rating.ListByBusiness},
			{Method: http.MethodGet, Path: "/ratings/business/:id/summary", Handler: h.Rating.Summary},
		})

		protected := apiGroup.Group("")
		protected.Use(requireAuth)
		addRoutes(protected, []route{
			// Business
			{Method: http.MethodGet, Path: "/business/me", Handler: h.Business.Mine},
			{Method: http.MethodPost, Path: "/business", Handler: h.Business.Register},
			{Method: http.MethodPost, Path: "/businesses", Handler: h.Business.Register},

			// Deal management
			{Method: http.MethodPost, Path: "/deals", Handler: h.Deal.Create, Mw: businessOnly},
			{Method: http.MethodPut, Path: "/deals/:id", Handler: h.Deal.Update, Mw: businessOnly},
			{Method: http.MethodDelete, Path: "/deals/:id", Handler: h.Deal.Delete, Mw: businessOnly},
			{Method: http.MethodPost, Path: "/deals/:id/verify", Handler: h.Verification.Verify},
			{Method: http.MethodPost, Path: "/deals/:id/report", Handler: h.Report.Create},

			// Cart
			{Method: http.MethodGet, Path: "/cart", Handler: h.Cart.List},
			{Method: http.MethodPost, Path: "/cart", Handler: h.Cart.Add},
			{Method: http.MethodDelete, Path: "/cart/clear", Handler: h.Cart.Clear},
			{Method: http.MethodPut, Path: "/cart/:id", Handler: h.Cart.UpdateQuantity},
			{Method: http.MethodDelete, Path: "/cart/:id", Handler: h.Cart.Remove},

			// Wishlist
			{Method: http.MethodGet, Path: "/wishlist", Handler: h.Wishlist.List},
			{Method: http.MethodPost, Path: "/wishlist", Handler: h.Wishlist.Add},
			{Method: http.MethodDelete, Path: "/wishlist/:dealId", Handler: h.Wishlist.Remove},

			// Claims
			{Method: http.MethodGet, Path: "/deal-claims/my", Handler: h.Claim.ListMine},
			{Method: http.MethodPost, Path: "/deal-claims/:id", Handler: h.Claim.Claim},
			{Method: http.MethodPost, Path: "/deal-claims/redeem/:code", Handler: h.Claim.Redeem},
			{Method: http.MethodGet, Path: "/deal-claims/:id/qr", Handler: h.Claim.QR},

			// Ratings
			{Method: http.MethodPost, Path: "/ratings", Handler: h.Rating.Create},

			{Method: http.MethodPost, Path: "/upload", Handler: h.Upload.Upload},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(requireAuth, authMw.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/businesses", Handler: h.Business.ListForReview},
			{Method: http.MethodPatch, Path: "/businesses/:id", Handler: h.Business.SetVerification},
			{Method: http.MethodGet, Path: "/reports", Handler: h.Report.List},
			{Method: http.MethodPatch, Path: "/reports/:id", Handler: h.Report.UpdateStatus},
		})
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
