package router

import (
	"net/http"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/handler"
	"github.com/collegeabroad/backend/internal/middleware"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Student     *handler.StudentHandler
	Admin       *handler.AccountHandler
	Superadmin  *handler.AccountHandler
	OAuth       *handler.OAuthHandler
	University  *handler.UniversityHandler
	Course      *handler.CourseHandler
	Country     *handler.CountryHandler
	Faq         *handler.FaqHandler
	Testimonial *handler.TestimonialHandler
	Blog        *handler.BlogHandler
	Inquiry     *handler.InquiryHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	cfg *config.Config,
	authService *service.AuthService,
	store middleware.PrincipalLookup,
	respCache *middleware.ResponseCache,
	handlers *Handlers,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Large catalog payloads compress well; small envelopes pass through.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService, store, log)
	requireStaff := middleware.RequireStaff()
	requireSuperadmin := middleware.RequireSuperadmin()

	// Credential endpoints are brute-force targets; 30 requests per minute
	// per IP with a burst of 10.
	authLimiter := middleware.NewRateLimiter(30, 10)
	limited := authLimiter.Middleware()

	// ─── Students ──────────────────────────────────────────────────────
	userAPI := router.Group("/api/user")
	{
		userAPI.POST("/register", limited, handlers.Student.Register)
		userAPI.POST("/login", limited, handlers.Auth.Login(model.RoleStudent))
		userAPI.GET("/refresh-token", handlers.Auth.Refresh)
		userAPI.GET("/logout", handlers.Auth.Logout)
		userAPI.GET("/verify-email/:token", handlers.Auth.VerifyEmail)
		userAPI.POST("/forgot-password-token", limited, handlers.Auth.ForgotPassword(model.RoleStudent))
		userAPI.PUT("/reset-password/:token", limited, handlers.Auth.ResetPassword)

		userAPI.GET("/google/login", handlers.OAuth.Login)
		userAPI.GET("/google/callback", handlers.OAuth.Callback)

		// Student self-service.
		userAPI.GET("/me", requireAuth, handlers.Auth.Me)
		userAPI.PUT("/password", requireAuth, handlers.Auth.UpdatePassword)
		userAPI.PUT("/", requireAuth, handlers.Student.UpdateProfile)
		userAPI.GET("/wishlist", requireAuth, handlers.Student.GetWishlist)
		userAPI.PUT("/wishlist", requireAuth, handlers.Student.ToggleWishlist)
		userAPI.PUT("/apply", requireAuth, handlers.Student.Apply)
		userAPI.GET("/applications", requireAuth, handlers.Student.ListApplications)

		// Staff-gated student management.
		userAPI.GET("/", requireAuth, requireStaff, handlers.Student.List)
		userAPI.GET("/bycounselor", requireAuth, requireStaff, handlers.Student.ListByCounselor)
		userAPI.GET("/get-student/:id", requireAuth, requireStaff, handlers.Student.GetByID)
		userAPI.PUT("/update-by-admin/:id", requireAuth, requireStaff, handlers.Student.UpdateByAdmin)
		userAPI.PUT("/assign-counselor/:id", requireAuth, requireStaff, handlers.Student.AssignCounselor)
		userAPI.DELETE("/:id", requireAuth, requireStaff, handlers.Student.Delete)
	}

	// ─── Staff accounts ────────────────────────────────────────────────
	staffGroups := []struct {
		path    string
		role    model.Role
		handler *handler.AccountHandler
	}{
		{"/api/admin", model.RoleAdmin, handlers.Admin},
		{"/api/superadmin", model.RoleSuperadmin, handlers.Superadmin},
	}
	for _, g := range staffGroups {
		api := router.Group(g.path)

		api.POST("/login", limited, handlers.Auth.Login(g.role))
		api.GET("/refresh-token", handlers.Auth.Refresh)
		api.GET("/logout", handlers.Auth.Logout)
		api.POST("/forgot-password-token", limited, handlers.Auth.ForgotPassword(g.role))
		api.PUT("/reset-password/:token", limited, handlers.Auth.ResetPassword)

		api.GET("/me", requireAuth, handlers.Auth.Me)
		api.PUT("/password", requireAuth, handlers.Auth.UpdatePassword)

		// Staff account creation and deletion are superadmin-only.
		api.POST("/register", requireAuth, requireSuperadmin, g.handler.Register)
		api.GET("/", requireAuth, requireStaff, g.handler.List)
		api.GET("/:id", requireAuth, requireStaff, g.handler.GetByID)
		api.PUT("/:id", requireAuth, requireSuperadmin, g.handler.Update)
		api.DELETE("/:id", requireAuth, requireSuperadmin, g.handler.Delete)
	}

	// ─── Catalog ───────────────────────────────────────────────────────
	// Public reads flow through the Redis response cache; staff mutations
	// go straight to the handlers, which invalidate the cache.
	cacheControl := middleware.CacheControl(300)

	universityAPI := router.Group("/api/university")
	{
		cached := respCache.Middleware("universities")
		universityAPI.GET("/", cacheControl, cached, handlers.University.List)
		universityAPI.GET("/:id", cacheControl, cached, handlers.University.GetByID)
		universityAPI.POST("/", requireAuth, requireStaff, handlers.University.Create)
		universityAPI.PUT("/:id", requireAuth, requireStaff, handlers.University.Update)
		universityAPI.DELETE("/:id", requireAuth, requireStaff, handlers.University.Delete)
	}

	courseAPI := router.Group("/api/course")
	{
		cached := respCache.Middleware("courses")
		courseAPI.GET("/", cacheControl, cached, handlers.Course.List)
		courseAPI.GET("/:id", cacheControl, cached, handlers.Course.GetByID)
		courseAPI.GET("/slug/:slug", cacheControl, cached, handlers.Course.GetBySlug)
		courseAPI.POST("/", requireAuth, requireStaff, handlers.Course.Create)
		courseAPI.PUT("/:id", requireAuth, requireStaff, handlers.Course.Update)
		courseAPI.DELETE("/:id", requireAuth, requireStaff, handlers.Course.Delete)
	}

	countryAPI := router.Group("/api/country")
	{
		cached := respCache.Middleware("countries")
		countryAPI.GET("/", cacheControl, cached, handlers.Country.List)
		countryAPI.GET("/:id", cacheControl, cached, handlers.Country.GetByID)
		countryAPI.POST("/", requireAuth, requireStaff, handlers.Country.Create)
		countryAPI.PUT("/:id", requireAuth, requireStaff, handlers.Country.Update)
		countryAPI.DELETE("/:id", requireAuth, requireStaff, handlers.Country.Delete)
	}

	faqAPI := router.Group("/api/faq")
	{
		cached := respCache.Middleware("faqs")
		faqAPI.GET("/", cacheControl, cached, handlers.Faq.List)
		faqAPI.GET("/:id", cacheControl, cached, handlers.Faq.GetByID)
		faqAPI.POST("/", requireAuth, requireStaff, handlers.Faq.Create)
		faqAPI.PUT("/:id", requireAuth, requireStaff, handlers.Faq.Update)
		faqAPI.DELETE("/:id", requireAuth, requireStaff, handlers.Faq.Delete)
	}

	testimonialAPI := router.Group("/api/testimonial")
	{
		cached := respCache.Middleware("testimonials")
		testimonialAPI.GET("/", cacheControl, cached, handlers.Testimonial.List)
		testimonialAPI.GET("/:id", cacheControl, cached, handlers.Testimonial.GetByID)
		testimonialAPI.POST("/", requireAuth, requireStaff, handlers.Testimonial.Create)
		testimonialAPI.PUT("/:id", requireAuth, requireStaff, handlers.Testimonial.Update)
		testimonialAPI.DELETE("/:id", requireAuth, requireStaff, handlers.Testimonial.Delete)
	}

	blogAPI := router.Group("/api/blog")
	{
		cached := respCache.Middleware("blogs")
		blogAPI.GET("/", cacheControl, cached, handlers.Blog.List)
		blogAPI.GET("/:id", cacheControl, cached, handlers.Blog.GetByID)
		blogAPI.GET("/slug/:slug", cacheControl, cached, handlers.Blog.GetBySlug)
		blogAPI.POST("/", requireAuth, requireStaff, handlers.Blog.Create)
		blogAPI.PUT("/:id", requireAuth, requireStaff, handlers.Blog.Update)
		blogAPI.DELETE("/:id", requireAuth, requireStaff, handlers.Blog.Delete)
	}

	// ─── Public inquiry ────────────────────────────────────────────────
	inquiryLimiter := middleware.NewRateLimiter(10, 5)
	router.POST("/api/inquiry", inquiryLimiter.Middleware(), handlers.Inquiry.Submit)

	return router
}
