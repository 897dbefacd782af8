// Package router assembles the HTTP surface. The middleware pipeline is
// statically ordered: recovery, request logging, global rate limit, then the
// route groups with their gates.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tours_backend/internal/feature/auth/domain/entity"
	authhandler "tours_backend/internal/feature/auth/transport/handler"
	authmw "tours_backend/internal/feature/auth/transport/middleware"
	bookinghandler "tours_backend/internal/feature/bookings/transport/handler"
	reviewhandler "tours_backend/internal/feature/reviews/transport/handler"
	tourhandler "tours_backend/internal/feature/tours/transport/handler"
	platformhandler "tours_backend/internal/platform/http/handler"
	"tours_backend/internal/shared/ratelimiter"
)

// Handlers carries every transport handler the router mounts.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Users    *authhandler.UserHandler
	Tours    *tourhandler.TourHandler
	Reviews  *reviewhandler.ReviewHandler
	Bookings *bookinghandler.BookingHandler
}

// Limits holds the two rate-limit tiers applied by the pipeline.
type Limits struct {
	// Global applies to every request.
	Global ratelimiter.Config
	// Auth additionally applies to credential endpoints.
	Auth ratelimiter.Config
}

// NewRouter wires the full route table.
func NewRouter(h Handlers, authn authmw.Authenticator, limits Limits) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(ratelimiter.Middleware(limits.Global))

	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)

	v1 := r.Group("/api/v1")

	// Credential endpoints carry the strict limiter on top of the global one.
	auth := v1.Group("/auth")
	auth.Use(ratelimiter.Middleware(limits.Auth))
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password/:token", h.Auth.ResetPassword)
	}

	tours := v1.Group("/tours")
	{
		tours.GET("", h.Tours.List)
		tours.GET("/top-5-cheap", h.Tours.TopTours)
		tours.GET("/stats", h.Tours.Stats)
		tours.GET("/monthly-plan/:year", h.Tours.MonthlyPlan)
		tours.GET("/:tourId", h.Tours.Get)

		staff := tours.Group("")
		staff.Use(authmw.AuthRequired(authn), authmw.RequireRoles(entity.RoleAdmin, entity.RoleLeadGuide))
		{
			staff.POST("", h.Tours.Create)
			staff.PATCH("/:tourId", h.Tours.Update)
			staff.DELETE("/:tourId", h.Tours.Delete)
		}

		nested := tours.Group("/:tourId/reviews")
		nested.Use(authmw.AuthRequired(authn))
		{
			nested.GET("", h.Reviews.List)
			nested.POST("", authmw.RequireRoles(entity.RoleUser), h.Reviews.Create)
		}
	}

	reviews := v1.Group("/reviews")
	reviews.Use(authmw.AuthRequired(authn))
	{
		reviews.GET("", h.Reviews.List)
		reviews.PATCH("/:id", h.Reviews.Update)
		reviews.DELETE("/:id", h.Reviews.Delete)
	}

	users := v1.Group("/users")
	users.Use(authmw.AuthRequired(authn))
	{
		users.GET("", authmw.RequireRoles(entity.RoleAdmin), h.Users.List)
		users.GET("/me", h.Users.Me)
		users.PATCH("/me", h.Users.UpdateMe)
		users.DELETE("/me", h.Users.DeleteMe)
		users.PATCH("/me/password", h.Users.UpdatePassword)
	}

	bookings := v1.Group("/bookings")
	bookings.Use(authmw.AuthRequired(authn))
	{
		bookings.GET("/checkout-session/:tourId", h.Bookings.CheckoutSession)
		bookings.POST("", h.Bookings.Create)
		bookings.GET("/my-bookings", h.Bookings.MyBookings)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "can't find " + c.Request.URL.Path + " on this server"})
	})

	return r
}

// requestLogger logs one line per request at info level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}
