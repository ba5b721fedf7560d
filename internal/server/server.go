package server

import (
	"context"
	"net/http"
	"time"

	"github.com/brianstm/fithub-orbital25-sub001/internal/api"
	"github.com/brianstm/fithub-orbital25-sub001/internal/auth"
	"github.com/brianstm/fithub-orbital25-sub001/internal/availability"
	"github.com/brianstm/fithub-orbital25-sub001/internal/booking"
	"github.com/brianstm/fithub-orbital25-sub001/internal/config"
	"github.com/brianstm/fithub-orbital25-sub001/internal/gym"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	redis  *redis.Client
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier booking.Notifier) *Server {
	api.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	cache := availability.NewCache(redisClient, time.Duration(cfg.PeakHoursCacheTTL)*time.Second)

	gymRepo := gym.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	gymService := gym.NewService(gymRepo)
	bookingService := booking.NewService(bookingRepo, gymRepo, notifier, cache)
	availabilityService := availability.NewService(gymRepo, bookingRepo, cache, cfg.AnalysisWindowDays, cfg.AnalysisMinSample)

	gymHandler := gym.NewHandler(gymService)
	bookingHandler := booking.NewHandler(bookingService)
	availabilityHandler := availability.NewHandler(availabilityService)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/gyms", gymHandler.ListGyms)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)
		protected.GET("/gyms/:gymID/slots", availabilityHandler.GetSlots)
		protected.GET("/gyms/:gymID/availability", availabilityHandler.GetAvailability)
		protected.GET("/gyms/:gymID/peak-hours", availabilityHandler.GetPeakHours)

		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.GET("/bookings/:bookingID", bookingHandler.GetBooking)
		protected.PATCH("/bookings/:bookingID/status", bookingHandler.UpdateStatus)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/gyms", gymHandler.CreateGym)
		admin.PUT("/gyms/:gymID", gymHandler.UpdateGym)
		admin.DELETE("/gyms/:gymID", gymHandler.DeleteGym)
		admin.GET("/gyms/:gymID/bookings", bookingHandler.ListBookingsByGym)
		admin.DELETE("/bookings/:bookingID", bookingHandler.DeleteBooking)
		admin.GET("/analytics/bookings", bookingHandler.GetBookingAnalytics)
	}

	return &Server{
		router: router,
		db:     db,
		redis:  redisClient,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		s.redis.Close()
	}
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
