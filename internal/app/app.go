// Package app wires repositories, services and handlers into one router.
package app

import (
	"net/http"
	"time"

	"mentorship/internal/config"
	"mentorship/internal/domain/account"
	"mentorship/internal/domain/availability"
	"mentorship/internal/domain/booking"
	"mentorship/internal/domain/notification"
	"mentorship/internal/domain/review"
	"mentorship/internal/middleware"
	"mentorship/internal/pkg/jwt"
	"mentorship/internal/pkg/keylock"
	"mentorship/internal/pkg/response"
	"mentorship/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	JWT    *jwt.Service
	// Now overrides the clock of every time-dependent service. Tests only.
	Now func() time.Time
}

type App struct {
	Router        *gin.Engine
	Notifications *notification.Service
}

func New(d Deps) (*App, error) {
	if err := validator.RegisterGinValidations(); err != nil {
		return nil, err
	}

	cfg := d.Config
	db := d.DB

	// One lock table shared by every writer of a mentor's calendar or rating.
	locks := keylock.New()

	accountRepo := account.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub)
	accountService := account.NewService(accountRepo, d.JWT)
	availabilityService := availability.NewService(db, availabilityRepo, accountRepo, bookingRepo)
	reviewService := review.NewService(db, reviewRepo, accountRepo, locks, cfg.BookingMaxRetries)
	bookingService := booking.NewService(db, bookingRepo, accountRepo, availabilityRepo, reviewService, notificationService, locks, booking.Options{
		Retries:            cfg.BookingMaxRetries,
		CancellationWindow: cfg.CancellationWindow,
		MeetingBaseURL:     cfg.MeetingBaseURL,
	})

	if d.Now != nil {
		notificationService.WithClock(d.Now)
		reviewService.WithClock(d.Now)
		bookingService.WithClock(d.Now)
	}

	accountHandler := account.NewHandler(accountService)
	availabilityHandler := availability.NewHandler(availabilityService)
	bookingHandler := booking.NewHandler(bookingService, availabilityService)
	reviewHandler := review.NewHandler(reviewService)
	notificationHandler := notification.NewHandler(notificationService, hub)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public routes
	accountHandler.RegisterPublicRoutes(v1)
	availabilityHandler.RegisterPublicRoutes(v1)
	reviewHandler.RegisterPublicRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.JWT))
	{
		accountHandler.RegisterProtectedRoutes(protected, middleware.MentorOnly())
		bookingHandler.RegisterRoutes(protected, middleware.LearnerOnly())
		notificationHandler.RegisterRoutes(protected)

		mentor := protected.Group("")
		mentor.Use(middleware.MentorOnly())
		availabilityHandler.RegisterMentorRoutes(mentor)

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly())
		accountHandler.RegisterAdminRoutes(admin)
		reviewHandler.RegisterAdminRoutes(admin)
	}

	// Websocket upgrade, may authenticate from the query string
	notificationHandler.RegisterStreamRoute(v1, middleware.WebSocketAuth(d.JWT))

	return &App{
		Router:        r,
		Notifications: notificationService,
	}, nil
}
