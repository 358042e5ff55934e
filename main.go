package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"soundwalk/applications/auth"
	"soundwalk/applications/calendar"
	"soundwalk/applications/feed"
	"soundwalk/applications/gig"
	"soundwalk/applications/gigsync"
	"soundwalk/applications/payslip"
	"soundwalk/applications/push"
	"soundwalk/applications/revenue"
	"soundwalk/applications/user"
	"soundwalk/config"
	"soundwalk/controllers"
	"soundwalk/db"
	"soundwalk/logger"
	"soundwalk/obs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gcal "google.golang.org/api/calendar/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logCloser, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer logCloser.Close()

	logger.Log.Info("[main] program started")

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "soundwalk", cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[main] Tracing setup failed, continuing without: %v", err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	// --- DATABASE ---
	logger.Log.Info("[main] Attempting to connect to MongoDB...")
	connectCtx, cancelConnect := context.WithTimeout(ctx, 15*time.Second)
	store, err := db.Connect(connectCtx, cfg.MongoURI, cfg.MongoDB)
	cancelConnect()
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Database index setup failed: %v", err)
	}

	users := user.NewMongoStore(store)
	if _, created, err := user.SeedAdmin(ctx, users, cfg.AdminSeedUser, cfg.AdminSeedPassword); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	} else if created {
		logger.Log.Info(fmt.Sprintf("[main] Seeded admin account %s", cfg.AdminSeedUser))
	}

	// --- GOOGLE CALENDAR ---
	// events stays a nil interface when no credentials are configured.
	var events calendar.EventService
	if cfg.GoogleCredentials != "" {
		client, err := calendar.NewGoogleClient(ctx, cfg.GoogleCredentials, cfg.GoogleCalendarID, gcal.CalendarScope)
		if err != nil {
			logger.Log.Error(fmt.Sprintf("[main] Google Calendar disabled: %v", err))
		} else {
			logger.Log.Info(fmt.Sprintf("[main] Mirroring gigs to calendar %s", client.CalendarID()))
			events = client
		}
	} else {
		logger.Log.Warn("[main] GOOGLE_CREDENTIALS not set, calendar features disabled.")
	}

	// --- PUSH ---
	vapid := push.VAPID{PublicKey: cfg.VAPIDPublicKey, PrivateKey: cfg.VAPIDPrivateKey, Subject: cfg.VAPIDSubject}
	var sender push.Sender
	if cfg.PushEnabled() {
		sender = push.NewWebPushSender(vapid)
	} else {
		logger.Log.Warn("[main] VAPID keys not set, push broadcasts will be skipped.")
	}
	subscriptions := push.NewMongoStore(store)
	broadcaster := push.NewBroadcaster(subscriptions, sender)

	// --- USE CASES ---
	gigs := gig.NewMongoStore(store)
	mirror := gig.NewCalendarMirror(events, loc)
	publicGigs := gig.NewListPublicGigsUC(gigs, loc)
	syncGigs := gigsync.NewSyncGigsUC(gigs, events, loc)
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTTTL, users)

	var scheduler *gigsync.Scheduler
	if cfg.SyncSchedule != "" {
		scheduler, err = gigsync.NewScheduler(cfg.SyncSchedule, loc, syncGigs, broadcaster)
		if err != nil {
			log.Fatalf("%v", err)
		}
		scheduler.Start()
	}

	gigController := controllers.NewGigController(
		gig.NewGetAllGigsUC(gigs),
		publicGigs,
		gig.NewGetGigUC(gigs),
		gig.NewCreateGigUC(gigs, mirror, broadcaster),
		gig.NewUpdateGigUC(gigs, mirror),
		gig.NewDeleteGigUC(gigs, mirror),
	)
	calendarController := controllers.NewCalendarController(syncGigs, calendar.NewListEventsUC(events, loc))
	pushController := controllers.NewPushController(push.NewSaveSubscriptionUC(subscriptions), broadcaster, cfg.VAPIDPublicKey)
	revenueController := controllers.NewRevenueController(revenue.NewSummaryUC(gigs))
	payslipController := controllers.NewPayslipController(payslip.NewGeneratePayslipUC(gigs, cfg.PayslipLogoPath))
	feedController := controllers.NewFeedController(feed.NewFeedUC(publicGigs, loc, cfg.SiteURL))
	authController := controllers.NewAuthController(authService)
	healthController := controllers.NewHealthController(store)

	// --- ROUTER ---
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logger.AccessLog())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	logger.Log.Info("[router] Registering public routes.")
	e.GET("/healthz", healthController.HealthController)

	api := e.Group("/api")
	api.POST("/auth", authController.LoginHandler)
	api.POST("/push/subscribe", pushController.SubscribeController)
	api.GET("/push/public-key", pushController.PublicKeyController)
	api.GET("/public/gigs", gigController.GetPublicGigsController)
	api.GET("/gigs.ics", feedController.ICalController)

	logger.Log.Info("[router] Configuring admin routes (JWT Required).")
	admin := api.Group("", authService.JWTAuthMiddleware)
	admin.GET("/gigs", gigController.GetAllGigsController)
	admin.GET("/gigs/:id", gigController.GetGigController)
	admin.POST("/gigs", gigController.CreateGigController)
	admin.PUT("/gigs", gigController.UpdateGigController)
	admin.PUT("/gigs/:id", gigController.UpdateGigController)
	admin.DELETE("/gigs", gigController.DeleteGigController)
	admin.DELETE("/gigs/:id", gigController.DeleteGigController)
	admin.POST("/gigs-sync", calendarController.SyncGigsController)
	admin.GET("/google-events", calendarController.GoogleEventsController)
	admin.GET("/revenue", revenueController.RevenueController)
	admin.POST("/payslips/monthly", payslipController.MonthlyPayslipController)
	admin.POST("/payslips/yearly", payslipController.YearlyPayslipController)
	admin.POST("/push/broadcast", pushController.BroadcastController)

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
	}))

	go func() {
		logger.Log.Info(fmt.Sprintf("[main] Starting Echo server on %s", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error(fmt.Sprintf("[main] Server stopped: %v", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("[main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error(fmt.Sprintf("[main] HTTP shutdown failed: %v", err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Log.Error(fmt.Sprintf("[main] Tracer shutdown failed: %v", err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Log.Error(fmt.Sprintf("[main] Mongo disconnect failed: %v", err))
	}
	logger.Log.Info("[main] Bye.")
}
