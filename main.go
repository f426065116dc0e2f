// File: roadstay/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadstay/config"
	"roadstay/cron"
	"roadstay/database"
	bookingsRepo "roadstay/database/repository/bookings"
	outcomesRepo "roadstay/database/repository/outcomes"
	snapshotsRepo "roadstay/database/repository/snapshots"
	"roadstay/handlers"
	"roadstay/middleware"
	"roadstay/routes"
	"roadstay/services/booking"
	"roadstay/services/geocache"
	"roadstay/services/pricehistory"
	"roadstay/services/risk"
	"roadstay/services/search"
	"roadstay/services/supplier"
	"roadstay/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitOfferCache()

	// The supplier is chosen once here and injected everywhere.
	sup := supplier.FromConfig()
	logger.Sugar().Infof("using supplier %q", sup.Name())

	// Repositories.
	snapshotRepo := snapshotsRepo.NewMongoSnapshotRepo()
	outcomeRepo := outcomesRepo.NewMongoOutcomeRepo()
	bookingRepo := bookingsRepo.NewMongoBookingRepo()

	// Background snapshot queue: client enqueues, worker drains into Mongo.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpts)
	recorder := pricehistory.NewAsynqRecorder(queueClient)
	snapshotWorker := cron.InitSnapshotWorker(snapshotRepo)

	// Services.
	offerCache := geocache.NewRedisOfferCache(utils.GetOfferCacheClient())
	ranker := risk.NewRanker(&risk.DefaultSignalSource{Repo: outcomeRepo})
	cacheTTL := time.Duration(config.AppConfig.CacheTTLMinutes) * time.Minute
	searchService := search.NewDefaultSearchService(sup, offerCache, ranker, recorder, cacheTTL)
	searchService.DefaultRadius = config.AppConfig.DefaultRadiusMiles
	trendService := &pricehistory.TrendService{Repo: snapshotRepo}
	bookingService := &booking.DefaultBookingService{
		Repo:     bookingRepo,
		Outcomes: outcomeRepo,
		Supplier: sup,
	}

	// Handlers.
	searchHandler := handlers.NewSearchHandler(searchService, logger)
	trendHandler := handlers.NewTrendHandler(trendService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	handlerBundle := &handlers.HandlerBundle{
		RouteSearch:   searchHandler.RouteSearch,
		Search:        searchHandler.Search,
		PriceTrend:    trendHandler.PriceTrend,
		CreateBooking: bookingHandler.CreateBooking,
		GetBooking:    bookingHandler.GetBooking,
		CancelBooking: bookingHandler.CancelBooking,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetOfferCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	// Drain in-flight snapshot tasks before exit.
	snapshotWorker.Shutdown()
	if err := queueClient.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close queue client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
