// File: tavola/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tavola/config"
	"tavola/database"
	formschemaRepo "tavola/database/repository/formschema"
	reservationRepo "tavola/database/repository/reservation"
	"tavola/handlers"
	"tavola/middleware"
	"tavola/routes"
	"tavola/services/adminsession"
	"tavola/services/booking"
	"tavola/services/chat"
	"tavola/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Repositories, per the configured storage driver.
	var (
		reservations reservationRepo.Repository
		schema       formschemaRepo.Repository
	)
	switch config.AppConfig.StorageDriver {
	case config.DriverFile:
		dataDir := config.AppConfig.DataDir
		reservations = reservationRepo.NewFileRepo(filepath.Join(dataDir, "reservations.json"))
		schema = formschemaRepo.NewFileRepo(filepath.Join(dataDir, "fields.json"))
	case config.DriverPostgres:
		reservations = reservationRepo.NewPostgresRepo(database.PgPool)
		schema = formschemaRepo.NewPostgresRepo(database.PgPool)
	case config.DriverMongo:
		db := database.MongoClient.Database(config.AppConfig.MongoDatabase)
		var err error
		reservations, err = reservationRepo.NewMongoRepo(db)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize reservation repository: %v", err)
		}
		schema = formschemaRepo.NewMongoRepo(db)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := schema.Init(bootCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to install default field schema: %v", err)
	}
	cancelBoot()

	// Services.
	bookingService := &booking.DefaultService{
		Reservations: reservations,
		Schema:       schema,
	}

	var chatStore chat.ContextStore
	if config.AppConfig.RedisAddr != "" {
		chatStore = chat.NewRedisContextStore(utils.GetChatCacheClient(), 30*time.Minute)
	} else {
		chatStore = chat.NewMemoryContextStore(30 * time.Minute)
	}
	chatService := &chat.DefaultService{
		Store:   chatStore,
		Booking: bookingService,
	}

	sessionService := adminsession.New(
		config.AppConfig.AdminPassword,
		config.AppConfig.AdminPasswordHash,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Reservations: handlers.NewReservationHandler(bookingService, logger),
		Schema:       handlers.NewSchemaHandler(schema, logger),
		Admin:        handlers.NewAdminHandler(sessionService, logger),
		Chat:         handlers.NewChatHandler(chatService, logger),
		Sessions:     sessionService,
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s [storage: %s]...", srv.Addr, config.AppConfig.StorageDriver)
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

	logger.Sugar().Info("main: server stopped gracefully")
}
