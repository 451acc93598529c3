package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/srirupaul05/foodbridge/internal/adapter/geocode"
	"github.com/srirupaul05/foodbridge/internal/adapter/httpserver"
	natsadapter "github.com/srirupaul05/foodbridge/internal/adapter/messaging/nats"
	"github.com/srirupaul05/foodbridge/internal/adapter/repository/cache"
	"github.com/srirupaul05/foodbridge/internal/adapter/repository/mongodb"
	s3adapter "github.com/srirupaul05/foodbridge/internal/adapter/storage/s3"
	"github.com/srirupaul05/foodbridge/internal/app/config"
	"github.com/srirupaul05/foodbridge/internal/mailer"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/platform/metrics"
	"github.com/srirupaul05/foodbridge/internal/platform/tracer"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

const serviceName = "foodbridge"

// App owns every long-lived component and their shutdown order.
type App struct {
	cfg            *config.Config
	log            logger.Logger
	httpServer     *http.Server
	publisher      *natsadapter.Publisher
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	tracerProvider *trace.TracerProvider
	metricsManager *metrics.Manager
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	log.Infof("Configuration loaded: env=%s, http port=%s", cfg.Env, cfg.HTTPServer.Port)

	var tracerProvider *trace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(ctx, serviceName, cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		tracerProvider = tp
		log.Info("Tracer initialized")
	}

	db, err := mongodb.Connect(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
	}
	log.Info("MongoDB connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Redis connected")

	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("NATS connected")

	photoStorage, err := s3adapter.NewPhotoStorage(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	log.Info("Photo storage initialized")

	// Repositories.
	listingRepo := mongodb.NewListingRepository(db)
	claimRepo := mongodb.NewClaimRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)
	trackerRepo := mongodb.NewTrackerRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	chatRepo := mongodb.NewChatRepository(db)

	listingCache := cache.NewListingCache(redisClient, cfg.Cache.ListingTTL)
	tokenCache := cache.NewTokenCache(redisClient)
	geocoder := geocode.NewNominatimGeocoder(cfg.Geocoder, redisClient, log)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	// Usecases.
	statsUC := usecase.NewStatsUsecase(statsRepo, userRepo, log)
	listingUC := usecase.NewListingUsecase(listingRepo, statsUC, geocoder, photoStorage, listingCache, publisher, log)
	claimUC := usecase.NewClaimUsecase(listingRepo, claimRepo, statsUC, listingCache, publisher, log)
	trackerUC := usecase.NewTrackerUsecase(trackerRepo, log)
	authUC := usecase.NewAuthUsecase(userRepo, statsUC, tokenCache, smtpMailer, log, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	chatUC := usecase.NewChatUsecase(chatRepo, listingRepo, publisher, log)
	adminUC := usecase.NewAdminUsecase(userRepo, listingRepo, claimRepo, statsRepo, listingCache, log, cfg.Admin.Emails)

	metricsManager := metrics.NewManager(serviceName)

	handlers := httpserver.Handlers{
		Auth:    httpserver.NewAuthHandler(authUC, log),
		Listing: httpserver.NewListingHandler(listingUC, metricsManager, log),
		Claim:   httpserver.NewClaimHandler(claimUC, metricsManager, log),
		Stats:   httpserver.NewStatsHandler(statsUC, log),
		Tracker: httpserver.NewTrackerHandler(trackerUC, log),
		Chat:    httpserver.NewChatHandler(chatUC, metricsManager, log),
		Admin:   httpserver.NewAdminHandler(adminUC, log),
	}

	router := httpserver.NewRouter(handlers, authUC, metricsManager, log, serviceName)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	return &App{
		cfg:            cfg,
		log:            log,
		httpServer:     httpServer,
		publisher:      publisher,
		mongoClient:    db.Client(),
		redisClient:    redisClient,
		tracerProvider: tracerProvider,
		metricsManager: metricsManager,
	}, nil
}

// Run starts the HTTP and metrics servers and blocks until a shutdown
// signal, then drains everything in reverse dependency order.
func (a *App) Run() {
	go func() {
		a.log.Infof("HTTP server listening on :%s", a.cfg.HTTPServer.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if a.cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartServer(a.cfg.Metrics.Port, a.log, a.metricsManager.Registry); err != nil {
				a.log.Errorf("Metrics server failed: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Infof("Received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("HTTP server shutdown error: %v", err)
	}

	a.publisher.Close()

	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("Redis close error: %v", err)
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Errorf("MongoDB disconnect error: %v", err)
	}

	if a.tracerProvider != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := a.tracerProvider.Shutdown(flushCtx); err != nil {
			a.log.Errorf("Tracer shutdown error: %v", err)
		}
	}

	a.log.Info("Shutdown complete")
}
