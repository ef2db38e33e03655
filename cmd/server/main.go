package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campaignkit/campaign-agents/internal/campaign"
	"github.com/campaignkit/campaign-agents/internal/config"
	"github.com/campaignkit/campaign-agents/internal/discovery"
	"github.com/campaignkit/campaign-agents/internal/llm"
	"github.com/campaignkit/campaign-agents/internal/mediaplan"
	"github.com/campaignkit/campaign-agents/internal/notifications"
	"github.com/campaignkit/campaign-agents/internal/reporting"
	"github.com/campaignkit/campaign-agents/internal/scheduler"
	"github.com/campaignkit/campaign-agents/internal/search"
	"github.com/campaignkit/campaign-agents/internal/storage"
	"github.com/campaignkit/campaign-agents/internal/youtube"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Campaign Agents")

	ctx := context.Background()

	searchClient, err := newSearchClient(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize search: %v", err)
	}
	discoveryService := discovery.NewService(searchClient, cfg.SearchConcurrency)

	a := &api{
		analyzer: discoveryService,
		planner:  mediaplan.NewPlanner(),
	}

	if yt, err := youtube.NewDiscoverer(cfg.YouTubeAPIKey); err == nil {
		a.youtube = yt
	} else {
		logrus.Warnf("YouTube discovery disabled: %v", err)
	}

	if completer, err := llm.NewMistralClient(cfg.MistralAPIKey, llm.WithModel(cfg.MistralModel)); err == nil {
		a.copy = campaign.NewCopywriter(completer)
		a.outreach = campaign.NewOutreachWriter(completer)
	} else {
		logrus.Warnf("Copywriting and outreach disabled: %v", err)
	}

	publisher := newPublisher(ctx, cfg)
	a.publisher = publisher
	a.reports = publisher

	if cfg.ScheduledCampaignsFile != "" {
		campaigns, err := scheduler.LoadCampaigns(cfg.ScheduledCampaignsFile)
		if err != nil {
			logrus.Fatalf("Failed to load scheduled campaigns: %v", err)
		}

		schedulerService := scheduler.NewService(cfg, discoveryService, publisher, campaigns)
		if err := schedulerService.Start(); err != nil {
			logrus.Fatalf("Failed to start scheduler: %v", err)
		}
		defer schedulerService.Stop()
	}

	runServer(cfg, a.routes())
}

func newSearchClient(ctx context.Context, cfg *config.Config) (*search.Client, error) {
	primary, err := search.NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleCX, search.WithTimeout(cfg.SearchTimeout))
	if err != nil {
		return nil, err
	}

	var fallback search.Provider
	if serp, err := search.NewSerpAPIProvider(cfg.SerpAPIKey, search.WithTimeout(cfg.SearchTimeout)); err == nil {
		fallback = serp
	}

	var cache search.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.Warnf("Redis at %s unreachable, search cache disabled: %v", cfg.RedisAddr, err)
		} else {
			cache = search.NewRedisCache(rdb, cfg.CacheTTL)
			logrus.Infof("Search cache enabled at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
		}
	}

	return search.NewClient(primary, fallback, cache)
}

func newPublisher(ctx context.Context, cfg *config.Config) *reporting.Service {
	var store storage.StorageInterface
	if cfg.StorageAccount != "" {
		azureStorage, err := storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize storage: %v", err)
		}
		store = azureStorage
	}

	var notifier notifications.NotificationInterface
	if cfg.NotificationsEnabled() {
		notifier = notifications.NewService(cfg)
	}

	return reporting.NewService(store, notifier)
}

func runServer(cfg *config.Config, router *mux.Router) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
