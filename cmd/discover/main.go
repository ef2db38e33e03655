package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/campaignkit/campaign-agents/internal/config"
	"github.com/campaignkit/campaign-agents/internal/discovery"
	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/campaignkit/campaign-agents/internal/search"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	domain := flag.String("domain", "", "product domain, e.g. \"sustainable fashion\"")
	audience := flag.String("audience", "", "target audience")
	platforms := flag.String("platforms", "", "comma-separated platforms, e.g. instagram,youtube")
	country := flag.String("country", "", "ISO country code, e.g. IN")
	recentDays := flag.Int("recent-days", 0, "only results from the last N days")
	numResults := flag.Int("n", discovery.DefaultNumResults, "number of influencers to return")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	primary, err := search.NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleCX, search.WithTimeout(cfg.SearchTimeout))
	if err != nil {
		log.Fatalf("Failed to create search provider: %v", err)
	}
	var fallback search.Provider
	if serp, err := search.NewSerpAPIProvider(cfg.SerpAPIKey, search.WithTimeout(cfg.SearchTimeout)); err == nil {
		fallback = serp
	}
	client, err := search.NewClient(primary, fallback, nil)
	if err != nil {
		log.Fatalf("Failed to create search client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	analysis, err := discovery.NewService(client, cfg.SearchConcurrency).Analyze(ctx, models.Strategy{
		Domain:     *domain,
		Audience:   *audience,
		Platforms:  splitList(*platforms),
		Country:    strings.ToUpper(*country),
		RecentDays: *recentDays,
		NumResults: *numResults,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "discovery failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
