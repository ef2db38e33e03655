package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campaignkit/campaign-agents/internal/config"
	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/campaignkit/campaign-agents/internal/reporting"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const runTimeout = 10 * time.Minute

// Analyzer runs a discovery analysis for a strategy
type Analyzer interface {
	Analyze(ctx context.Context, strategy models.Strategy) (*models.Analysis, error)
}

// Service periodically re-runs discovery for saved campaigns
type Service struct {
	config    *config.Config
	analyzer  Analyzer
	publisher reporting.Publisher
	campaigns []models.Strategy
	cron      *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, analyzer Analyzer, publisher reporting.Publisher, campaigns []models.Strategy) *Service {
	return &Service{
		config:    cfg,
		analyzer:  analyzer,
		publisher: publisher,
		campaigns: campaigns,
		cron:      cron.New(cron.WithSeconds()),
	}
}

// LoadCampaigns reads and validates a JSON array of strategies
func LoadCampaigns(path string) ([]models.Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaigns file: %w", err)
	}

	if err := validateCampaigns(data); err != nil {
		return nil, fmt.Errorf("invalid campaigns file %s: %w", path, err)
	}

	var campaigns []models.Strategy
	if err := json.Unmarshal(data, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to parse campaigns file %s: %w", path, err)
	}
	return campaigns, nil
}

// Start registers the refresh job and starts the cron runner
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.RefreshSchedule, func() {
		logrus.Info("Starting scheduled discovery refresh")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := s.RunOnce(ctx); err != nil {
			logrus.Errorf("Scheduled discovery refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.config.RefreshSchedule, err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with schedule %q for %d campaigns", s.config.RefreshSchedule, len(s.campaigns))
	return nil
}

// RunOnce analyzes and publishes every campaign. A failing campaign does
// not stop the others.
func (s *Service) RunOnce(ctx context.Context) error {
	var failures []string

	for _, strategy := range s.campaigns {
		name := campaignName(strategy)

		analysis, err := s.analyzer.Analyze(ctx, strategy)
		if err != nil {
			logrus.Errorf("Discovery for campaign %s failed: %v", name, err)
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		if _, err := s.publisher.Publish(ctx, name, analysis); err != nil {
			logrus.Errorf("Publishing campaign %s failed: %v", name, err)
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d campaigns failed: %s", len(failures), len(s.campaigns), strings.Join(failures, "; "))
	}
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}

func campaignName(strategy models.Strategy) string {
	if strategy.Product != "" {
		return strategy.Product
	}
	return strategy.Domain
}
