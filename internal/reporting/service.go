package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/campaignkit/campaign-agents/internal/notifications"
	"github.com/campaignkit/campaign-agents/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "discoveries"

var (
	// ErrStorageDisabled is returned by report lookups when no storage is configured
	ErrStorageDisabled = errors.New("report storage is not configured")
	// ErrInvalidName is returned for report names that are not plain blob names
	ErrInvalidName = errors.New("invalid report name")
)

// Publisher turns an analysis into a stored and announced report
type Publisher interface {
	Publish(ctx context.Context, campaign string, analysis *models.Analysis) (*models.Report, error)
}

// Service persists discovery results and notifies about them. Either
// collaborator may be nil.
type Service struct {
	storage  storage.StorageInterface
	notifier notifications.NotificationInterface
	now      func() time.Time
	newID    func() string
}

var _ Publisher = (*Service)(nil)

// NewService creates a new reporting service
func NewService(store storage.StorageInterface, notifier notifications.NotificationInterface) *Service {
	return &Service{
		storage:  store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
}

// Publish stores the analysis and sends the resulting report. The campaign
// name defaults to the analysis domain.
func (s *Service) Publish(ctx context.Context, campaign string, analysis *models.Analysis) (*models.Report, error) {
	if analysis == nil {
		return nil, fmt.Errorf("nothing to publish")
	}
	if campaign == "" {
		campaign = analysis.Domain
	}

	report := &models.Report{
		ID:          s.newID(),
		GeneratedAt: s.now(),
		Campaign:    campaign,
		Analysis:    analysis,
	}

	if s.storage != nil {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal analysis: %w", err)
		}

		key := StorageKey(report.GeneratedAt, report.ID)
		if err := s.storage.Store(ctx, key, data); err != nil {
			return nil, fmt.Errorf("failed to store report: %w", err)
		}
		report.StorageKey = key
	}

	if s.notifier != nil {
		if err := s.notifier.SendReport(ctx, report); err != nil {
			return report, fmt.Errorf("failed to send report: %w", err)
		}
	}

	logrus.Infof("Published report %s for %s with %d influencers", report.ID, campaign, len(analysis.Influencers))
	return report, nil
}

// StorageKey is the blob name of a report generated at t
func StorageKey(t time.Time, id string) string {
	return fmt.Sprintf("%s/%s-%s.json", keyPrefix, t.Format("2006-01-02-15-04-05"), id)
}

// ListReports returns the stored report names, newest first. Names are
// relative to the discoveries prefix.
func (s *Service) ListReports(ctx context.Context) ([]string, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	keys, err := s.storage.List(ctx, keyPrefix+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, strings.TrimPrefix(key, keyPrefix+"/"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// GetReport loads the analysis stored under name
func (s *Service) GetReport(ctx context.Context, name string) (*models.Analysis, error) {
	key, err := s.reportKey(name)
	if err != nil {
		return nil, err
	}

	data, err := s.storage.Retrieve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve report %s: %w", name, err)
	}

	var analysis models.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", name, err)
	}
	return &analysis, nil
}

// DeleteReport removes the report stored under name
func (s *Service) DeleteReport(ctx context.Context, name string) error {
	key, err := s.reportKey(name)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", name, err)
	}

	logrus.Infof("Deleted report %s", name)
	return nil
}

func (s *Service) reportKey(name string) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") || !strings.HasSuffix(name, ".json") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return keyPrefix + "/" + name, nil
}
