package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/campaignkit/campaign-agents/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of the storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, filename string, data []byte) error {
	args := m.Called(ctx, filename, data)
	return args.Error(0)
}

func (m *MockStorage) Retrieve(ctx context.Context, filename string) ([]byte, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendReport(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

var fixedTime = time.Date(2026, 3, 2, 9, 30, 5, 0, time.UTC)

func newTestService(store *MockStorage, notifier *MockNotificationService) *Service {
	var svc *Service
	switch {
	case store != nil && notifier != nil:
		svc = NewService(store, notifier)
	case store != nil:
		svc = NewService(store, nil)
	case notifier != nil:
		svc = NewService(nil, notifier)
	default:
		svc = NewService(nil, nil)
	}
	svc.now = func() time.Time { return fixedTime }
	svc.newID = func() string { return "0b6e7a4c-1d2f-4e8a-9c3b-5f6a7b8c9d0e" }
	return svc
}

func testAnalysis() *models.Analysis {
	return &models.Analysis{
		Status:         "success",
		Domain:         "sustainable fashion",
		TargetAudience: "college students",
		Influencers: []models.ScoredCandidate{{
			SearchResult:   models.SearchResult{Title: "EcoStyle", Link: "https://instagram.com/ecostyle"},
			RelevanceScore: 8,
			Confidence:     models.ConfidenceHigh,
		}},
	}
}

const expectedKey = "discoveries/2026-03-02-09-30-05-0b6e7a4c-1d2f-4e8a-9c3b-5f6a7b8c9d0e.json"

func TestPublish(t *testing.T) {
	store := &MockStorage{}
	notifier := &MockNotificationService{}
	svc := newTestService(store, notifier)

	store.On("Store", mock.Anything, expectedKey, mock.MatchedBy(func(data []byte) bool {
		var stored models.Analysis
		return json.Unmarshal(data, &stored) == nil && stored.Domain == "sustainable fashion"
	})).Return(nil)
	notifier.On("SendReport", mock.Anything, mock.MatchedBy(func(r *models.Report) bool {
		return r.StorageKey == expectedKey && r.Campaign == "EcoThreads launch"
	})).Return(nil)

	report, err := svc.Publish(context.Background(), "EcoThreads launch", testAnalysis())
	require.NoError(t, err)

	assert.Equal(t, "0b6e7a4c-1d2f-4e8a-9c3b-5f6a7b8c9d0e", report.ID)
	assert.Equal(t, fixedTime, report.GeneratedAt)
	assert.Equal(t, expectedKey, report.StorageKey)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPublishWithoutCollaborators(t *testing.T) {
	tests := []struct {
		name        string
		withStore   bool
		withNotify  bool
		expectedKey string
	}{
		{"storage only", true, false, expectedKey},
		{"notifier only", false, true, ""},
		{"neither", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var store *MockStorage
			var notifier *MockNotificationService
			if tt.withStore {
				store = &MockStorage{}
				store.On("Store", mock.Anything, expectedKey, mock.Anything).Return(nil)
			}
			if tt.withNotify {
				notifier = &MockNotificationService{}
				notifier.On("SendReport", mock.Anything, mock.Anything).Return(nil)
			}

			report, err := newTestService(store, notifier).Publish(context.Background(), "", testAnalysis())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedKey, report.StorageKey)
			assert.Equal(t, "sustainable fashion", report.Campaign)
		})
	}
}

func TestPublishStorageFailure(t *testing.T) {
	store := &MockStorage{}
	notifier := &MockNotificationService{}
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("forbidden"))

	_, err := newTestService(store, notifier).Publish(context.Background(), "x", testAnalysis())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	notifier.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything)
}

func TestPublishNotificationFailure(t *testing.T) {
	store := &MockStorage{}
	notifier := &MockNotificationService{}
	store.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendReport", mock.Anything, mock.Anything).Return(errors.New("webhook down"))

	report, err := newTestService(store, notifier).Publish(context.Background(), "x", testAnalysis())
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, expectedKey, report.StorageKey)
}

func TestPublishNilAnalysis(t *testing.T) {
	_, err := newTestService(nil, nil).Publish(context.Background(), "x", nil)
	assert.Error(t, err)
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "discoveries/2026-03-02-09-30-05-abc.json", StorageKey(fixedTime, "abc"))
}

func TestListReports(t *testing.T) {
	store := &MockStorage{}
	store.On("List", mock.Anything, "discoveries/").Return([]string{
		"discoveries/2026-03-01-08-00-00-a.json",
		"discoveries/2026-03-02-09-30-05-b.json",
	}, nil)

	names, err := newTestService(store, nil).ListReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-02-09-30-05-b.json", "2026-03-01-08-00-00-a.json"}, names)
}

func TestListReportsEmpty(t *testing.T) {
	store := &MockStorage{}
	store.On("List", mock.Anything, "discoveries/").Return([]string{}, nil)

	names, err := newTestService(store, nil).ListReports(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestListReportsFailure(t *testing.T) {
	store := &MockStorage{}
	store.On("List", mock.Anything, "discoveries/").Return([]string(nil), errors.New("throttled"))

	_, err := newTestService(store, nil).ListReports(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestGetReport(t *testing.T) {
	data, err := json.Marshal(testAnalysis())
	require.NoError(t, err)

	store := &MockStorage{}
	store.On("Retrieve", mock.Anything, expectedKey).Return(data, nil)

	analysis, err := newTestService(store, nil).GetReport(context.Background(), "2026-03-02-09-30-05-0b6e7a4c-1d2f-4e8a-9c3b-5f6a7b8c9d0e.json")
	require.NoError(t, err)
	assert.Equal(t, "sustainable fashion", analysis.Domain)
	require.Len(t, analysis.Influencers, 1)
	assert.Equal(t, models.ConfidenceHigh, analysis.Influencers[0].Confidence)
}

func TestGetReportErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		err      error
		expected error
	}{
		{"missing blob", nil, storage.ErrNotFound, storage.ErrNotFound},
		{"corrupt blob", []byte("{not json"), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStorage{}
			store.On("Retrieve", mock.Anything, "discoveries/r.json").Return(tt.data, tt.err)

			_, err := newTestService(store, nil).GetReport(context.Background(), "r.json")
			require.Error(t, err)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestDeleteReport(t *testing.T) {
	store := &MockStorage{}
	store.On("Delete", mock.Anything, "discoveries/r.json").Return(nil)

	require.NoError(t, newTestService(store, nil).DeleteReport(context.Background(), "r.json"))
	store.AssertExpectations(t)
}

func TestDeleteReportMissing(t *testing.T) {
	store := &MockStorage{}
	store.On("Delete", mock.Anything, "discoveries/r.json").Return(storage.ErrNotFound)

	err := newTestService(store, nil).DeleteReport(context.Background(), "r.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReportNameValidation(t *testing.T) {
	names := []string{"", "../secrets.json", "nested/r.json", "r.txt", "..json"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			store := &MockStorage{}
			svc := newTestService(store, nil)

			_, err := svc.GetReport(context.Background(), name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.ErrorIs(t, svc.DeleteReport(context.Background(), name), ErrInvalidName)
			store.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything)
			store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestReportsWithoutStorage(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.ListReports(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
	_, err = svc.GetReport(context.Background(), "r.json")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.DeleteReport(context.Background(), "r.json"), ErrStorageDisabled)
}
