package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/campaignkit/campaign-agents/internal/campaign"
	"github.com/campaignkit/campaign-agents/internal/discovery"
	"github.com/campaignkit/campaign-agents/internal/mediaplan"
	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/campaignkit/campaign-agents/internal/reporting"
	"github.com/campaignkit/campaign-agents/internal/storage"
	"github.com/campaignkit/campaign-agents/internal/youtube"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type analyzer interface {
	Analyze(ctx context.Context, strategy models.Strategy) (*models.Analysis, error)
}

type channelDiscoverer interface {
	Discover(ctx context.Context, req youtube.Request) ([]youtube.Channel, error)
}

type copywriter interface {
	Generate(ctx context.Context, brief campaign.Brief) (*campaign.Copy, error)
}

type outreachWriter interface {
	Generate(ctx context.Context, influencer campaign.Influencer, brand campaign.Brand, msgType campaign.MessageType, content *campaign.ContentSummary) (*campaign.Message, error)
	GenerateBulk(ctx context.Context, influencers []campaign.Influencer, brand campaign.Brand, msgType campaign.MessageType) []campaign.BulkMessage
}

type reportStore interface {
	ListReports(ctx context.Context) ([]string, error)
	GetReport(ctx context.Context, name string) (*models.Analysis, error)
	DeleteReport(ctx context.Context, name string) error
}

// api holds the HTTP collaborators. Optional ones are nil when their
// credentials are missing.
type api struct {
	analyzer  analyzer
	planner   *mediaplan.Planner
	youtube   channelDiscoverer
	copy      copywriter
	outreach  outreachWriter
	publisher reporting.Publisher
	reports   reportStore
}

type outreachRequest struct {
	Influencer     *campaign.Influencer     `json:"influencer,omitempty"`
	Influencers    []campaign.Influencer    `json:"influencers,omitempty"`
	Brand          campaign.Brand           `json:"brand"`
	MessageType    campaign.MessageType     `json:"message_type"`
	ContentSummary *campaign.ContentSummary `json:"content_summary,omitempty"`
}

func (a *api) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/discover", a.discoverHandler).Methods("POST")
	router.HandleFunc("/discover/youtube", a.youtubeHandler).Methods("POST")
	router.HandleFunc("/media-plan", a.mediaPlanHandler).Methods("POST")
	router.HandleFunc("/copy", a.copyHandler).Methods("POST")
	router.HandleFunc("/outreach", a.outreachHandler).Methods("POST")

	router.HandleFunc("/reports", a.listReportsHandler).Methods("GET")
	router.HandleFunc("/reports/{name}", a.getReportHandler).Methods("GET")
	router.HandleFunc("/reports/{name}", a.deleteReportHandler).Methods("DELETE")

	return router
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// POST /discover?publish=true also stores and announces the result
func (a *api) discoverHandler(w http.ResponseWriter, r *http.Request) {
	var strategy models.Strategy
	if !decodeBody(w, r, &strategy) {
		return
	}

	analysis, err := a.analyzer.Analyze(r.Context(), strategy)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("publish") == "true" && a.publisher != nil {
		if _, err := a.publisher.Publish(r.Context(), strategy.Product, analysis); err != nil {
			logrus.Errorf("Failed to publish discovery for %s: %v", analysis.Domain, err)
		}
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (a *api) youtubeHandler(w http.ResponseWriter, r *http.Request) {
	if a.youtube == nil {
		writeUnavailable(w, "youtube discovery")
		return
	}

	var req youtube.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Domain == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domain is required"})
		return
	}

	channels, err := a.youtube.Discover(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"influencers": channels,
		"count":       len(channels),
		"source":      "youtube_api",
	})
}

func (a *api) mediaPlanHandler(w http.ResponseWriter, r *http.Request) {
	var req mediaplan.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Domain == "" || req.TargetAudience == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domain and target_audience are required"})
		return
	}

	writeJSON(w, http.StatusOK, a.planner.Plan(req))
}

func (a *api) copyHandler(w http.ResponseWriter, r *http.Request) {
	if a.copy == nil {
		writeUnavailable(w, "copywriting")
		return
	}

	var brief campaign.Brief
	if !decodeBody(w, r, &brief) {
		return
	}

	out, err := a.copy.Generate(r.Context(), brief)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) outreachHandler(w http.ResponseWriter, r *http.Request) {
	if a.outreach == nil {
		writeUnavailable(w, "outreach")
		return
	}

	var req outreachRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MessageType == "" {
		req.MessageType = campaign.InitialContact
	}

	switch {
	case len(req.Influencers) > 0:
		writeJSON(w, http.StatusOK, a.outreach.GenerateBulk(r.Context(), req.Influencers, req.Brand, req.MessageType))
	case req.Influencer != nil:
		msg, err := a.outreach.Generate(r.Context(), *req.Influencer, req.Brand, req.MessageType, req.ContentSummary)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "influencer or influencers is required"})
	}
}

func (a *api) listReportsHandler(w http.ResponseWriter, r *http.Request) {
	if a.reports == nil {
		writeUnavailable(w, "report storage")
		return
	}

	names, err := a.reports.ListReports(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports": names,
		"count":   len(names),
	})
}

func (a *api) getReportHandler(w http.ResponseWriter, r *http.Request) {
	if a.reports == nil {
		writeUnavailable(w, "report storage")
		return
	}

	analysis, err := a.reports.GetReport(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (a *api) deleteReportHandler(w http.ResponseWriter, r *http.Request) {
	if a.reports == nil {
		writeUnavailable(w, "report storage")
		return
	}

	if err := a.reports.DeleteReport(r.Context(), mux.Vars(r)["name"]); err != nil {
		writeReportError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrStorageDisabled):
		writeUnavailable(w, "report storage")
	case errors.Is(err, reporting.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
	default:
		writeError(w, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, discovery.ErrInvalidRequest) {
		status = http.StatusBadRequest
	} else {
		logrus.Errorf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeUnavailable(w http.ResponseWriter, feature string) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": feature + " is not configured"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to write response: %v", err)
	}
}
