package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/campaignkit/campaign-agents/internal/config"
	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const (
	teamsShortlist = 5
	emailShortlist = 10
)

// Mailer delivers email messages; *gomail.Dialer satisfies it
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Service sends discovery reports to Teams and email
type Service struct {
	config *config.Config
	client *resty.Client
	mailer Mailer
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
		mailer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// WithMailer replaces the SMTP dialer
func (s *Service) WithMailer(m Mailer) *Service {
	s.mailer = m
	return s
}

// SendReport sends a report via configured notification channels
func (s *Service) SendReport(ctx context.Context, report *models.Report) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(ctx, report); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(ctx context.Context, report *models.Report) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(buildTeamsMessage(report)).
		Post(s.config.TeamsWebhookURL)
	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func subjectLine(report *models.Report) string {
	return fmt.Sprintf("Influencer Discovery - %s (%d influencers)", report.Campaign, len(report.Analysis.Influencers))
}

func buildTeamsMessage(report *models.Report) *TeamsMessage {
	analysis := report.Analysis
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   subjectLine(report),
		Text: fmt.Sprintf("Found %d influencers for %s targeting %s",
			len(analysis.Influencers), analysis.Domain, analysis.TargetAudience),
	}

	facts := []TeamsFact{
		{Name: "Influencers", Value: fmt.Sprintf("%d", analysis.Insights.TotalInfluencersFound)},
		{Name: "High Confidence", Value: fmt.Sprintf("%d", analysis.Insights.HighConfidenceCount)},
		{Name: "Average Score", Value: fmt.Sprintf("%.2f", analysis.Insights.AverageRelevanceScore)},
		{Name: "Search Effectiveness", Value: analysis.Insights.SearchEffectiveness},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	if len(analysis.Insights.RecommendedPlatforms) > 0 {
		facts = append(facts, TeamsFact{Name: "Top Platforms", Value: strings.Join(analysis.Insights.RecommendedPlatforms, ", ")})
	}
	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if len(analysis.Influencers) > 0 {
		var top []string
		for i, inf := range analysis.Influencers {
			if i == teamsShortlist {
				break
			}
			top = append(top, fmt.Sprintf("**[%s](%s)** - score %.2f (%s)",
				inf.Title, inf.Link, inf.RelevanceScore, inf.Confidence))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Top Influencers",
			ActivityText:  strings.Join(top, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.Report) error {
	htmlBody, err := buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subjectLine(report))
	m.SetBody("text/plain", buildEmailText(report))
	m.AddAlternative("text/html", htmlBody)

	if err := s.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Influencer Discovery</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #5c2d91; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .influencer { border-left: 4px solid #5c2d91; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .influencer-title { font-weight: bold; margin-bottom: 5px; }
        .influencer-meta { color: #666; font-size: 0.9em; }
        .high { border-left-color: #107c10; }
        .medium { border-left-color: #ffb900; }
        .low { border-left-color: #605e5c; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Campaign}}</h1>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Domain:</strong> {{.Analysis.Domain}}</p>
        <p><strong>Audience:</strong> {{.Analysis.TargetAudience}}</p>
        <p><strong>Influencers:</strong> {{.Analysis.Insights.TotalInfluencersFound}} ({{.Analysis.Insights.HighConfidenceCount}} high confidence)</p>
        <p><strong>Search Effectiveness:</strong> {{.Analysis.Insights.SearchEffectiveness}}</p>
    </div>

    {{if .Analysis.Influencers}}
    <h2>Shortlist</h2>
    {{range $index, $inf := .Analysis.Influencers}}
        {{if lt $index 10}}
        <div class="influencer {{$inf.Confidence}}">
            <div class="influencer-title">
                <a href="{{$inf.Link}}" target="_blank">{{$inf.Title}}</a>
            </div>
            <div class="influencer-meta">Score: {{printf "%.2f" $inf.RelevanceScore}} | Confidence: {{$inf.Confidence}}</div>
            {{if $inf.Snippet}}<p>{{truncate $inf.Snippet 200}}</p>{{end}}
        </div>
        {{end}}
    {{end}}
    {{end}}

    {{if .Analysis.Recommendations}}
    <h2>Recommendations</h2>
    <ul>{{range .Analysis.Recommendations}}<li>{{.}}</li>{{end}}</ul>
    {{end}}

    <hr>
    <p><small>This report was generated automatically by Campaign Agents.</small></p>
</body>
</html>
`

func buildEmailHTML(report *models.Report) (string, error) {
	t, err := template.New("email").Funcs(template.FuncMap{
		"truncate": truncate,
	}).Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func buildEmailText(report *models.Report) string {
	analysis := report.Analysis
	var text strings.Builder

	text.WriteString(fmt.Sprintf("%s\n", subjectLine(report)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Domain: %s\n", analysis.Domain))
	text.WriteString(fmt.Sprintf("Audience: %s\n", analysis.TargetAudience))
	text.WriteString(fmt.Sprintf("Influencers: %d (%d high confidence)\n",
		analysis.Insights.TotalInfluencersFound, analysis.Insights.HighConfidenceCount))

	if len(analysis.Influencers) > 0 {
		text.WriteString("\nSHORTLIST\n")
		text.WriteString("=========\n")

		for i, inf := range analysis.Influencers {
			if i == emailShortlist {
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, inf.Title))
			text.WriteString(fmt.Sprintf("   Score: %.2f | Confidence: %s\n", inf.RelevanceScore, inf.Confidence))
			text.WriteString(fmt.Sprintf("   URL: %s\n", inf.Link))
		}
	}

	if len(analysis.Recommendations) > 0 {
		text.WriteString("\nRECOMMENDATIONS\n")
		text.WriteString("===============\n")
		for _, rec := range analysis.Recommendations {
			text.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by Campaign Agents.\n")

	return text.String()
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
