package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/campaignkit/campaign-agents/internal/llm"
	"github.com/sirupsen/logrus"
)

// MessageType selects the shape of an outreach message
type MessageType string

const (
	InitialContact      MessageType = "initial_contact"
	CasualDM            MessageType = "casual_dm"
	FollowUp            MessageType = "follow_up"
	FormalEmail         MessageType = "formal_email"
	PartnershipProposal MessageType = "partnership_proposal"
)

// Influencer is the creator being contacted
type Influencer struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Niche    string `json:"niche,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// Brand describes who is reaching out
type Brand struct {
	Name              string `json:"brand_name"`
	ProductDomain     string `json:"product_domain"`
	TargetAudience    string `json:"target_audience"`
	CollaborationIdea string `json:"collaboration_idea,omitempty"`
}

// ContentSummary is an optional analysis of the creator's recent content
type ContentSummary struct {
	MainTopics   []string `json:"main_topics"`
	RecentThemes []string `json:"recent_themes"`
	Tone         string   `json:"tone"`
	HookExamples []string `json:"hook_examples"`
}

// Message is a generated outreach message
type Message struct {
	Subject     string      `json:"subject"`
	Message     string      `json:"message"`
	MessageType MessageType `json:"message_type"`
	Platform    string      `json:"platform"`
}

// BulkMessage pairs an influencer with the message written for them
type BulkMessage struct {
	Influencer Influencer `json:"influencer"`
	Outreach   Message    `json:"outreach"`
}

// OutreachWriter writes personalized collaboration messages
type OutreachWriter struct {
	llm          llm.ChatCompleter
	instructions map[MessageType]string
}

// NewOutreachWriter creates a new outreach writer
func NewOutreachWriter(completer llm.ChatCompleter) *OutreachWriter {
	return &OutreachWriter{
		llm:          completer,
		instructions: messageInstructions(),
	}
}

// ResolveType maps unknown message types to InitialContact
func (w *OutreachWriter) ResolveType(msgType MessageType) MessageType {
	if _, ok := w.instructions[msgType]; ok {
		return msgType
	}
	return InitialContact
}

// Generate writes one outreach message
func (w *OutreachWriter) Generate(ctx context.Context, influencer Influencer, brand Brand, msgType MessageType, content *ContentSummary) (*Message, error) {
	msgType = w.ResolveType(msgType)

	reply, err := w.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{{Role: "user", Content: w.buildPrompt(influencer, brand, msgType, content)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate outreach for %s: %w", influencer.Name, err)
	}

	msg := &Message{
		MessageType: msgType,
		Platform:    orDefault(influencer.Platform, "Unknown"),
	}
	if msgType == FormalEmail {
		msg.Subject, msg.Message = parseEmail(reply)
	} else {
		msg.Subject = fmt.Sprintf("Collaboration with %s", orDefault(brand.Name, "our brand"))
		msg.Message = reply
	}
	return msg, nil
}

// GenerateBulk writes a message for each influencer. A failed generation
// yields an error entry for that influencer.
func (w *OutreachWriter) GenerateBulk(ctx context.Context, influencers []Influencer, brand Brand, msgType MessageType) []BulkMessage {
	results := make([]BulkMessage, 0, len(influencers))

	for _, influencer := range influencers {
		msg, err := w.Generate(ctx, influencer, brand, msgType, nil)
		if err != nil {
			logrus.Errorf("Outreach generation failed for %s: %v", influencer.Name, err)
			msg = &Message{
				Subject:     "Error generating outreach",
				Message:     fmt.Sprintf("Error: %v", err),
				MessageType: w.ResolveType(msgType),
				Platform:    orDefault(influencer.Platform, "Unknown"),
			}
		}
		results = append(results, BulkMessage{Influencer: influencer, Outreach: *msg})
	}

	return results
}

func (w *OutreachWriter) buildPrompt(influencer Influencer, brand Brand, msgType MessageType, content *ContentSummary) string {
	niche := orDefault(influencer.Niche, orDefault(influencer.Snippet, "your content"))

	var b strings.Builder
	b.WriteString("You are a relationship manager reaching out to influencers for authentic collaborations.\n\n")
	b.WriteString("INFLUENCER DETAILS:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(influencer.Name, "there"))
	fmt.Fprintf(&b, "- Platform: %s\n", orDefault(influencer.Platform, "social media"))
	fmt.Fprintf(&b, "- Content Focus: %s\n", niche)
	b.WriteString(contentContext(content))
	b.WriteString("\nBRAND DETAILS:\n")
	fmt.Fprintf(&b, "- Brand: %s\n", orDefault(brand.Name, "our brand"))
	fmt.Fprintf(&b, "- Product Category: %s\n", orDefault(brand.ProductDomain, "our products"))
	fmt.Fprintf(&b, "- Target Audience: %s\n", orDefault(brand.TargetAudience, "our audience"))
	if brand.CollaborationIdea != "" {
		fmt.Fprintf(&b, "- Collaboration Idea: %s\n", brand.CollaborationIdea)
	}
	b.WriteString(outreachRules)
	b.WriteString("\n")
	b.WriteString(w.instructions[msgType])
	return b.String()
}

func contentContext(content *ContentSummary) string {
	if content == nil || len(content.MainTopics) == 0 {
		return ""
	}

	themes := "N/A"
	if len(content.RecentThemes) > 0 {
		themes = strings.Join(firstN(content.RecentThemes, 3), ", ")
	}

	var b strings.Builder
	b.WriteString("\nTHEIR RECENT CONTENT (Use this to personalize!):\n")
	fmt.Fprintf(&b, "- Main Topics: %s\n", strings.Join(firstN(content.MainTopics, 3), ", "))
	fmt.Fprintf(&b, "- Recent Themes: %s\n", themes)
	fmt.Fprintf(&b, "- Content Tone: %s\n", orDefault(content.Tone, "N/A"))
	if len(content.HookExamples) > 0 {
		fmt.Fprintf(&b, "- Hook Examples: %s\n", content.HookExamples[0])
	}
	b.WriteString("\nReference their actual content! Mention a specific topic or recent theme.\n")
	return b.String()
}

// parseEmail splits "Subject: ...\n---\nbody". Without a separator the first
// line is the subject.
func parseEmail(content string) (string, string) {
	if head, body, ok := strings.Cut(content, "---"); ok {
		subject := strings.TrimSpace(head)
		if strings.HasPrefix(subject, "Subject:") {
			subject = strings.TrimSpace(strings.TrimPrefix(subject, "Subject:"))
		}
		return subject, strings.TrimSpace(body)
	}

	first, rest, ok := strings.Cut(content, "\n")
	if !ok {
		return strings.TrimSpace(first), content
	}
	return strings.TrimSpace(first), strings.TrimSpace(rest)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
