package campaign

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campaignkit/campaign-agents/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCompleter is a mock implementation of llm.ChatCompleter
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func userPrompt(req llm.Request) string {
	return req.Messages[len(req.Messages)-1].Content
}

func TestCopywriterGenerate(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return len(req.Messages) == 2 &&
			req.Messages[0].Role == "system" &&
			req.Temperature == copyTemperature &&
			strings.Contains(userPrompt(req), `"product": "EcoThreads tees"`)
	})).Return("```json\n{\"captions\":[\"tbh these tees are comfy 🌱\"],\"ad_copy\":[\"Organic cotton.\"]}\n```", nil)

	out, err := NewCopywriter(completer).Generate(context.Background(), Brief{
		Product:  "EcoThreads tees",
		Audience: "college students",
		Tone:     "casual",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tbh these tees are comfy 🌱"}, out.Captions)
	assert.Equal(t, []string{"Organic cotton."}, out.AdCopy)
	assert.Equal(t, []string{}, out.BlogIdeas)
	completer.AssertExpectations(t)
}

func TestCopywriterGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		wantErr error
	}{
		{"completion fails", "", errors.New("timeout"), nil},
		{"no json", "Sorry, I can't help with that.", nil, llm.ErrNoJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := new(MockCompleter)
			completer.On("Complete", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			_, err := NewCopywriter(completer).Generate(context.Background(), Brief{Product: "x"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

var sarah = Influencer{
	Name:     "Sarah Johnson",
	Platform: "Instagram",
	URL:      "https://instagram.com/sarahjohnson",
	Niche:    "sustainable fashion and lifestyle",
}

var ecoThreads = Brand{
	Name:           "EcoThreads",
	ProductDomain:  "sustainable fashion",
	TargetAudience: "young women aged 18-30",
}

func TestOutreachGenerate(t *testing.T) {
	tests := []struct {
		name            string
		msgType         MessageType
		reply           string
		expectedType    MessageType
		expectedSubject string
		expectedBody    string
		promptMarker    string
	}{
		{
			name:            "casual dm",
			msgType:         CasualDM,
			reply:           "Love your thrift hauls! 🌱",
			expectedType:    CasualDM,
			expectedSubject: "Collaboration with EcoThreads",
			expectedBody:    "Love your thrift hauls! 🌱",
			promptMarker:    "super casual Instagram/social media DM",
		},
		{
			name:            "formal email with separator",
			msgType:         FormalEmail,
			reply:           "Subject: A sustainable collab idea\n---\nHi Sarah,\n\nBig fan.",
			expectedType:    FormalEmail,
			expectedSubject: "A sustainable collab idea",
			expectedBody:    "Hi Sarah,\n\nBig fan.",
			promptMarker:    "separated by '---'",
		},
		{
			name:            "formal email without separator",
			msgType:         FormalEmail,
			reply:           "Let's work together\nHi Sarah, big fan.",
			expectedType:    FormalEmail,
			expectedSubject: "Let's work together",
			expectedBody:    "Hi Sarah, big fan.",
			promptMarker:    "professional but warm email",
		},
		{
			name:            "unknown type falls back to initial contact",
			msgType:         MessageType("carrier_pigeon"),
			reply:           "Hey Sarah!",
			expectedType:    InitialContact,
			expectedSubject: "Collaboration with EcoThreads",
			expectedBody:    "Hey Sarah!",
			promptMarker:    "initial outreach message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := new(MockCompleter)
			completer.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
				prompt := userPrompt(req)
				return strings.Contains(prompt, tt.promptMarker) &&
					strings.Contains(prompt, "- Name: Sarah Johnson") &&
					strings.Contains(prompt, "- Brand: EcoThreads")
			})).Return(tt.reply, nil)

			msg, err := NewOutreachWriter(completer).Generate(context.Background(), sarah, ecoThreads, tt.msgType, nil)
			require.NoError(t, err)

			assert.Equal(t, &Message{
				Subject:     tt.expectedSubject,
				Message:     tt.expectedBody,
				MessageType: tt.expectedType,
				Platform:    "Instagram",
			}, msg)
			completer.AssertExpectations(t)
		})
	}
}

func TestOutreachPromptDefaults(t *testing.T) {
	w := NewOutreachWriter(nil)
	prompt := w.buildPrompt(Influencer{Snippet: "eco blogger"}, Brand{}, InitialContact, nil)

	assert.Contains(t, prompt, "- Name: there")
	assert.Contains(t, prompt, "- Platform: social media")
	assert.Contains(t, prompt, "- Content Focus: eco blogger")
	assert.Contains(t, prompt, "- Brand: our brand")
	assert.NotContains(t, prompt, "Collaboration Idea")
	assert.NotContains(t, prompt, "THEIR RECENT CONTENT")
}

func TestOutreachPromptContentSummary(t *testing.T) {
	w := NewOutreachWriter(nil)
	prompt := w.buildPrompt(sarah, Brand{Name: "EcoThreads", CollaborationIdea: "capsule wardrobe"}, PartnershipProposal, &ContentSummary{
		MainTopics:   []string{"thrifting", "repair", "capsules", "dyeing"},
		HookExamples: []string{"My 10-piece wardrobe"},
	})

	assert.Contains(t, prompt, "- Main Topics: thrifting, repair, capsules\n")
	assert.Contains(t, prompt, "- Recent Themes: N/A")
	assert.Contains(t, prompt, "- Content Tone: N/A")
	assert.Contains(t, prompt, "- Hook Examples: My 10-piece wardrobe")
	assert.Contains(t, prompt, "- Collaboration Idea: capsule wardrobe")
}

func TestOutreachGenerateBulk(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(userPrompt(req), "- Name: Broken")
	})).Return("", errors.New("rate limited"))
	completer.On("Complete", mock.Anything, mock.Anything).Return("Hi!", nil)

	influencers := []Influencer{sarah, {Name: "Broken"}, {Name: "Tom", Platform: "YouTube"}}
	results := NewOutreachWriter(completer).GenerateBulk(context.Background(), influencers, ecoThreads, InitialContact)

	require.Len(t, results, 3)
	assert.Equal(t, "Hi!", results[0].Outreach.Message)

	assert.Equal(t, "Broken", results[1].Influencer.Name)
	assert.Equal(t, "Error generating outreach", results[1].Outreach.Subject)
	assert.Contains(t, results[1].Outreach.Message, "rate limited")
	assert.Equal(t, "Unknown", results[1].Outreach.Platform)

	assert.Equal(t, "YouTube", results[2].Outreach.Platform)
	completer.AssertNumberOfCalls(t, "Complete", 3)
}

func TestParseEmail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		subject string
		body    string
	}{
		{"subject prefix", "Subject: Hello\n---\nBody", "Hello", "Body"},
		{"no prefix", "Hello\n---\nBody --- more", "Hello", "Body --- more"},
		{"first line", "Hello\nBody", "Hello", "Body"},
		{"single line", "Hello", "Hello", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := parseEmail(tt.content)
			assert.Equal(t, tt.subject, subject)
			assert.Equal(t, tt.body, body)
		})
	}
}
