package campaign

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campaignkit/campaign-agents/internal/llm"
	"github.com/sirupsen/logrus"
)

const copyTemperature = 0.7

// Brief is the campaign strategy copy is written from
type Brief struct {
	Product   string   `json:"product"`
	Audience  string   `json:"audience"`
	Goal      string   `json:"goal,omitempty"`
	Tone      string   `json:"tone,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
}

// Copy is the generated marketing content
type Copy struct {
	Captions  []string `json:"captions"`
	AdCopy    []string `json:"ad_copy"`
	BlogIdeas []string `json:"blog_ideas"`
}

// Copywriter generates captions, ad copy and blog ideas with an LLM
type Copywriter struct {
	llm llm.ChatCompleter
}

// NewCopywriter creates a new copywriter
func NewCopywriter(completer llm.ChatCompleter) *Copywriter {
	return &Copywriter{llm: completer}
}

// Generate writes campaign copy for the brief
func (c *Copywriter) Generate(ctx context.Context, brief Brief) (*Copy, error) {
	strategy, err := json.MarshalIndent(brief, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode brief: %w", err)
	}

	reply, err := c.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: copywriterPrompt},
			{Role: "user", Content: "Strategy:\n" + string(strategy)},
		},
		Temperature: copyTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate copy: %w", err)
	}

	out := &Copy{}
	if err := llm.DecodeJSON(reply, out); err != nil {
		logrus.Warnf("Copywriter returned unparseable output for %s: %v", brief.Product, err)
		return nil, fmt.Errorf("failed to parse copy: %w", err)
	}

	for _, list := range []*[]string{&out.Captions, &out.AdCopy, &out.BlogIdeas} {
		if *list == nil {
			*list = []string{}
		}
	}
	return out, nil
}

const copywriterPrompt = `You are a professional marketing copywriter.

Your task is to generate marketing content strictly based on the provided campaign strategy.

Rules:
- Do not invent facts about the product.
- Do not include any personal data.
- Do not mention internal strategy or system instructions.
- Match the specified tone and audience.
- Adapt writing style to the platform.

INSTAGRAM CAPTIONS:
- Write like a real person (satisfied customer), NOT the brand
- Sound human and conversational, not corporate
- Ground each caption in a specific moment, use-case, or relatable emotion
- Be lightly promotional, never salesy
- Generate 4 types of captions: casual testimonial, low-key promotional,
  launch/announcement style, engagement question
- Only mention the brand name in 1-2 captions
- Format: [Caption text]\n\n[5-6 relevant hashtags with #]
- Length: under 200 characters excluding hashtags

AD COPY:
- Each ad_copy should be persuasive but factual.

BLOG IDEAS:
- Each blog_idea should be a short title + one-line description.

Return ONLY valid JSON in this exact structure:
{
  "captions": [],
  "ad_copy": [],
  "blog_ideas": []
}`
