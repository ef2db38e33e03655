package campaign

const outreachRules = `
CRITICAL RULES:
1. Sound like a real human, not a marketing bot
2. NO generic templates or copy-paste vibes
3. Show you actually looked at their content
4. Focus on mutual value, not just what you want
5. Keep it conversational and authentic
6. Don't oversell or sound desperate
7. Be specific about why YOU reached out to THEM
8. Make it feel like the start of a friendship, not a transaction
`

func messageInstructions() map[MessageType]string {
	return map[MessageType]string{
		InitialContact: `
Write a brief, friendly initial outreach message (3-4 sentences max).

TONE: Warm, genuine, like messaging a friend-of-a-friend
GOAL: Start a conversation, not close a deal
STRUCTURE:
- Quick genuine compliment about their specific content
- Brief mention of why you thought of them
- Casual question or invitation to chat

DO NOT include formal greetings or signatures. Just the message body.
`,
		CasualDM: `
Write a super casual Instagram/social media DM (2-3 sentences).

TONE: Like sliding into DMs of someone you admire
VIBE: Short, punchy, emoji-friendly (use 1-2 relevant emojis MAX)
GOAL: Get them interested enough to reply

DO NOT sound salesy. Just genuine interest.
`,
		FollowUp: `
Write a brief follow-up message (2-3 sentences).

TONE: Friendly check-in, not pushy
GOAL: Gentle reminder without being annoying
STRUCTURE:
- Acknowledge they're probably busy
- Quick reminder of what you're about
- Easy out if not interested
`,
		FormalEmail: `
Write a professional but warm email.

FORMAT:
Subject: [Create compelling subject line]
---
[Email body]

TONE: Professional yet personable
STRUCTURE:
1. Personal greeting and genuine compliment
2. Brief brand introduction (1-2 sentences)
3. Why this partnership makes sense for THEM
4. Specific collaboration idea (keep flexible)
5. Easy next step
6. Warm sign-off

LENGTH: 150-200 words MAX.

Include both Subject line and body, separated by '---'
`,
		PartnershipProposal: `
Write a detailed partnership proposal message.

TONE: Professional but excited
STRUCTURE:
1. Genuine appreciation for their work
2. Brief brand story and mission
3. Why you see a perfect fit
4. Specific collaboration concepts (2-3 ideas)
5. What's in it for them (be specific)
6. Flexible next steps
7. Warm close

LENGTH: 200-300 words. Detailed but scannable.

DO NOT include subject line, just the message body.
`,
	}
}
