package catalog

import (
	"fmt"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

func init() {
	register(googleAdsFlow)
}

// googleAdsFlow builds a Google Ads campaign from seeding through a full
// landing page draft.
var googleAdsFlow = Flow{
	Name:      models.FlowGoogleAds,
	Title:     "Google Ads Campaign",
	Mode:      AdvanceSelection,
	Streaming: true,
	Welcome:   "Welcome! Let's start with your Google Ads campaign. Please provide your Full Brand Report to ensure campaign alignment.",
	Steps: []Step{
		{
			Number:      1,
			Title:       "Campaign Seeding",
			Description: "Define campaign fundamentals",
			Prompts: []Prompt{
				{ID: 1, Title: "Brand Report", Body: "Please provide your Full Brand Report to ensure campaign alignment with your brand identity."},
				{ID: 2, Title: "Campaign Offer", Body: "What is your specific offer for this campaign? Detail your primary offer or incentive (e.g., exclusive package, discounts, unique features)."},
				{ID: 3, Title: "Target Demographic", Body: "Who is your exact target demographic for this campaign? Please be specific (e.g., women aged 25-45, newlyweds, individuals celebrating milestones)."},
				{ID: 4, Title: "Campaign Purpose", Body: "What is the specific goal of this campaign? (e.g., increase bookings, promote a seasonal offer, brand awareness)"},
			},
		},
		{
			Number:      2,
			Title:       "Headlines Creation",
			Description: "Craft compelling ad headlines",
			Prompts: []Prompt{
				{ID: 1, Title: "Generate Headlines", Body: "Let's create 15 Google Ads headlines (up to 50 characters each). Focus on incorporating high-performing keywords, highlighting USPs, and adding urgency."},
			},
		},
		{
			Number:      3,
			Title:       "Ad Descriptions",
			Description: "Create engaging ad descriptions",
			Prompts: []Prompt{
				{ID: 1, Title: "Generate Descriptions", Body: "Let's create 5 Google Ads descriptions (up to 90 characters each). Focus on benefits, emotional appeal, and specific features like professional editing or quick turnaround."},
			},
		},
		{
			Number:      4,
			Title:       "Callout Extensions",
			Description: "Add compelling callout extensions",
			Prompts: []Prompt{
				{ID: 1, Title: "Generate Extensions", Body: "Let's create 10 Google Ads callout extensions. Focus on tangible benefits and features that address client concerns."},
			},
		},
		{
			Number:      5,
			Title:       "Negative Keywords",
			Description: "Define campaign exclusions",
			Prompts: []Prompt{
				{ID: 1, Title: "Generate Keywords", Body: "Let's create a minimum of 60 negative Google Ads keywords to ensure your ads avoid irrelevant, inappropriate, or non-targeting services."},
			},
		},
		{
			Number:      6,
			Title:       "Landing Page Wireframe",
			Description: "Design conversion-focused layout",
			Prompts: []Prompt{
				{ID: 1, Title: "Generate Wireframe", Body: "Based on the campaign details, let's create a refined wireframe summary for the landing page."},
			},
		},
		{
			Number:      7,
			Title:       "Landing Page Draft",
			Description: "Create complete landing page content",
			Prompts: []Prompt{
				{ID: 1, Title: "Full Page Draft", Body: "Let's create a comprehensive landing page draft optimized for Google Ads conversion, including all sections from hero to footer."},
			},
		},
	},
	Instruction: googleAdsInstruction,
}

func googleAdsInstruction(step Step, promptID int, projectContext string) string {
	return fmt.Sprintf(`You are a Google Ads expert working on %s, %s - %s.
Provide clear, actionable guidance for step %d, prompt %d.

Guidelines:
1. Keep responses focused and practical
2. Use bullet points for clarity
3. Include specific examples
4. Follow Google Ads best practices
5. Maintain professional tone

Format your response with clear sections and bullet points.`,
		projectContext, step.Title, step.Description, step.Number, promptID)
}
