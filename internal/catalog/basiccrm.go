package catalog

import (
	"fmt"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

func init() {
	register(basicCRMFlow)
}

// basicCRMFlow designs multi-channel email/SMS nurture sequences.
var basicCRMFlow = Flow{
	Name:      models.FlowBasicCRM,
	Title:     "Custom Nurture Campaign",
	Mode:      AdvanceSelection,
	Streaming: true,
	Welcome:   "Welcome! Let's start with your Custom Nurture Campaign. Please provide your marketing report to ensure campaign alignment.",
	Steps: []Step{
		{
			Number:      1,
			Title:       "Campaign Seeding",
			Description: "Define campaign fundamentals",
			Prompts: []Prompt{
				{ID: 1, Title: "Marketing Report", Body: "Please provide your comprehensive marketing report to ensure campaign alignment."},
				{ID: 2, Title: "Campaign Details", Body: "Add any information relevant to: your landing page, your ads, your campaign offer."},
			},
		},
		{
			Number:      2,
			Title:       "Soap Opera Sequence",
			Description: "5-day email sequence",
			Prompts: []Prompt{
				{ID: 1, Title: "Email Sequence", Body: `Write a 5 day email sequence inspired by Russell Brunson's follow up "soap opera sequence".
Email one sets the stage and has the hook as the subject line then the story as the body.
Email two has the hook as the subject line, the story as the body, the CTA as the offer. Followed by the website.
Email 3 shares the epiphany you had regarding your core product. The hook is the subject line, the story is the body, there is a CTA then a website to go to.
Email 4 is the hook (subject line). The story is the body. The offer is the CTA followed by the website.
Email 5 adds urgency and scarcity with a strong CTA. It follows the format of the hook being the subject line, the story being the body, the offer being the call to action followed by the website.`},
			},
		},
		{
			Number:      3,
			Title:       "Pre-Call Nurture",
			Description: "Prepare booked clients",
			Prompts: []Prompt{
				{ID: 1, Title: "Pre-Call Sequence", Body: "Write a pre-call nurture sequence to educate and prepare clients who booked a call, as well as an engaging text reminder campaign."},
			},
		},
		{
			Number:      4,
			Title:       "No-Book Recovery",
			Description: "Re-engage prospects",
			Prompts: []Prompt{
				{ID: 1, Title: "Recovery Sequence", Body: "Write a nurture sequence for email, VM drop, and text message if they did not book a call to try to recapture them on the benefits for them to book a call."},
			},
		},
		{
			Number:      5,
			Title:       "Long-Term Nurture",
			Description: "Keep prospects warm",
			Prompts: []Prompt{
				{ID: 1, Title: "30-Day Sequence", Body: "If they didn't convert, write a 30 day nurture sequence to keep them warm."},
			},
		},
	},
	Instruction: basicCRMInstruction,
}

func basicCRMInstruction(step Step, promptID int, projectContext string) string {
	return fmt.Sprintf(`You are a CRM and email marketing expert working on %s, %s - %s.
Provide clear, actionable content for step %d, prompt %d.

Guidelines:
1. Create compelling, conversion-focused content
2. Use clear formatting with subject lines, body text, and CTAs clearly labeled
3. Include specific examples and templates
4. Follow email marketing best practices
5. Maintain brand voice consistency
6. For multi-channel sequences (email, SMS, VM), clearly label each channel

Format your response with clear sections, proper email formatting, and include all necessary components (subject lines, body text, CTAs).`,
		projectContext, step.Title, step.Description, step.Number, promptID)
}
