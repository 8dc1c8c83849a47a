package catalog

import (
	"fmt"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

func init() {
	register(metaAdsFlow)
}

var metaAdsStepGuidance = map[int]string{
	1: "Analyze the brand report and provide key insights that will be relevant for the Meta Ads campaign.",
	2: "Help define detailed campaign parameters including target audience, campaign goals, and pain points.",
	3: "Based on the campaign details, recommend the most suitable campaign objective and explain why.",
	4: "Create compelling ad copy variations based on the campaign details and selected objective. Follow the templates provided while maintaining brand voice and focusing on key benefits and pain points.",
	5: "Create a detailed landing page wireframe based on the campaign details and ad copy. Follow the provided section structure while maintaining brand voice and optimizing for conversions.",
	6: "Create 3 strategic qualifying questions that will effectively identify ideal prospects while maintaining engagement.",
	7: "Design a conversational Messenger campaign that builds rapport while qualifying and guiding prospects to take action.",
	8: "Create an engaging survey experience that qualifies prospects while educating them about your offer.",
}

// metaAdsFlow walks a Meta Ads campaign from brand seeding to survey
// design. Prompts within a step must be completed in ascending order and
// the step only advances on explicit user action.
var metaAdsFlow = Flow{
	Name:      models.FlowMetaAds,
	Title:     "Meta Ads Campaign",
	Mode:      AdvanceSelection,
	Streaming: true,
	Welcome:   "Welcome! Let's start with your Meta Ads campaign. Please provide your Full Brand Report to ensure campaign alignment.",
	Steps: []Step{
		{
			Number:      1,
			Title:       "Campaign Seeding",
			Description: "Define brand fundamentals",
			Prompts: []Prompt{
				{ID: 1, Title: "Brand Report", Body: "Please provide your Full Brand Report to ensure campaign alignment with your brand identity."},
			},
		},
		{
			Number:      2,
			Title:       "Campaign Details",
			Description: "Define campaign specifics",
			Prompts: []Prompt{
				{ID: 1, Title: "Campaign Information", Body: "Please put in as many details about this specific campaign as possible (demographic, psychographic, name of campaign, what it does, who it is for, what are their pain points):"},
				{ID: 2, Title: "Territory Boundaries", Body: "If there are territory boundaries to your location please list them now:"},
				{ID: 3, Title: "Location Targeting", Body: "Based on your territory boundaries, let's identify location names, organizations, and facilities where your ideal client would be at so that we can target them more effectively for meta ads."},
				{ID: 4, Title: "Audience Targeting", Body: "Based on your specific campaign, let's create a list of demographics, interests, and behaviors that you can target for your business within this specific campaign. We'll ensure the pain points for this audience are high."},
			},
		},
		{
			Number:      3,
			Title:       "Campaign Objective",
			Description: "Choose your primary goal",
			Prompts: []Prompt{
				{ID: 1, Title: "Awareness", Body: "Show your ads to people who are most likely to remember them.\n\nGood for:\n- Reach\n- Brand awareness\n- Video views\n- Store location awareness"},
				{ID: 2, Title: "Traffic", Body: "Send people to a destination, like your website, app, Instagram profile or Facebook event.\n\nGood for:\n- Link clicks\n- Landing page views\n- Instagram profile visits\n- Messenger, Instagram and WhatsApp\n- Calls"},
				{ID: 3, Title: "Engagement", Body: "Get more messages, purchases through messaging, video views, post engagement, Page likes or event responses.\n\nGood for:\n- Messenger, Instagram and WhatsApp\n- Video views\n- Post engagement\n- Conversions\n- Calls"},
				{ID: 4, Title: "Leads", Body: "Collect leads for your business or brand.\n\nGood for:\n- Instant forms\n- Messenger, Instagram and WhatsApp\n- Conversions\n- Calls"},
				{ID: 5, Title: "App Promotion", Body: "Find new people to install your app and continue using it.\n\nGood for:\n- App installs\n- App events"},
				{ID: 6, Title: "Sales", Body: "Find people likely to purchase your product or service.\n\nGood for:\n- Conversions\n- Catalog sales\n- Messenger, Instagram and WhatsApp\n- Calls"},
			},
		},
		{
			Number:      4,
			Title:       "Ad Copywriting",
			Description: "Create compelling ad copy",
			Prompts: []Prompt{
				{ID: 1, Title: "Primary Text", Body: `Write 5 different high converting meta Primary Text Variations. Alternate between long and short form copy. Keep copy direct, emotional, and focused on benefits. Use urgency & scarcity in at least one ad variation. You can only write 125 characters max. Write it like you are sitting next to a friend in an informal tone. Use minimal emoji's. Use the following as a template:

1. "Tired of [pain point]? [Product/service] makes it easy to [achieve goal]. Get started today - click below!"
2. "'[Customer Quote]' - Ready to get [desired result]? We're offering [limited offer] for a short time. Grab yours now!"
3. "What if [solution] was easier than you thought? [Product/service] helps you [achieve goal] in just [timeframe]. Try it today!"
4. "Last chance! [Offer] ends at midnight. Don't wait - click now to claim your [discount/bonus]!"
5. "Want to [achieve goal] without the hassle? Download our FREE [guide/demo] now and see how easy it can be!"`},
				{ID: 2, Title: "Headlines", Body: `Write 5 different high converting meta ad headline variations. Keep copy direct, emotional, and focused on benefits. Use urgency & scarcity in at least one ad variation. You can only write 40 characters max. Write it like you are sitting next to a friend in informal tone. Use minimal emoji's. Use the following as a template:

1. "Struggling with [problem]? Fix it!"
2. "'[Customer Quote]' - See How!"
3. "Save [X]% Today - Limited Offer!"
4. "Fast & Easy [Service/Product]!"
5. "Get [Result] in [Timeframe]!"`},
				{ID: 3, Title: "Descriptions", Body: `Write 5 different high converting meta ad description variations according to my specific campaign. Keep copy direct, emotional, and focused on benefits. Use urgency & scarcity in at least one ad variation. You can only write 30 characters max. Write it like you are sitting next to a friend in informal tone. Use minimal emoji's. Use this as a template:

1. "Download your FREE [guide]!"
2. "Get started in seconds!"
3. "Hurry, offer ends soon!"
4. "Book your free consult now!"
5. "Try it 100% risk-free!"`},
			},
		},
		{
			Number:      5,
			Title:       "Landing Page Wireframe",
			Description: "Design conversion-focused layout",
			Prompts: []Prompt{
				{ID: 1, Title: "Landing Page Structure", Body: `Based on the campaign details and ad copy above, let's create a detailed landing page wireframe. Follow this specific structure:

Section 1: Hero Section (enticing offer, target audience identification, clear invitation, primary benefit statement, initial CTA)
Section 2: Unique Value Proposition (special feature highlight, unique differentiator, secondary CTA)
Section 3: Pricing Structure (clear cost breakdown, value justification, payment options, early bird offer)
Section 4: Package Details (comprehensive list of inclusions, key features, embedded CTA form)
Section 5: Urgency & Exclusivity (limited time offer, exclusive benefits, scarcity elements, countdown timer placement)
Section 6: Authority Building (about me/business section, credentials, experience highlights, trust indicators)
Section 7: Benefits Expansion (detailed benefits list, pain points addressed, success metrics, mid-page CTA)
Section 8: Offer Deep Dive (detailed offer explanation, use cases, implementation timeline, FAQ section)
Section 9: Primary CTA Section (strong call to action, value reinforcement, risk reversal, action button)
Section 10: Comprehensive Overview (detailed paragraph, full package description, support details, guarantee statement)
Section 11: Simple Process (3-step implementation plan, timeline, expected outcomes, quick-action CTA)
Section 12: Deliverables Showcase (portfolio, results gallery, deliverables preview, success stories)
Section 13: Social Proof (client reviews, testimonials, case studies, trust badges)
Section 14: Extended Social Proof (additional success stories, industry recognition, media mentions, final CTA)

Please provide specific recommendations for each section based on our campaign details, including suggested headlines, key messaging points, CTA placements and variations, visual element recommendations, content structure, and mobile optimization notes.`},
			},
		},
		{
			Number:      6,
			Title:       "Lead Qualification",
			Description: "Create qualifying questions",
			Prompts: []Prompt{
				{ID: 1, Title: "Form Questions", Body: "Let's create 3 powerful qualifying questions for a Facebook form submission that will help identify ideal prospects for this campaign."},
			},
		},
		{
			Number:      7,
			Title:       "Messenger Campaign",
			Description: "Design conversation flow",
			Prompts: []Prompt{
				{ID: 1, Title: "Chat Flow", Body: `Let's create a Messenger campaign that builds rapport and guides prospects to your CTA. Include:

- Initial greeting and hook
- Key qualifying questions
- Value-building responses
- Natural conversation transitions
- Strategic CTA placement (specify your CTA: "buy now" or "book a call")
- Follow-up handling

Focus on creating a conversational tone while qualifying and educating prospects.`},
			},
		},
		{
			Number:      8,
			Title:       "Survey Experience",
			Description: "Create engaging survey flow",
			Prompts: []Prompt{
				{ID: 1, Title: "Survey Questions", Body: `Let's create a 6-8 question survey that both engages and qualifies prospects. The survey should:

- Be fun and interactive
- Qualify prospects effectively
- Educate about your offer
- Build interest and desire
- Lead naturally to your CTA

Please provide:
- Engaging questions
- Multiple choice options
- Logic for question flow
- Educational elements
- Final CTA integration`},
			},
		},
	},
	Instruction: metaAdsInstruction,
}

func metaAdsInstruction(step Step, promptID int, projectContext string) string {
	return fmt.Sprintf(`You are a Meta Ads expert working on %s, %s - %s.
%s

Guidelines:
1. Keep responses focused and practical
2. Use bullet points for clarity
3. Include specific examples
4. Follow Meta Ads best practices
5. Maintain professional tone

When responding to campaign objective selection:
- Acknowledge the chosen objective
- Explain why it's suitable for their goals
- Provide specific recommendations for that objective
- Suggest best practices for implementation

Format your response with clear sections and bullet points.`,
		projectContext, step.Title, step.Description, metaAdsStepGuidance[step.Number])
}
