package catalog

import (
	"fmt"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

func init() {
	register(fullServiceFlow)
}

// fullServiceFlow is the five-step business development planner. It runs
// linear-exhaustion advancement and uses non-streamed gateway responses.
var fullServiceFlow = Flow{
	Name:      models.FlowFullService,
	Title:     "Full Service Planner",
	Mode:      AdvanceLinear,
	Streaming: false,
	Welcome:   "Welcome! Let's build your business strategy step by step.",
	Steps: []Step{
		{
			Number:      1,
			Title:       "Market Research",
			Description: "Analyze your market from trends to differentiation",
			Prompts: []Prompt{
				{
					ID:    1,
					Title: "Comprehensive Market Analysis",
					Body: `Conduct a comprehensive market analysis for [niche] covering the following areas:

1. Current Trends Analysis
- Identify and analyze current high-interest trends in the market
- Evaluate which trends can be addressed through courses/services
- Provide trend lifecycle analysis

2. Market Opportunities
- Map out key opportunities based on identified trends
- Create popularity and growth rate charts for each opportunity
- Assess monetization potential for each opportunity

3. Total Addressable Market (TAM)
- Global market size with segmentation breakdown
- US market size per segment
- Growth projections for each segment

4. Customer Pain Points
- Identify major pain points in the market
- Rank pain points by urgency and impact
- Map pain points to customer segments

5. Customer Spending Analysis
- Analyze disposable income by segment
- Map spending patterns to pain points
- Identify price sensitivity factors

6. Market Reach Strategy
- Top 3 channels for reaching each segment
- Detailed strategy for each channel

7. Competitive Landscape
- Analysis of top 3 competitors with pros and cons
- Market share and positioning

8. SWOT Analysis
- Complete SWOT analysis of the market
- Strategic positioning recommendations

9. Differentiation Strategy
- Key differentiating factors
- Unique value proposition
- Market positioning strategy

Please provide detailed data, charts, and sources for all analyses. Format the response with clear sections, subsections, and visual elements where appropriate.`,
				},
			},
		},
		{
			Number:      2,
			Title:       "Niche Development",
			Description: "Turn market findings into a defensible niche",
			Prompts: []Prompt{
				{
					ID:    1,
					Title: "Strategic Niche Analysis",
					Body: `Building on our market research findings, conduct a comprehensive niche development analysis covering:

1. Core Niche Foundation
- Identify and analyze the fundamental human needs addressed
- Map core niche to established market segments
- Evaluate alignment with market research findings

2. Niche Equation Analysis
- Demographics: detailed demographic breakdown, psychographic profiles, behavioral patterns
- Problems: primary pain points (from market research), secondary challenges, underlying psychological factors
- Methodology: solution delivery framework, unique approach differentiators, implementation strategy
- Desired Outcomes: primary customer objectives, secondary benefits, long-term value proposition

3. Rule of Four Evaluation
- Market Size Analysis (with current data)
- Accessibility Assessment
- Financial Viability Study
- Growth Trajectory Analysis

4. Customer Deep Dive
- Hidden Needs Analysis
- Psychological Barriers
- Unstated Desires
- Common Objections
- Purchase Hesitations

5. Engagement Strategy
- Platform Preference Analysis
- Content Consumption Patterns
- Purchase Decision Journey

Please incorporate insights from the previous market research, especially regarding [specific insights from last response]. Format your response with clear sections, data visualizations, and actionable insights.`,
				},
			},
		},
		{
			Number:      3,
			Title:       "Avatar Research",
			Description: "Profile the ideal customers for your niche",
			Prompts: []Prompt{
				{
					ID:    1,
					Title: "Comprehensive Avatar Analysis",
					Body: `Building on our market research and niche development findings, create a comprehensive avatar analysis covering:

1. Core Audience Overview
- Primary demographic identification
- Challenge and goal mapping
- Interest intersection analysis
- Lifestyle and value alignment

2. Knowledge and Understanding Assessment
- Common questions and misconceptions
- Knowledge gaps analysis
- Learning preferences and patterns

3. Detailed Avatar Profiles
Create three distinct ideal customer profiles (primary, secondary, aspirational). For each profile detail background, professional status, personal situation, financial capacity, decision-making factors, goals, pain points, and investment readiness indicators.

4. Comprehensive Avatar Matrix
Create a detailed comparison matrix covering demographics (age, location, income, education, industry), psychographics (values, lifestyle, goals, learning preferences, decision-making style), and behavioral patterns (purchase behaviors, content consumption, platform preferences, time allocation).

5. Success Indicators and Risk Factors
- Ideal characteristics, readiness factors, and success predictors
- Red flags, potential challenges, and mitigation strategies

6. Strategic Avatar Implementation
- Marketing approach per avatar
- Communication strategies
- Content customization and engagement tactics

Please incorporate insights from previous market research and niche development, especially regarding [specific insights from last responses]. Create detailed tables, matrices, and visual representations where appropriate.`,
				},
			},
		},
		{
			Number:      4,
			Title:       "Offer Creation",
			Description: "Package your expertise into a premium offer",
			Prompts: []Prompt{
				{
					ID:    1,
					Title: "Comprehensive Offer Development",
					Body: `Building on our market research, niche development, and avatar analysis, create a complete offer strategy covering:

1. Core Offer Development
- Dream outcome definition and roadmap
- 20 potential topics/modules (prioritized)
- 5 key transformation steps
- Core features, benefits, and implementation timeline

2. Program Architecture
- 7 core modules with descriptions and learning objectives
- Content delivery strategy and progress tracking mechanisms

3. Value Stack Analysis
- Primary solutions offered and problem-solution mapping
- Group vs. individual delivery options
- Pain point intensity ranking and purchasing power assessment per segment

4. Pricing Strategy
- Value-based pricing model and market position analysis
- Competitor pricing comparison and premium positioning strategy
- Payment structure options

5. Offer Enhancement
- Scarcity and urgency strategies (limited-time, exclusive access, early-bird)
- Bonuses, guarantees, and risk reversal strategies

6. Scaling Framework
- Expansion opportunities, scaling methodology, and resource requirements

7. Performance Metrics
- KPI definition, ROI calculations, and customer satisfaction measures

8. Marketing Framework
- Core value propositions, pain point alignment, and call-to-action framework

9. Implementation Plan
- Launch strategy, resource allocation, and quality control measures

Please incorporate all previous insights. Create detailed matrices, charts, and frameworks. Focus on practical implementation while maintaining premium positioning.`,
				},
			},
		},
		{
			Number:      5,
			Title:       "Execution & Growth",
			Description: "Plan the launch and scale the business",
			Prompts: []Prompt{
				{
					ID:    1,
					Title: "Implementation & Scaling Strategy",
					Body: `Building on all previous analyses (market research, niche development, avatar research, and offer creation), develop a comprehensive execution and growth strategy:

1. Launch Framework
- Resource requirements: technology, team, content, marketing assets, support systems, finances
- Implementation timeline: pre-launch checklist, launch sequence, post-launch activities, key milestones, risk mitigation plans

2. Success Metrics Framework
- KPIs: customer acquisition, engagement, satisfaction, revenue, profitability, growth
- Tracking systems: data collection, analysis frameworks, reporting structures, feedback loops

3. Scaling Strategy
- Growth opportunities: market expansion, product line extensions, geographic expansion, partnerships
- Resource scaling: team expansion, technology scaling, operations growth, quality maintenance

4. Partnership & Systems Development
- Strategic partnerships: potential partners, partnership criteria, value exchange framework
- Systems architecture: operations, customer management, content delivery, analytics, automation

5. Action Plan
- Immediate steps (30 days): priority tasks, resource allocation, quick wins
- Medium-term goals (90 days): growth targets, system improvements, market penetration
- Long-term vision (12 months): market position, brand development, financial targets

6. Support & Monitoring Framework
- Ongoing support: customer success program, training systems, community building
- Success monitoring: performance metrics, quality assurance, market position

Please incorporate all insights from previous steps to create a cohesive execution strategy. Include detailed timelines, specific metrics, and clear action items.`,
				},
			},
		},
	},
	Instruction: fullServiceInstruction,
}

func fullServiceInstruction(step Step, promptID int, projectContext string) string {
	prompt := step.Prompts[0]
	if promptID >= 1 && promptID <= len(step.Prompts) {
		prompt = step.Prompts[promptID-1]
	}
	return fmt.Sprintf(`You are a senior business development expert specializing in %s.
Current step: %s
Project Context: %s

Follow this specific prompt: %s

Response Requirements:
1. Provide an extensive, detailed analysis (minimum 800 words)
2. Structure your response with clear sections:
   - Executive Summary (reference previous findings)
   - Comprehensive Analysis
   - Strategic Insights
   - Implementation Framework
   - Next Steps & Recommendations

Guidelines:
1. Reference and build upon previous findings
2. Maintain consistency with earlier identified trends and opportunities
3. Use concrete data and real-world examples
4. Format response with clear headers and subheaders
5. Include visual representations (tables, charts) in markdown
6. Provide actionable, specific recommendations
7. Consider both immediate implementation and long-term strategy
8. Maintain a professional, strategic tone

Ensure each section connects with previous findings while developing the strategy.
Format all responses with clear titles, subtitles, and proper markdown formatting.`,
		step.Title, prompt.Title, projectContext, prompt.Body)
}
