package catalog

import (
	"fmt"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

func init() {
	register(visualBrandFlow)
}

// visualBrandFlow walks a client through defining a complete visual brand
// identity and finishes with a structured identity report.
var visualBrandFlow = Flow{
	Name:      models.FlowVisualBrand,
	Title:     "Visual Brand Identity",
	Mode:      AdvanceLinear,
	Streaming: true,
	Welcome: "Welcome to your Visual Brand Identity creation! Let's start with your brand aesthetic. " +
		"What is the core emotion or feeling your brand should evoke? Consider: luxurious, edgy, soft, bold, inviting, warm, cool, minimal, maximal, nostalgic, futuristic, aspirational, intimate, powerful, high-end.",
	Steps: []Step{
		{
			Number:      1,
			Title:       "Brand Aesthetic",
			Description: "Define core visual elements and emotions",
			Prompts: []Prompt{
				{ID: 1, Title: "Core Emotion", Body: "What is the core emotion or feeling your brand should evoke? Consider: luxurious, edgy, soft, bold, inviting, warm, cool, minimal, maximal, nostalgic, futuristic, aspirational, intimate, powerful, high-end."},
				{ID: 2, Title: "Color Palette", Body: "What are your brand's primary colors? Any secondary/accent colors? Should they be muted, pastel, vibrant, rich, or desaturated?"},
				{ID: 3, Title: "Contrast & Tone", Body: "What level of contrast do you prefer (Low, medium, high)? Do you prefer warm, cool, or neutral undertones?"},
			},
		},
		{
			Number:      2,
			Title:       "Campaign Details",
			Description: "Define campaign purpose and context",
			Prompts: []Prompt{
				{ID: 1, Title: "Campaign Purpose", Body: "What is the purpose of this specific shoot or visual campaign? (e.g., brand awareness, new product launch, rebranding, seasonal campaign, social media content, website refresh, ad campaign, personal branding, event promotion)"},
				{ID: 2, Title: "Special Occasions", Body: "Does this campaign tie into a special occasion? (e.g., wedding, anniversary, birthday, engagement, holiday, graduation, maternity, baby shower, corporate event, product release, milestone celebration, editorial spread)"},
				{ID: 3, Title: "Seasonal Theme", Body: "Is there a seasonal or holiday theme to consider? (Spring, Summer, Fall, Winter, Christmas, Valentine's, Halloween, New Year, etc.)"},
				{ID: 4, Title: "Key Messages", Body: "Are there any key messages, slogans, or taglines that need to be visually represented?"},
				{ID: 5, Title: "Usage Context", Body: "Where will these images be used? (Website, social media, print ads, billboards, email marketing, product packaging, online store, PR features)"},
			},
		},
		{
			Number:      3,
			Title:       "Visual Style",
			Description: "Define photography and visual approach",
			Prompts: []Prompt{
				{ID: 1, Title: "Overall Style", Body: "What overall style best represents this campaign? (e.g., cinematic, documentary, editorial, fine art, high fashion, lifestyle, surreal, futuristic, vintage, grunge, pop art, black & white, hyper-realistic, minimal, boho, moody)"},
				{ID: 2, Title: "Image Feel", Body: "Should images feel polished and studio-like or raw and natural? Do you prefer a high-saturation, crisp look or a soft, muted aesthetic?"},
				{ID: 3, Title: "Temporal Style", Body: "Should images have a modern, timeless, or nostalgic feel?"},
			},
		},
		{
			Number:      4,
			Title:       "Inspiration",
			Description: "Reference campaigns and artistic direction",
			Prompts: []Prompt{
				{ID: 1, Title: "Brand References", Body: "Any specific past campaigns to reference for inspiration? (e.g., Chanel's soft elegance, Nike's bold and energetic lifestyle, Apple's sleek minimalism, Louis Vuitton's artistic storytelling)"},
				{ID: 2, Title: "Mood Board", Body: "Please share links or descriptions of images that inspire the desired look and feel for this campaign."},
			},
		},
		{
			Number:      5,
			Title:       "Business Goals",
			Description: "Align visuals with marketing objectives",
			Prompts: []Prompt{
				{ID: 1, Title: "Brand Category", Body: "What kind of business/brand is this for? (Luxury, corporate, beauty, fashion, fitness, wellness, photography, real estate, coaching, hospitality, retail, entertainment, lifestyle, tech)"},
				{ID: 2, Title: "Product Focus", Body: "What product/service are we selling or promoting? (e.g., high-end portraits, digital products, fashion items, personal branding services, wedding photography, online courses)"},
				{ID: 3, Title: "Brand Values", Body: "What key brand values need to be represented in the imagery? (e.g., empowerment, authenticity, exclusivity, trust, fun, adventure, professionalism, sustainability, innovation)"},
				{ID: 4, Title: "Target Audience", Body: "Who is the target audience? (e.g., young professionals, luxury clientele, women in business, engaged couples, fitness enthusiasts, high-income earners, new parents, Gen Z creatives)"},
			},
		},
		{
			Number:      6,
			Title:       "Composition & Framing",
			Description: "Define photography composition approach",
			Prompts: []Prompt{
				{ID: 1, Title: "Focal Length", Body: "What is your preferred focal length or lens style? (Wide-angle, macro, portrait, telephoto, fisheye, soft-focus, tilt-shift, etc.)"},
				{ID: 2, Title: "Spacing", Body: "How much negative space do you prefer? (Tight, medium, or wide framing?)"},
				{ID: 3, Title: "Composition Style", Body: "Do you prefer symmetrical compositions, rule of thirds, or dynamic angles?"},
				{ID: 4, Title: "Movement", Body: "Should images have intentional blurs, movement, or frozen action?"},
			},
		},
		{
			Number:      7,
			Title:       "Lighting & Shadow",
			Description: "Define lighting and atmosphere preferences",
			Prompts: []Prompt{
				{ID: 1, Title: "Lighting Style", Body: "Should lighting be soft and diffused, moody and dramatic, or bright and even?"},
				{ID: 2, Title: "Location", Body: "Indoor or outdoor? (If both, what percentage of each?)"},
				{ID: 3, Title: "Time of Day", Body: "Preferred time of day for outdoor shoots? (Golden hour, midday, twilight, night-time, artificial studio lighting, etc.)"},
				{ID: 4, Title: "Shadow Style", Body: "Should shadows be deep and rich, soft and minimal, or high contrast?"},
			},
		},
		{
			Number:      8,
			Title:       "Subject & Models",
			Description: "Define model characteristics and expressions",
			Prompts: []Prompt{
				{ID: 1, Title: "Demographics", Body: "What age range, gender, and skin tones should the models represent?"},
				{ID: 2, Title: "Physical Attributes", Body: "Do you want body diversity or specific shapes/sizes? Preferred hair colors and styles?"},
				{ID: 3, Title: "Expressions", Body: "What expressions should models convey? (Confidence, joy, mystery, elegance, etc.)"},
				{ID: 4, Title: "Interaction", Body: "Should models be interacting with each other, looking at the camera, or engaged in an activity?"},
			},
		},
		{
			Number:      9,
			Title:       "Styling & Wardrobe",
			Description: "Define clothing and accessory preferences",
			Prompts: []Prompt{
				{ID: 1, Title: "Clothing Style", Body: "What clothing styles align with your brand? (Casual, formal, avant-garde, minimalistic, etc.)"},
				{ID: 2, Title: "Fabrics", Body: "Preferred fabric types? (Matte vs. shiny, structured vs. flowy, textures, patterns, etc.)"},
				{ID: 3, Title: "Accessories", Body: "Any must-have accessories or signature items or in depth descriptions?"},
				{ID: 4, Title: "Styling Approach", Body: "Should styling be minimalistic or layered and detailed?"},
			},
		},
		{
			Number:      10,
			Title:       "Scene Setting",
			Description: "Define background and environment",
			Prompts: []Prompt{
				{ID: 1, Title: "Background Style", Body: "Should backgrounds be clean and simple, natural, or busy and dynamic?"},
				{ID: 2, Title: "Location", Body: "Preferred locations or set styles? (Urban, studio, nature, historic, futuristic, dreamlike, etc.)"},
				{ID: 3, Title: "Props", Body: "Do you want props included? If so, what kind?"},
				{ID: 4, Title: "Depth of Field", Body: "Should the background be blurred or sharp? (Shallow vs. deep depth of field?)"},
			},
		},
		{
			Number:      11,
			Title:       "Post-Processing",
			Description: "Define editing and retouching approach",
			Prompts: []Prompt{
				{ID: 1, Title: "Image Look", Body: "Should images have a clean and polished or textured and grainy look?"},
				{ID: 2, Title: "Retouching Level", Body: "Preferred level of retouching? (None, light, moderate, heavy?)"},
				{ID: 3, Title: "Skin Treatment", Body: "Should skin be flawless and airbrushed, natural with texture, or somewhere in between?"},
				{ID: 4, Title: "Color Effects", Body: "Any signature color grading or effects to apply? (Including film grain, soft focus, vintage effects)"},
			},
		},
		{
			Number:      12,
			Title:       "Brand Integration",
			Description: "Define visual branding elements",
			Prompts: []Prompt{
				{ID: 1, Title: "Text Integration", Body: "Should visuals include text overlays or remain clean?"},
				{ID: 2, Title: "Typography", Body: "If text is included, what typefaces and placements do you prefer?"},
				{ID: 3, Title: "Format Adaptability", Body: "Should the imagery be adaptable for multiple formats? (Website, social media, print, billboards, etc.)"},
				{ID: 4, Title: "Logo Placement", Body: "How should logos or watermarks be incorporated (if at all)?"},
			},
		},
	},
	Instruction: visualBrandInstruction,
	Report:      visualBrandReport,
	Image:       visualBrandImagePrompt,
}

func visualBrandInstruction(step Step, promptID int, projectContext string) string {
	return fmt.Sprintf(`You are a visual branding expert working on %s, %s - %s, prompt %d.
Provide a brief, focused response to the user's answer about their visual brand.

Guidelines:
1. Keep responses very brief (max 100 words)
2. Acknowledge their answer
3. Provide 1-2 quick suggestions or confirmations
4. End with a transition to the next question
5. Focus on visual design aspects specific to the current step

Format your response in 2-3 short bullet points.`, projectContext, step.Title, step.Description, promptID)
}

func visualBrandReport(projectContext string) string {
	return fmt.Sprintf(`As a visual branding expert, analyze all previous responses and create a comprehensive visual brand identity report for %s.

Create a structured report with these sections:

1. Executive Summary (Brief overview of brand identity)
2. Core Visual Elements
   - Color Palette (with hex codes)
   - Typography Recommendations
   - Design Elements
3. Brand Aesthetic Guidelines
   - Photography Style
   - Composition Preferences
   - Lighting and Mood
4. Implementation Guide
   - Digital Applications
   - Print Applications
   - Social Media Guidelines
5. Technical Specifications
   - Color Codes
   - Font Specifications
   - Spacing Rules

Format each section with clear headings and bullet points. Include specific, actionable recommendations.
Keep the tone professional but accessible.`, projectContext)
}

func visualBrandImagePrompt(report string) string {
	return fmt.Sprintf(`You are a visual branding expert. Based on the following brand identity report:

%s

Your task is to create a concise, detailed prompt for generating marketing images. The prompt should be formatted as a clear paragraph, optimized for image generation, and under 600 characters. Focus on visual elements, style, mood, and technical specifications while maintaining brand consistency.`, report)
}
