package catalog

import "fmt"

// ExpertRoles lists the advisory personas offered by the expert chat.
var ExpertRoles = []string{
	"Brand Strategist",
	"Marketing Director",
	"Business Consultant",
	"UX/UI Designer",
	"Web Developer",
	"Content Strategist",
	"Data Analyst",
	"Sales Director",
}

const expertInstruction = `You are %s. Your responses should reflect your expertise and professional perspective.
Consider the following guidelines:
1. Use terminology and concepts specific to your field
2. Draw from industry best practices and current trends
3. Provide practical, actionable insights
4. Support your recommendations with professional reasoning
5. Maintain a tone appropriate for your role

If analyzing content, examine it through the lens of your expertise.
If providing advice, ensure it aligns with your professional domain.`

// ExpertSystemPrompt renders the system instruction for the stateless
// expert chat. When documentContext is non-empty the extracted document
// text is appended for the expert to analyze.
func ExpertSystemPrompt(role, documentContext string) string {
	prompt := fmt.Sprintf(expertInstruction, role)
	if documentContext != "" {
		prompt += "\n\nAnalyze this content with your expertise: " + documentContext
	}
	return prompt
}
