package flow

import (
	"fmt"

	"github.com/openai/openai-go"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

const refineSystemPrompt = "You are a document improvement specialist. Update the document based on new information while maintaining its structure and style, referencing prior changes where relevant."

const refineFreshSystemPrompt = "You are a document improvement specialist. Draft a well-structured document from the information provided."

// BuildRefineMessages constructs the gateway request for one refinement
// submission: the merge instruction, the previous canonical document when
// one exists, the new information, and the prior turn history so later
// merges can reference earlier edits. With no previous document and no
// history the instruction drops the document reference entirely.
func BuildRefineMessages(prevDoc, newInfo string, history []models.Turn) []openai.ChatCompletionMessageParamUnion {
	fresh := prevDoc == "" && len(history) == 0

	var messages []openai.ChatCompletionMessageParamUnion
	if fresh {
		messages = append(messages, openai.SystemMessage(refineFreshSystemPrompt))
	} else {
		messages = append(messages, openai.SystemMessage(refineSystemPrompt))
	}

	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
	}

	var request string
	switch {
	case fresh:
		request = fmt.Sprintf("New Information: %s\n\nPlease write a document from this information.", newInfo)
	case prevDoc == "":
		request = fmt.Sprintf("New Information: %s\n\nPlease continue the document work above, incorporating this new information.", newInfo)
	default:
		request = fmt.Sprintf("Original Document: %s\n\nNew Information: %s\n\nPlease rewrite and update the document incorporating this new information.", prevDoc, newInfo)
	}
	messages = append(messages, openai.UserMessage(request))
	return messages
}
