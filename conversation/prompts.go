package conversation

import "github.com/casualjim/arggpt/messages"

const (
	noAssumptionsPrompt = "Don't make assumptions about what values to plug into functions. Stop the conversation If a user request is ambiguous."
	detailedPrompt      = "Be detailed with how you calculate a result"
	functionalPrompt    = "If the user ask things outside of the functions provided, you can say something like: I don't understand"
	summarizePrompt     = "Do not respond to the user, summarize the assistant, ideally one sentence, fewer than 12 words, use the third person, and do not use the word 'I'"
)

func SystemPrompt(content string) []messages.Message {
	return []messages.Message{messages.SystemMessage{Content: content}}
}

func UserPrompt(content string) []messages.Message {
	return []messages.Message{messages.UserMessage{Content: content}}
}

// RequestDetailedResult asks the model not to guess arguments and to show its work.
func RequestDetailedResult() []messages.Message {
	return append(SystemPrompt(noAssumptionsPrompt), SystemPrompt(detailedPrompt)...)
}

// RemainFunctional keeps the model to the functions it was given.
func RemainFunctional() []messages.Message {
	return SystemPrompt(functionalPrompt)
}

// Summarize asks for a short third person summary of the conversation.
func Summarize() []messages.Message {
	return SystemPrompt(summarizePrompt)
}

// Seed returns the opening messages of a conversation about prompt.
func Seed(prompt string) []messages.Message {
	thread := RequestDetailedResult()
	thread = append(thread, RemainFunctional()...)
	return append(thread, UserPrompt(prompt)...)
}
