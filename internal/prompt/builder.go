package prompt

import (
	"fmt"

	"websummary/internal/llm"
	"websummary/internal/page"
)

// DefaultSystemPrompt asks for a short markdown summary that skips navigation text.
const DefaultSystemPrompt = "You are an assistant that analyzes the contents of a website " +
	"and provides a short summary, ignoring text that might be navigation related. " +
	"Respond in markdown."

const userPromptFormat = "You are looking at a website titled %s\n" +
	"The contents of this website are as follows; " +
	"please provide a short summary of this website in markdown. " +
	"If it includes news or announcements, then summarize these too.\n\n" +
	"%s"

// Builder turns a Document into the message pair sent to the model.
type Builder struct {
	systemPrompt string
}

// NewBuilder creates a Builder. An empty systemPrompt selects DefaultSystemPrompt.
func NewBuilder(systemPrompt string) *Builder {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Builder{systemPrompt: systemPrompt}
}

// SystemPrompt returns the instruction sent as the system message.
func (b *Builder) SystemPrompt() string {
	return b.systemPrompt
}

// UserPrompt embeds the document title and the full text, untruncated.
func UserPrompt(doc page.Document) string {
	return fmt.Sprintf(userPromptFormat, doc.Title, doc.Text)
}

// BuildMessages returns exactly two messages: the system instruction and the user prompt.
func (b *Builder) BuildMessages(doc page.Document) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: b.systemPrompt},
		{Role: llm.RoleUser, Content: UserPrompt(doc)},
	}
}
