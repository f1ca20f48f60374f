package orchestrator

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/musebot/internal/core"
)

const defaultPersona = "You are %s, a friendly and helpful personal assistant. " +
	"Answer clearly and concisely, use the provided context when it is relevant, " +
	"and say so plainly when you do not know something."

// loadPersona reads the persona preamble from disk, falling back to the
// built-in one when the file is missing or empty.
func loadPersona(path, assistantName string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Sprintf(defaultPersona, assistantName)
	}
	return strings.TrimSpace(string(data))
}

// renderExcerpt flattens exchanges into alternating speaker lines.
func renderExcerpt(assistantName string, exchanges []core.Exchange) string {
	var b strings.Builder
	for _, ex := range exchanges {
		b.WriteString("User: ")
		b.WriteString(ex.Prompt)
		b.WriteString("\n")
		b.WriteString(assistantName)
		b.WriteString(": ")
		b.WriteString(ex.Response)
		b.WriteString("\n")
	}
	return b.String()
}

type promptParts struct {
	liveDigest     string
	persona        string
	centralExcerpt []core.Exchange
	currentExcerpt []core.Exchange
	scrapedURL     string
	scrapedText    string
	message        string
}

// assemblePrompt joins the context blocks in their fixed order and ends
// with the completion marker the model continues from. When the result
// exceeds the token budget, the oldest current-chat exchanges are
// dropped first until it fits.
func (o *Orchestrator) assemblePrompt(parts promptParts) string {
	render := func(current []core.Exchange) string {
		var b strings.Builder

		if parts.liveDigest != "" {
			b.WriteString(parts.liveDigest)
			b.WriteString("\n")
		}

		b.WriteString(parts.persona)
		b.WriteString("\n\n")

		if len(parts.centralExcerpt) > 0 {
			b.WriteString("Previous conversations context:\n")
			b.WriteString(renderExcerpt(o.cfg.AssistantName, parts.centralExcerpt))
			b.WriteString("\n")
		}

		if len(current) > 0 {
			b.WriteString("Current conversation:\n")
			b.WriteString(renderExcerpt(o.cfg.AssistantName, current))
			b.WriteString("\n")
		}

		if parts.scrapedText != "" {
			fmt.Fprintf(&b, "Web content from %s:\n%s\n\n", parts.scrapedURL, parts.scrapedText)
		}

		fmt.Fprintf(&b, "User: %s\n%s:", parts.message, o.cfg.AssistantName)
		return b.String()
	}

	current := parts.currentExcerpt
	prompt := render(current)
	for o.budget.over(prompt) && len(current) > 0 {
		current = current[1:]
		prompt = render(current)
	}
	return prompt
}

// promptBudget bounds assembled prompts by token count. The counter is
// swappable so tests do not depend on the tiktoken vocabulary download.
type promptBudget struct {
	limit int
	count func(string) int

	once sync.Once
	enc  *tiktoken.Tiktoken
}

func newPromptBudget(limit int) *promptBudget {
	b := &promptBudget{limit: limit}
	b.count = b.tokenCount
	return b
}

func (b *promptBudget) over(s string) bool {
	if b.limit <= 0 {
		return false
	}
	return b.count(s) > b.limit
}

func (b *promptBudget) tokenCount(s string) int {
	b.once.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			b.enc = enc
		}
	})
	if b.enc == nil {
		// Offline approximation: about four characters per token.
		return len(s) / 4
	}
	return len(b.enc.Encode(s, nil, nil))
}
