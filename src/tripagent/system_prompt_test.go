package tripagent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToolsSystemPromptIncludesCurrentYear(t *testing.T) {
	now := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	prompt := ToolsSystemPrompt(now)

	assert.Contains(t, prompt, "The current year is 2025.")
	assert.Contains(t, prompt, "smart travel agency")
	assert.Contains(t, prompt, "price of the flight")
}

func TestEmailSystemPrompt(t *testing.T) {
	assert.Contains(t, EmailSystemPrompt, "HTML email body")
}
