// Package tripagent assembles the travel-planning agent: its system prompts
// and the toolbox of search tools the model may call.
package tripagent

import (
	"fmt"
	"time"
)

const toolsPromptTemplate = `You are a smart travel agency. Use the tools to look up information.
You are allowed to make multiple calls (either together or in sequence).
Only look up information when you are sure of what you want.
The current year is %d.
If you need to look up some information before asking a follow up question, you are allowed to do that!
I want to have in your output links to hotels websites and flights websites (if possible).
I want to have as well the logo of the hotel and the logo of the airline company (if possible).
In your output always include the price of the flight and the price of the hotel and the currency as well (if possible).
for example for hotels-
Rate: $581 per night
Total: $3,488`

// EmailSystemPrompt instructs the model to turn an itinerary into an HTML
// email body.
const EmailSystemPrompt = `Your task is to convert structured markdown-like text into a valid HTML email body.

- Do not include a ` + "```html" + ` preamble in your response.
- The output should be in proper HTML format, ready to be used as the body of an email.`

// ToolsSystemPrompt returns the travel agent system prompt anchored to the
// current year so relative dates resolve correctly.
func ToolsSystemPrompt(now time.Time) string {
	return fmt.Sprintf(toolsPromptTemplate, now.Year())
}
