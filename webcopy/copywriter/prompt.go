package copywriter

import (
	"fmt"

	"webcopy/webcopy/utils/types"
)

// BuildPrompt renders the copy prompt for one page. draft is the text generated so far.
func BuildPrompt(draft, pageName string) string {
	return fmt.Sprintf(
		"Generate detailed and engaging copy for a webpage titled '%s'. "+
			"Here is the text generated so far:\n\n"+
			"%s\n",
		pageName, draft)
}

// NewRequest builds the request for pageName. No context is carried between pages,
// so the draft is always empty.
func NewRequest(pageName string) types.GenerationRequest {
	return types.GenerationRequest{PageName: pageName, Prompt: BuildPrompt("", pageName)}
}
