// webcopy/utils/types/copy.go
package types

import "google.golang.org/genai"

// GenerationRequest is built once per page and discarded after the call.
type GenerationRequest struct {
	PageName string `json:"page_name"`
	Prompt   string `json:"prompt"`
}

// GenerationResult pairs the raw service response with the text pulled from it.
// Text is "" when no part of the response carries text.
type GenerationResult struct {
	Raw  *genai.GenerateContentResponse `json:"-"`
	Text string                         `json:"text"`
}
