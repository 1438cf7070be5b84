package generate

import (
	"errors"
	"strings"
)

// User-facing messages for conditions caught before any network call.
const (
	MsgEmptyPrompt = "Enter a prompt to generate an image."
	MsgNoAPIKey    = "No API key configured. Set GEMINI_API_KEY and restart."
	MsgNoClient    = "Could not initialize the API client. Check your configuration and restart."
	MsgNoImage     = "The model returned no image. Try rephrasing your prompt."
)

// rule maps error-text substrings to a user-facing message. Rules are
// evaluated top to bottom; the first rule with any matching substring wins.
type rule struct {
	substrs []string
	message string
}

// classifyRules is ordered by priority, not by substring position: an error
// mentioning both an invalid key and quota is reported as an invalid key.
var classifyRules = []rule{
	{
		substrs: []string{"api key not valid", "api_key_invalid", "permission denied"},
		message: "Your API key is invalid or missing. Check your configuration.",
	},
	{
		substrs: []string{"quota", "resource_exhausted", "rate limit"},
		message: "API quota exceeded. Wait a moment and try again.",
	},
	{
		substrs: []string{"not found"},
		message: "The configured image model is unavailable.",
	},
	{
		substrs: []string{"billing"},
		message: "Image generation requires a billing-enabled API account.",
	},
}

const genericPrefix = "Image generation failed: "

// Classify turns a raw upstream error into a single user-facing message.
// Unmatched errors fall through to a generic message carrying the detail.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoImage) {
		return MsgNoImage
	}
	text := strings.ToLower(err.Error())
	for _, r := range classifyRules {
		for _, sub := range r.substrs {
			if strings.Contains(text, sub) {
				return r.message
			}
		}
	}
	return genericPrefix + err.Error()
}
