package translator

import (
	"fmt"
	"strings"

	"lingosub/internal/language"
)

const systemPrompt = "You are an expert translator who speaks every language and loves translating and helping others."

// userPrompt frames a payload of blank-line separated cues for translation
// into the named language.
func userPrompt(targetLanguage, payload string) string {
	name := language.DisplayName(strings.TrimSpace(targetLanguage))
	return fmt.Sprintf(
		"Here is a list of dialog lines from an SRT file. Translate them into %s. "+
			"In the input, every empty line marks the start of a different frame; keep exactly the same frames "+
			"in the same order, separated by a single empty line. "+
			"Reply with the raw translation only, with no comment before or in between.\n\n%s",
		name,
		payload,
	)
}
