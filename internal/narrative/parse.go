package narrative

import (
	"strings"
)

// ParseChatResponse splits a raw completion into the main answer and the
// follow-up suggestions. Text before the FOLLOW_UP_QUESTIONS: marker is the
// answer; after it, only lines numbered 1.-3. survive, with the numeral and
// any surrounding brackets stripped, capped at three entries. Without the
// marker the whole response is the answer and the rating tier picks a fixed
// suggestion triple.
func ParseChatResponse(raw string, rating int) (string, []string) {
	if !strings.Contains(raw, followUpMarker) {
		return strings.TrimSpace(raw), defaultSuggestions(rating)
	}

	parts := strings.SplitN(raw, followUpMarker, 2)
	main := strings.TrimSpace(parts[0])

	suggestions := make([]string, 0, 3)
	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "1.") && !strings.HasPrefix(line, "2.") && !strings.HasPrefix(line, "3.") {
			continue
		}
		question := strings.TrimSpace(strings.SplitN(line, ".", 2)[1])
		if strings.HasPrefix(question, "[") && strings.HasSuffix(question, "]") {
			question = question[1 : len(question)-1]
		}
		suggestions = append(suggestions, question)
		if len(suggestions) == 3 {
			break
		}
	}

	return main, suggestions
}
