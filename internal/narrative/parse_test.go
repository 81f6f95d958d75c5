package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChatResponse_WithMarker(t *testing.T) {
	raw := `Solar panels reduce grid dependency and improve your energy score.

FOLLOW_UP_QUESTIONS:
1. [How much do solar panels cost?]
2. [What incentives are available?]
3. [How long is the payback period?]`

	response, suggestions := ParseChatResponse(raw, 3)
	assert.Equal(t, "Solar panels reduce grid dependency and improve your energy score.", response)
	assert.Equal(t, []string{
		"How much do solar panels cost?",
		"What incentives are available?",
		"How long is the payback period?",
	}, suggestions)
}

func TestParseChatResponse_WithoutBrackets(t *testing.T) {
	raw := "Answer.\nFOLLOW_UP_QUESTIONS:\n1. Plain question one\n2. Plain question two"

	response, suggestions := ParseChatResponse(raw, 3)
	assert.Equal(t, "Answer.", response)
	assert.Equal(t, []string{"Plain question one", "Plain question two"}, suggestions)
}

func TestParseChatResponse_IgnoresUnnumberedLines(t *testing.T) {
	raw := "Answer.\nFOLLOW_UP_QUESTIONS:\nHere are some ideas:\n1. Keep me\n- drop me\n2. Keep me too\n4. Drop me as well"

	_, suggestions := ParseChatResponse(raw, 1)
	assert.Equal(t, []string{"Keep me", "Keep me too"}, suggestions)
}

func TestParseChatResponse_NoMarkerUsesRatingTier(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		first  string
	}{
		{"low tier", 1, "How can I improve my energy efficiency score?"},
		{"low tier upper bound", 2, "How can I improve my energy efficiency score?"},
		{"mid tier", 3, "How can I reach a 4-star rating?"},
		{"high tier", 4, "How can I maintain this high rating over time?"},
		{"top rating", 5, "How can I maintain this high rating over time?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, suggestions := ParseChatResponse("  Just an answer.  ", tt.rating)
			assert.Equal(t, "Just an answer.", response)
			assert.Len(t, suggestions, 3)
			assert.Equal(t, tt.first, suggestions[0])
		})
	}
}

func TestParseChatResponse_CapsAtThree(t *testing.T) {
	raw := "A.\nFOLLOW_UP_QUESTIONS:\n1. one\n2. two\n3. three\n3. extra"

	_, suggestions := ParseChatResponse(raw, 3)
	assert.Equal(t, []string{"one", "two", "three"}, suggestions)
}
