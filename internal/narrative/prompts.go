package narrative

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Narrative section identifiers, also the wire values of section_type.
const (
	SectionStrengths    = "strengths"
	SectionImprovements = "improvements"
	SectionBenefits     = "benefits"
	SectionNextSteps    = "next_steps"
)

// followUpMarker delimits the suggestion block a chat prompt asks the model
// to append.
const followUpMarker = "FOLLOW_UP_QUESTIONS:"

// buildingDetails renders the input record as prompt bullet lines, one per
// field, in sorted field order so prompts are deterministic.
func buildingDetails(inputs map[string]interface{}) string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %s", cleanFieldName(name), formatValue(inputs[name])))
	}
	return strings.Join(lines, "\n")
}

// cleanFieldName turns Snake_Case schema names into title-cased prose,
// e.g. "Energy_Efficiency" -> "Energy Efficiency".
func cleanFieldName(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func assessmentPrompt(inputs map[string]interface{}, rating int) string {
	return fmt.Sprintf(`You are GreenyBot, an expert AI assistant specializing in GRIHA (Green Rating for Integrated Habitat Assessment) green building certification in India.

BUILDING ASSESSMENT RESULTS:
- Predicted GRIHA Rating: %d Stars (out of 5)
- Building Details:
%s

GRIHA RATING CONTEXT:
- 1 Star: Basic compliance with minimal green features
- 2 Stars: Good performance with some green initiatives
- 3 Stars: Very good performance with multiple sustainability measures
- 4 Stars: Excellent performance with comprehensive green features
- 5 Stars: Outstanding performance, benchmark for sustainable buildings

Please provide ONLY the "Why This Rating?" section. Explain why the building received this specific star rating based on the input parameters. Reference specific GRIHA criteria and requirements. Keep it concise and informative.

Format your response as plain text without any markdown formatting, emojis, or special characters.`,
		rating, buildingDetails(inputs))
}

func sectionPrompt(inputs map[string]interface{}, rating int, sectionType string) (string, bool) {
	details := buildingDetails(inputs)

	switch sectionType {
	case SectionStrengths:
		return fmt.Sprintf(`Based on the building details and %d star GRIHA rating, list 3-4 key strengths of this building design. Focus on what the building does well in terms of sustainability and green features. Be specific and reference GRIHA criteria.

Building Details:
%s

Provide only the strengths in a clear, numbered list format.`, rating, details), true

	case SectionImprovements:
		return fmt.Sprintf(`Based on the building details and %d star GRIHA rating, provide 4-5 specific, actionable recommendations to improve the GRIHA rating. Focus on:
- Energy efficiency measures
- Water conservation strategies
- Sustainable materials and resources
- Indoor environmental quality improvements
- Innovation in design processes

Building Details:
%s

Provide practical recommendations that can be implemented. Use numbered list format.`, rating, details), true

	case SectionBenefits:
		return fmt.Sprintf(`Explain the benefits of implementing green building improvements for this %d star rated building. Cover:
- Environmental impact reduction
- Cost savings potential
- Health and comfort improvements
- Certification advantages
- Long-term value addition

Building Details:
%s

Provide clear, concise and actionable benefits.`, rating, details), true

	case SectionNextSteps:
		return fmt.Sprintf(`Provide 3-4 immediate actionable steps that the building owner can take to improve their %d star GRIHA rating. Make these steps practical, prioritized, and feasible.

Building Details:
%s

List the steps in order of priority.`, rating, details), true
	}

	return "", false
}

func chatPrompt(inputs map[string]interface{}, rating int, question string) string {
	return fmt.Sprintf(`You are GreenyBot, an expert AI assistant specializing in GRIHA green building certification in India.

CONTEXT:
- Building GRIHA Rating: %d Stars
- Building Details:
%s

USER QUESTION: %s

Your Task:
- Act as a GRIHA expert and provide accurate, clear, and practical information about the GRIHA rating system, its criteria, benefits, processes, and sustainability measures.
- Only use the building-specific context (rating or details) if the user explicitly asks about that building; otherwise provide general GRIHA-related information.
- Keep responses concise and practical.

After your main response, suggest 3 relevant follow-up questions that the user might want to ask, formatted as:
%s
1. [Question 1]
2. [Question 2]
3. [Question 3]`,
		rating, buildingDetails(inputs), question, followUpMarker)
}
