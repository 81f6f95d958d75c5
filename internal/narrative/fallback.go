package narrative

import "fmt"

// Canned narrative content served whenever the text-generation service is
// unavailable or errors. Keyed by rating 1-5; the tables mirror the advisory
// copy shipped with the model bundle.

var fallbackAssessments = map[int]string{
	1: `This building received a 1-star GRIHA rating, indicating basic compliance with minimal green features.
The building meets fundamental requirements but has significant room for improvement in sustainability measures.
Key areas likely lacking include energy efficiency systems, water conservation measures, and sustainable material usage.`,

	2: `This building achieved a 2-star GRIHA rating, showing good performance with some green initiatives implemented.
While better than basic compliance, there are still substantial opportunities to enhance sustainability features
such as improved energy systems, better water management, and enhanced indoor environmental quality.`,

	3: `This building earned a 3-star GRIHA rating, demonstrating very good performance with multiple sustainability measures.
The building shows commitment to green practices with adequate energy efficiency, water conservation, and
sustainable design elements, though improvements are still possible.`,

	4: `This building achieved a 4-star GRIHA rating, indicating excellent performance with comprehensive green features.
The building demonstrates strong sustainability practices across energy, water, materials, and indoor environmental
quality, with only minor enhancements needed to reach the highest rating.`,

	5: `This building earned the prestigious 5-star GRIHA rating, representing outstanding performance and serving as
a benchmark for sustainable buildings. The building excels in all sustainability criteria including energy
efficiency, water conservation, sustainable materials, and innovative design processes.`,
}

var fallbackSections = map[string]map[int]string{
	SectionStrengths: {
		1: "1. Building meets basic GRIHA compliance requirements\n2. Foundation for future green improvements established\n3. Regulatory compliance achieved\n4. Potential for significant sustainability upgrades",
		2: "1. Good foundation with some green initiatives implemented\n2. Energy efficiency measures partially in place\n3. Water conservation systems showing initial results\n4. Indoor environmental quality meets standard requirements",
		3: "1. Strong energy efficiency performance with multiple systems integrated\n2. Comprehensive water conservation and management strategies\n3. Good use of sustainable materials and resources\n4. Well-designed indoor environmental quality systems",
		4: "1. Excellent energy performance with advanced efficiency systems\n2. Outstanding water conservation and recycling measures\n3. Comprehensive sustainable materials and waste management\n4. Superior indoor environmental quality with smart controls",
		5: "1. Benchmark energy performance with innovative efficiency solutions\n2. Exemplary water conservation with zero discharge systems\n3. Outstanding sustainable materials usage and circular economy principles\n4. Exceptional indoor environmental quality with advanced monitoring",
	},
	SectionImprovements: {
		1: "1. Implement energy-efficient lighting and HVAC systems\n2. Install water conservation fixtures and rainwater harvesting\n3. Use sustainable building materials and reduce waste\n4. Improve natural lighting and ventilation systems\n5. Add renewable energy systems like solar panels",
		2: "1. Upgrade to high-performance HVAC and lighting systems\n2. Enhance water recycling and greywater treatment\n3. Increase use of recycled and locally sourced materials\n4. Improve building envelope performance\n5. Implement smart building management systems",
		3: "1. Optimize energy systems with advanced controls and monitoring\n2. Implement advanced water treatment and reuse systems\n3. Enhance material lifecycle assessment and optimization\n4. Improve indoor air quality monitoring and control\n5. Add innovative sustainable technologies",
		4: "1. Implement cutting-edge energy storage and smart grid integration\n2. Achieve water positive status with advanced treatment systems\n3. Optimize material selection for minimal environmental impact\n4. Enhance occupant comfort with personalized environmental controls\n5. Integrate IoT and AI for building optimization",
		5: "1. Maintain peak performance through regular monitoring and optimization\n2. Share best practices and mentor other projects\n3. Implement emerging technologies for continuous improvement\n4. Enhance occupant engagement and education programs\n5. Pursue additional certifications and recognition",
	},
	SectionBenefits: {
		1: "Implementing green improvements will significantly reduce operating costs, improve occupant health and comfort, increase property value, and position the building for future regulatory compliance.",
		2: "Green building improvements will deliver substantial energy and water cost savings, enhanced indoor environmental quality, increased marketability, and improved organizational sustainability credentials.",
		3: "Further sustainability enhancements will optimize operational efficiency, maximize occupant productivity and well-being, strengthen market position, and contribute to climate action goals.",
		4: "Advanced green building features will minimize environmental impact, maximize cost savings, ensure optimal occupant experience, and establish the building as a sustainability leader.",
		5: "Maintaining this exceptional performance ensures continued leadership in sustainability, maximizes all benefits, and creates lasting positive impact on the environment and community.",
	},
	SectionNextSteps: {
		1: "1. Conduct detailed energy audit to identify improvement opportunities\n2. Install basic water conservation fixtures and LED lighting\n3. Develop waste management and recycling programs\n4. Begin planning for renewable energy installation",
		2: "1. Upgrade HVAC systems with high-efficiency equipment\n2. Implement comprehensive water management strategies\n3. Source sustainable materials for upcoming renovations\n4. Install building management system for monitoring and control",
		3: "1. Optimize existing systems through advanced controls and monitoring\n2. Implement water recycling and treatment systems\n3. Conduct material lifecycle assessments for future projects\n4. Enhance indoor environmental quality monitoring",
		4: "1. Integrate smart building technologies and IoT systems\n2. Implement advanced water treatment for reuse applications\n3. Optimize material selection processes with sustainability criteria\n4. Pursue additional green building certifications",
		5: "1. Maintain performance through regular system optimization\n2. Document and share best practices with industry\n3. Explore emerging technologies for continuous improvement\n4. Engage occupants in sustainability education and participation",
	},
}

const chatOfflineResponseFormat = "GreenyBot is currently using offline mode. Based on your %d-star GRIHA rating, I can provide general guidance. However, for detailed analysis, please ensure the AI service is properly configured."

const chatErrorResponse = "I apologize, but I'm having trouble generating a response right now. Please try again later."

func chatOfflineResponse(rating int) string {
	return fmt.Sprintf(chatOfflineResponseFormat, rating)
}

var chatDefaultSuggestions = []string{
	"What are the key areas for improvement?",
	"How can I reduce energy consumption?",
	"What are the benefits of higher GRIHA ratings?",
}

// Rating-tier suggestion triples used when a chat response carries no
// follow-up block.
var (
	chatSuggestionsLowTier = []string{
		"How can I improve my energy efficiency score?",
		"What water conservation measures should I implement?",
		"Which sustainable materials would be most cost-effective?",
	}
	chatSuggestionsMidTier = []string{
		"How can I reach a 4-star rating?",
		"What are the most impactful improvements I can make?",
		"How do I optimize indoor environmental quality?",
	}
	chatSuggestionsHighTier = []string{
		"How can I maintain this high rating over time?",
		"What innovative features could push me to 5 stars?",
		"How do I maximize the ROI of green investments?",
	}
)

// FallbackAssessment returns the canned "why this rating" text.
func FallbackAssessment(rating int) string {
	if text, ok := fallbackAssessments[rating]; ok {
		return text
	}
	return "Rating assessment unavailable."
}

// FallbackSection returns the canned content for a section/rating pair.
func FallbackSection(sectionType string, rating int) string {
	if byRating, ok := fallbackSections[sectionType]; ok {
		if text, ok := byRating[rating]; ok {
			return text
		}
	}
	return "Content not available for this rating."
}

// defaultSuggestions picks the rating-tier suggestion triple.
func defaultSuggestions(rating int) []string {
	switch {
	case rating <= 2:
		return chatSuggestionsLowTier
	case rating == 3:
		return chatSuggestionsMidTier
	default:
		return chatSuggestionsHighTier
	}
}
