package readings

import (
	"fmt"

	"github.com/pjogani/vedics-api/internal/domain"
)

// promptTemplates полное отображение тип чтения -> промпт. Каждому валидному
// типу соответствует ровно один шаблон; проверяется тестом на тотальность.
var promptTemplates = map[domain.ReadingType]string{
	domain.ReadingToday: `You are a Vedic astrology expert. Provide the daily horoscope in JSON with the exact structure below:
{
  "general_insights": "Give a short overview of the day's prevailing cosmic climate, focusing on the Moon's sign/aspects and any major planetary transits affecting the individual's chart.",
  "color_of_the_day": "Suggest a color that harmonizes with today's planetary influences or aspects, believed to enhance positivity.",
  "favorable_activities": "List a few tasks (e.g., ["Organizing", "Learning", "Reflecting"]) that are cosmically supported by the current transits and lunar phase.",
  "challenging_aspects": "Note any difficult alignments (e.g., square, opposition) that could lead to miscommunication or tension, advising caution in these areas.",
  "remedies_for_the_day": "Offer simple, day-specific suggestions (e.g., ["Taking mindful breaks", "Spending time in nature"]) to counteract any challenging energy.",
  "lunar_influence": "Describe how the current Moon phase or sign might affect the individual's emotional landscape or daily routines.",
  "affirmation_for_the_day": "Present a short, uplifting statement that resonates with the day's planetary energy to foster a positive mindset.",
  "things_to_avoid": "Point out actions or decisions (e.g., signing important documents, engaging in conflicts) that might be less favorable under today's astrological conditions."
}
Return ONLY JSON with this shape. No additional text.`,

	domain.ReadingPersonality: `You are a Vedic astrology expert. Analyze the birth chart for personality insights. Return JSON with the exact structure below:
1. Core personality traits and life path
2. Social perception and past life influences
{
  "traits": "Provide a list of concise, astrology-based personality traits derived from the individual's Sun, Moon, and Ascendant signs, as well as major planetary aspects.",
  "strengths": "Offer a list of key strengths that highlight the individual's capacities based on supportive planetary alignments and house placements.",
  "weaknesses": "List potential challenges or tendencies that may arise from harsh planetary aspects or challenging house placements.",
  "social_perception": "Write a paragraph describing how the individual is generally perceived socially, influenced by their Ascendant, Venus placement, and any significant aspects to social planets (Jupiter/Saturn).",
  "past_life_influence": "Provide insights into karmic patterns carried from past incarnations, referencing the individual's Lunar Nodes, the 12th house, or any strong karmic indicators.",
  "hidden_potential": "Describe strengths or abilities that may not be immediately obvious but can be identified through subdominant houses (8th or 12th) and subtle planetary placements.",
  "karmic_lessons": "Explain the core lessons the individual needs to learn in this lifetime, referencing Saturn's position and aspects, as well as the North Node's influence."
}
Return ONLY JSON with this shape. No additional text.`,

	domain.ReadingCareer: `You are a Vedic astrology expert. Analyze the birth chart for career and financial insights. Return JSON with the exact structure below:
1. Career success and wealth potential
2. Foreign opportunities
3. Business vs employment prospects
{
  "ideal_professions": "Suggest careers or fields that align with the Midheaven sign, the 2nd/10th house placements, and the individual's personal planets.",
  "financial_growth": {
    "trend": "Discuss the general pattern of financial progress over time, referencing Saturn and Jupiter's transits in the money-related houses (2nd, 8th, 11th).",
    "wealth_accumulation": "Explain how the individual might build and retain wealth, guided by the planets in the 2nd or 8th house, and any supportive or challenging aspects."
  },
  "foreign_opportunities": "Describe possibilities for international work, travel, or relocation indicated by the 9th house, Jupiter's influence, and relevant planetary transits.",
  "career_transformation": {
    "expected_age_range": "Provide an age range where major career shifts could happen, often linked to Saturn Return or Uranus Opposition.",
    "prediction": "Give an overview of what type of transformations or turning points the individual may experience, based on key planetary transits or progressions."
  },
  "business_vs_job": "Analyze whether the individual is better suited for entrepreneurship or traditional employment, using aspects to the Midheaven, 6th house, and 2nd house influences.",
  "investment_recommendations": "Suggest potential sectors aligned with the individual's Jupiter, Saturn, or Uranus placements, indicating favorable investment energy."
}
Return ONLY JSON with this shape. No additional text.`,

	domain.ReadingRelationships: `You are a Vedic astrology expert. Analyze the birth chart for relationship and love insights. Return JSON with the exact structure below:
1. Relationship traits and patterns
2. Marriage prospects and partner compatibility
3. Romantic influences
{
  "traits_in_relationships": "List relationship-oriented traits derived from Venus, Mars, and the 7th house influences.",
  "marriage": {
    "prediction": "Offer a general outlook on the individual's marriage prospects or patterns, referencing the 7th house sign, planetary rulers, and key progressions or transits.",
    "partner_traits": "List qualities that the birth chart suggests for an ideal long-term partner.",
    "challenges": "Discuss potential difficulties indicated by challenging aspects to Venus, Mars, or the 7th house ruler."
  },
  "romantic_influences": "Describe how planetary transits (especially Venus and Mars) might impact the individual's romantic life, highlighting periods of heightened attraction or challenges.",
  "compatibility_insights": "Provide a broad overview of signs or planetary energies that typically complement the individual, focusing on synergy with their personal planets (Sun, Moon, Venus).",
  "relationship_advice": "Suggest strategies for maintaining healthy connections based on the birth chart's relationship-oriented placements.",
  "things_to_avoid": "Highlight behaviors or patterns that could negatively influence relationships, inferred from harsh relationship aspects."
}
Return ONLY JSON with this shape. No additional text.`,

	domain.ReadingHealth: `You are a Vedic astrology expert. Analyze the birth chart for health and wellness insights. Return JSON with the exact structure below:
1. Health concerns and predispositions
2. Recommendations for wellbeing
3. Long-term health outlook
{
  "concerns": "Identify common health or wellness issues suggested by the 6th house sign/planets and aspects to the Ascendant.",
  "recommendations": "Provide general wellness strategies aligned with the chart's elements (Fire, Earth, Air, Water) and any significant placements in health-related houses.",
  "long_term_health": "Explain the individual's overall health trajectory, considering any long-term planetary influences or aspects to the 6th/12th house.",
  "alternative_healing_methods": "Suggest holistic or spiritual healing practices that resonate with the individual's elemental balance and Neptune or Chiron placements.",
  "things_to_avoid": "Note unhealthy habits or triggers that might be more impactful due to the birth chart's sensitivities or planetary weaknesses."
}
Return ONLY JSON with this shape. No additional text.`,

	domain.ReadingChallenges: `You are a Vedic astrology expert. Analyze the birth chart for challenges and remedies. Return JSON with the exact structure below:
1. Life challenges and obstacles
2. Spiritual remedies and practices
3. Astrological recommendations
{
  "challenges": "List significant obstacles indicated by challenging planetary aspects (Saturn, Mars, Pluto).",
  "remedies": {
    "mantras": "Suggest spiritual or traditional mantras that can help align the individual's energy with favorable planetary vibrations.",
    "spiritual_practices": "Recommend daily spiritual or reflective activities aimed at mitigating challenging planetary transits or aspects.",
    "astrological_recommendations": "Include possible astrological solutions (e.g., wearing specific gemstones, performing planetary rituals, timing activities with certain transits)."
  },
  "energy_shifts": "Describe periods when the individual's energy levels or focus may dramatically change, often associated with eclipse seasons or major planetary returns.",
  "lunar_cycles_influence": "Explain how New Moons, Full Moons, or eclipses specifically impact the individual's emotional state and decision-making based on their Moon placement.",
  "things_to_avoid": "List common pitfalls during challenging transits or progressions that could hinder personal progress."
}
Return ONLY JSON with this shape. No additional text.`,

	domain.ReadingLifePeriods: `You are a Vedic astrology expert. Analyze the birth chart for major life periods. Return JSON with the exact structure below:
1. Early life patterns and influences
2. Mid-life developments and transitions
3. Later years outlook
{
  "early_life": "Summarize the formative years, referencing the 1st to 4th houses and any early-life transits that shaped personality and family dynamics.",
  "mid_life": "Explain the individual's transition into deeper career responsibilities and personal growth, influenced by aspects like the Saturn Return or mid-life planetary alignments.",
  "later_years": "Describe the stage of life typically associated with spiritual reflection and wisdom, guided by transits of the outer planets in the later decades.",
  "spiritual_growth_phases": "Highlight phases where spiritual awakenings or profound realizations occur, often linked to Neptune or Pluto transits, as well as nodal returns.",
  "self-discovery_periods": "Pinpoint times of intense self-awareness or transformation, triggered by significant progressions or important transits."
}
Return ONLY JSON with this shape. No additional text.`,
}

// PromptFor возвращает шаблон промпта для типа чтения
func PromptFor(readingType domain.ReadingType) (string, error) {
	tpl, ok := promptTemplates[readingType]
	if !ok {
		return "", fmt.Errorf("unknown reading type: %s", readingType)
	}
	return tpl, nil
}

// languageInstruction строит указание модели отвечать на языке пользователя.
// Переводится весь ответ целиком, включая ключи JSON.
func languageInstruction(language string) string {
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf("The response should be strictly in %s language, including the translated JSON keys.", language)
}
