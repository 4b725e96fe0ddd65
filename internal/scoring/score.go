package scoring

import (
	"math"
	"regexp"
	"strings"
)

// Section heuristics over the raw resume text. Case-insensitive, matching
// the headings candidates actually use.
var (
	skillsSectionRe     = regexp.MustCompile(`(?i)skills?|technical|technologies|tools`)
	experienceSectionRe = regexp.MustCompile(`(?i)experience|work|employment|professional`)
)

// Score computes the ATS compatibility of resumeText against keywords.
// It is pure and deterministic: identical inputs always produce identical
// results, and it never returns an error. Empty input is a defined
// degenerate case, not a failure.
func Score(resumeText string, keywords []string) *Result {
	return ScoreWithWeights(resumeText, keywords, DefaultWeights())
}

// ScoreWithWeights is Score with explicit bonus coefficients.
func ScoreWithWeights(resumeText string, keywords []string, weights Weights) *Result {
	if resumeText == "" || len(keywords) == 0 {
		missing := make([]string, len(keywords))
		copy(missing, keywords)
		return &Result{
			Score:           0,
			TotalKeywords:   0,
			MatchedKeywords: []string{},
			MissingKeywords: missing,
			PartialMatches:  []string{},
			Recommendations: []string{"Please provide both resume content and keywords"},
		}
	}

	resumeLower := strings.ToLower(resumeText)

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0)
	partial := make([]string, 0)

	for _, keyword := range keywords {
		keywordLower := strings.ToLower(keyword)
		switch {
		case strings.Contains(resumeLower, keywordLower):
			matched = append(matched, keyword)
		case matchesVariation(resumeLower, keyword):
			partial = append(partial, keyword)
		default:
			missing = append(missing, keyword)
		}
	}

	exactScore := float64(len(matched)) * exactMatchWeight
	partialScore := float64(len(partial)) * partialMatchWeight
	totalPossible := float64(len(keywords)) * exactMatchWeight
	baseScore := (exactScore + partialScore) / totalPossible * 100

	bonusMultiplier := 1.0

	// Keyword density bonus: enough keywords to register, not stuffed.
	wordCount := len(strings.Split(resumeLower, " "))
	density := float64(len(matched)+len(partial)) / float64(wordCount)
	if density >= minIdealDensity && density <= maxIdealDensity {
		bonusMultiplier += weights.DensityBonus
	}

	hasSkills := skillsSectionRe.MatchString(resumeText)
	hasExperience := experienceSectionRe.MatchString(resumeText)
	if hasSkills {
		bonusMultiplier += weights.SkillsBonus
	}
	if hasExperience {
		bonusMultiplier += weights.ExperienceBonus
	}

	finalScore := math.Min(baseScore*bonusMultiplier, 100)

	return &Result{
		Score:           int(math.Round(finalScore)),
		TotalKeywords:   len(keywords),
		MatchedKeywords: matched,
		MissingKeywords: missing,
		PartialMatches:  partial,
		Recommendations: buildRecommendations(recommendationInput{
			Matched:       matched,
			Missing:       missing,
			Partial:       partial,
			Score:         finalScore,
			HasSkills:     hasSkills,
			HasExperience: hasExperience,
		}),
	}
}
