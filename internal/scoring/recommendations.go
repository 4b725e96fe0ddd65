package scoring

import (
	"fmt"
	"strings"
)

// recommendationInput collects the scoring signals the recommendation rules
// are keyed on.
type recommendationInput struct {
	Matched       []string
	Missing       []string
	Partial       []string
	Score         float64
	HasSkills     bool
	HasExperience bool
}

// buildRecommendations produces the ordered guidance list. The rule order is
// fixed: score tier, missing keywords, partial matches, section hints, then
// positive reinforcement.
func buildRecommendations(in recommendationInput) []string {
	recommendations := make([]string, 0, 6)

	switch {
	case in.Score < 30:
		recommendations = append(recommendations, "Your resume needs significant improvement to match this job posting")
	case in.Score < 60:
		recommendations = append(recommendations, "Your resume has potential but needs optimization for better ATS performance")
	case in.Score < 80:
		recommendations = append(recommendations, "Good foundation! A few tweaks will significantly improve your ATS score")
	default:
		recommendations = append(recommendations, "Excellent! Your resume is well-optimized for ATS systems")
	}

	if len(in.Missing) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Add these important keywords: %s", strings.Join(firstN(in.Missing, 5), ", ")))
	}

	if len(in.Partial) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider using exact terms: %s", strings.Join(firstN(in.Partial, 3), ", ")))
	}

	if !in.HasSkills {
		recommendations = append(recommendations, "Add a dedicated 'Skills' or 'Technical Skills' section")
	}

	if !in.HasExperience {
		recommendations = append(recommendations, "Ensure your work experience section uses relevant keywords")
	}

	if len(in.Matched) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Great job including: %s", strings.Join(firstN(in.Matched, 3), ", ")))
	}

	return recommendations
}

// firstN returns at most n leading elements of s.
func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
