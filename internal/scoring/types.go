// Package scoring implements the deterministic ATS compatibility scorer.
// Given resume text and a list of job keywords it classifies every keyword
// as matched, partially matched (via a known variation), or missing, and
// produces a 0-100 score with human-readable recommendations.
package scoring

// Default bonus coefficients. These are tuned heuristics, not contractual
// values, so they live on Weights rather than inside the formula.
const (
	exactMatchWeight   = 1.0
	partialMatchWeight = 0.5

	defaultDensityBonus    = 0.10
	defaultSkillsBonus     = 0.05
	defaultExperienceBonus = 0.05

	// Ideal keyword density range: 1-5% of resume words.
	minIdealDensity = 0.01
	maxIdealDensity = 0.05
)

// Weights holds the bonus coefficients applied on top of the base score.
type Weights struct {
	DensityBonus    float64 // Added when keyword density falls in the ideal range
	SkillsBonus     float64 // Added when a skills section is detected
	ExperienceBonus float64 // Added when an experience section is detected
}

// DefaultWeights returns the standard bonus coefficients.
func DefaultWeights() Weights {
	return Weights{
		DensityBonus:    defaultDensityBonus,
		SkillsBonus:     defaultSkillsBonus,
		ExperienceBonus: defaultExperienceBonus,
	}
}

// Result is the output of a single scoring call. The three keyword slices
// partition the input keyword list: every input keyword appears in exactly
// one of them, in input order.
type Result struct {
	Score           int      `json:"score"` // 0-100, clamped
	TotalKeywords   int      `json:"total_keywords"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	PartialMatches  []string `json:"partial_matches"`
	Recommendations []string `json:"recommendations"`
}
