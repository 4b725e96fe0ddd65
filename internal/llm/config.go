// Package llm provides the Gemini client abstraction and the LLM-backed
// collaborators of the optimization pipeline: keyword extraction, resume
// annotation, and resume rewriting.
package llm

// ModelTier represents the capability level to use for a task.
type ModelTier string

const (
	// TierLite is for simple tasks: keyword extraction, classification.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: annotation, summarization.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: resume rewriting.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model selection per tier.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard then
// lite when the tier is unconfigured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
