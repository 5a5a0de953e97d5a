// Package llm provides the Gemini client abstraction used by the candidate
// scorer. Model selection goes through tiers so callers pick a capability
// level, not a model name.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, criteria extraction.
	TierLite ModelTier = "lite"
	// TierStandard is for structured evaluation output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning when standard output degrades.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers onto concrete Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the requested tier is unconfigured.
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
