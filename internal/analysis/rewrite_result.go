package analysis

import "encoding/json"

// RewriteResult is the dual-shaped output of the rewrite call: some
// backends return a structured object with an optimized_resume field, others
// return the rewritten text directly. It is modeled as an explicit sum type
// with one extraction method instead of property probing at call sites.
type RewriteResult struct {
	structured bool
	optimized  string
	raw        string
}

// StructuredRewrite wraps an object-shaped result.
func StructuredRewrite(optimizedResume string) RewriteResult {
	return RewriteResult{structured: true, optimized: optimizedResume}
}

// TextRewrite wraps a bare-string result.
func TextRewrite(text string) RewriteResult {
	return RewriteResult{raw: text}
}

// Text returns the rewritten resume regardless of shape. For a structured
// result with an empty optimized_resume it falls back to the raw payload,
// matching how the consumer handled both shapes historically.
func (r RewriteResult) Text() string {
	if r.structured && r.optimized != "" {
		return r.optimized
	}
	return r.raw
}

// ParseRewriteResponse decodes a rewrite API payload into a RewriteResult.
// A JSON object with an optimized_resume field yields the structured shape;
// anything else is treated as bare text.
func ParseRewriteResponse(payload []byte) RewriteResult {
	var structured struct {
		OptimizedResume string `json:"optimized_resume"`
	}
	if err := json.Unmarshal(payload, &structured); err == nil && structured.OptimizedResume != "" {
		return StructuredRewrite(structured.OptimizedResume)
	}

	// Bare JSON string payloads decode to their contents.
	var text string
	if err := json.Unmarshal(payload, &text); err == nil {
		return TextRewrite(text)
	}

	return TextRewrite(string(payload))
}
