// Package extract is the generative extraction boundary. An Extractor
// converts assembled document text into a candidate structured record;
// the candidate is opaque, untrusted bytes until the validator accepts
// it. The core never consumes extractor output directly.
package extract

import (
	"context"

	"github.com/skyfleet/adscan/internal/model"
	"github.com/skyfleet/adscan/internal/validate"
)

// Extractor produces a candidate applicability record for one assembled
// document. Implementations are external collaborators and may be
// non-deterministic; callers must validate every candidate.
type Extractor interface {
	// Name returns the provider name.
	Name() string

	// Extract returns the raw candidate JSON for the document text.
	Extract(ctx context.Context, documentText string) ([]byte, error)
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai" or "ollama".
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (required for Ollama).
	BaseURL string

	// Timeout for one extraction call, in seconds.
	Timeout int

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature; extraction wants it low.
	Temperature float32

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts the top-level configuration section.
func ConfigFromModel(c model.ExtractorConfig) Config {
	return Config{
		Provider:    c.Provider,
		Model:       c.Model,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Timeout:     c.Timeout,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		HTTPProxy:   c.HTTPProxy,
		HTTPSProxy:  c.HTTPSProxy,
		NoProxy:     c.NoProxy,
	}
}

// systemPrompt instructs the model to transcribe, never infer. The
// namespace rules mirror the validator: a candidate that ignores them
// is rejected downstream.
const systemPrompt = `You are an aviation regulatory document parser specialized in Airworthiness Directives (ADs).
Extract structured applicability and compliance information from the provided AD document text.

EXTRACTION RULES:
- Extract only information explicitly stated in the document. Never infer or assume.
- Preserve all identifiers verbatim (model names, SB numbers, mod numbers, MSNs).
- If a field has no corresponding information in the document, set it to null.
- Output valid JSON only. No markdown, no explanation, no commentary.

CRITICAL DISTINCTIONS:
- Manufacturer modification numbers (e.g. "mod 24591") always go in modification_constraints. Never in sb_constraints.
- Service Bulletin identifiers (e.g. "A320-57-1089") always go in sb_constraints. Never in modification_constraints.
- If the AD states "all MSN" or "all manufacturer serial numbers", set an MSN constraint with "all": true. Never leave msn_constraints null when MSN applicability is mentioned.
- When an SB exclusion names a minimum revision ("at Revision 04 or later"), set min_revision to that number.
- Recurring intervals ("thereafter, at intervals not exceeding...") get "is_interval": true; one-time thresholds get false.

OUTPUT: valid JSON strictly following this schema:

` + validate.SchemaJSON

// BuildUserPrompt wraps the assembled document text for the provider.
func BuildUserPrompt(documentText string) string {
	return "Now extract the following recognized document text:\n\n" + documentText
}
