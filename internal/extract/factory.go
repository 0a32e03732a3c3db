package extract

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

// NewExtractor creates a provider from configuration. Extraction is
// mandatory for document processing, so an empty provider is an error
// rather than a disabled feature.
func NewExtractor(config Config) (Extractor, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIExtractor(config)
	case "ollama":
		return NewOllamaExtractor(config)
	case "":
		return nil, fmt.Errorf("no extraction provider configured (supported: openai, ollama)")
	default:
		return nil, fmt.Errorf("unknown extraction provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// limitedExtractor throttles extraction calls across the batch so that
// parallel document workers do not burst past provider rate limits.
type limitedExtractor struct {
	inner   Extractor
	limiter *rate.Limiter
}

// Limited wraps an extractor with a token-bucket rate limit. A
// non-positive rate disables throttling.
func Limited(inner Extractor, requestsPerSecond float64, burst int) Extractor {
	if requestsPerSecond <= 0 {
		return inner
	}
	if burst <= 0 {
		burst = 1
	}
	return &limitedExtractor{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name implements Extractor.
func (l *limitedExtractor) Name() string { return l.inner.Name() }

// Extract implements Extractor.
func (l *limitedExtractor) Extract(ctx context.Context, documentText string) ([]byte, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return l.inner.Extract(ctx, documentText)
}
