package model

import (
	"runtime"
	"time"
)

// Config is the full adscan configuration. It is built once by the CLI
// layer (flags > env > config file > defaults) and passed explicitly
// into constructors; the core packages never read ambient process
// state, which keeps assembly and evaluation deterministic and
// test-isolated.
type Config struct {
	Assembly    AssemblyConfig    `yaml:"assembly" json:"assembly"`
	Extractor   ExtractorConfig   `yaml:"extractor" json:"extractor"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// AssemblyConfig tunes reading-order reconstruction. Thresholds are in
// page coordinate units and vary with DPI and font size, so they must
// stay configurable per run.
type AssemblyConfig struct {
	// YThreshold is the maximum vertical-center distance between two
	// fragments on the same reading line.
	YThreshold float64 `yaml:"y_threshold" json:"y_threshold"`

	// TouchTolerance is the horizontal gap below which two adjacent
	// fragments are joined without a separator (hyphenation or split
	// identifier continuation).
	TouchTolerance float64 `yaml:"touch_tolerance" json:"touch_tolerance"`

	// ConfidenceFloor flags (never drops) fragments below this
	// recognition confidence.
	ConfidenceFloor float64 `yaml:"confidence_floor" json:"confidence_floor"`

	// ColumnGutterMin is the minimum horizontal gap that separates two
	// column bands.
	ColumnGutterMin float64 `yaml:"column_gutter_min" json:"column_gutter_min"`

	// ColumnMinFragments is the minimum number of fragments a band
	// must contain before the page is treated as multi-column.
	ColumnMinFragments int `yaml:"column_min_fragments" json:"column_min_fragments"`
}

// ExtractorConfig configures the generative extraction provider.
type ExtractorConfig struct {
	// Provider name: "openai" or "ollama".
	Provider string `yaml:"provider" json:"provider"`

	Model   string `yaml:"model" json:"model"`
	APIKey  string `yaml:"-" json:"-"`
	BaseURL string `yaml:"base_url" json:"base_url"`

	Timeout     int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float32 `yaml:"temperature" json:"temperature"`

	// RequestsPerSecond and Burst rate-limit extraction calls across
	// the whole batch.
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`

	HTTPProxy  string `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" json:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" json:"no_proxy"`
}

// CacheConfig controls the in-memory extraction cache. Entries are
// keyed by a hash of the assembled document text, so re-running a batch
// over unchanged documents skips the provider call.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`

	// Dir, when set, persists extractions on disk so they survive
	// process restarts. Empty means memory-only.
	Dir string `yaml:"dir" json:"dir"`
}

// ConcurrencyConfig sizes the worker pools.
type ConcurrencyConfig struct {
	// DocumentWorkers run the per-document pipeline (recognition,
	// assembly, extraction, validation) in parallel.
	DocumentWorkers int `yaml:"document_workers" json:"document_workers"`

	// EvaluationWorkers run the evaluator over the directive x aircraft
	// Cartesian product.
	EvaluationWorkers int `yaml:"evaluation_workers" json:"evaluation_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Dir       string `yaml:"dir" json:"dir"`
	WriteXLSX bool   `yaml:"write_xlsx" json:"write_xlsx"`
	WriteJSON bool   `yaml:"write_json" json:"write_json"`
	Verbose   bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults. The assembly thresholds
// match 300 DPI letter-size pages.
func DefaultConfig() *Config {
	return &Config{
		Assembly: AssemblyConfig{
			YThreshold:         15.0,
			TouchTolerance:     1.5,
			ConfidenceFloor:    0.55,
			ColumnGutterMin:    90.0,
			ColumnMinFragments: 6,
		},
		Extractor: ExtractorConfig{
			Provider:          "openai",
			Model:             "",
			Timeout:           120,
			MaxTokens:         8192,
			Temperature:       0.1,
			RequestsPerSecond: 0.5,
			Burst:             2,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			DocumentWorkers:   2,
			EvaluationWorkers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Dir:       "./adscan-results",
			WriteXLSX: true,
			WriteJSON: true,
		},
	}
}
