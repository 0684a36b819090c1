package types

import "strings"

// Config holds every setting PaperPostman reads. Keys are flat so the
// YAML file stays a plain list of scalars; mapstructure tags are what
// viper unmarshals by.
type Config struct {
	// Keywords filter fetched papers; empty means keep everything.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// KeywordMatch is "any" (default) or "all".
	KeywordMatch string `json:"keyword_match" yaml:"keyword_match" mapstructure:"keyword_match"`

	// ArxivCategories lists the arXiv taxonomy codes to query (e.g. "cs.AI").
	ArxivCategories []string `json:"arxiv_categories" yaml:"arxiv_categories" mapstructure:"arxiv_categories"`

	// Conferences lists the papers.cool venue slugs to scrape (e.g. "NeurIPS.2025").
	Conferences []string `json:"conferences" yaml:"conferences" mapstructure:"conferences"`

	// PapersPerDay caps the Latest News section (default 20).
	PapersPerDay int `json:"papers_per_day" yaml:"papers_per_day" mapstructure:"papers_per_day"`

	// DailyRecommendationCount is how many conference papers to pick at random (default 1).
	DailyRecommendationCount int `json:"daily_recommendation_count" yaml:"daily_recommendation_count" mapstructure:"daily_recommendation_count"`

	// WeeklySummaryDay is the English weekday name on which the weekly
	// summary is generated (default "Friday").
	WeeklySummaryDay string `json:"weekly_summary_day" yaml:"weekly_summary_day" mapstructure:"weekly_summary_day"`

	// LLMAPIBase is the OpenAI-compatible endpoint base URL. Empty
	// disables summary generation.
	LLMAPIBase string `json:"llm_api_base" yaml:"llm_api_base" mapstructure:"llm_api_base"`

	// LLMAPIKey authenticates against LLMAPIBase. Usually "${DEEPSEEK_API_KEY}"
	// in the config file, resolved from the environment at load time.
	LLMAPIKey string `json:"llm_api_key,omitempty" yaml:"llm_api_key,omitempty" mapstructure:"llm_api_key"`

	// LLMModel is the chat model identifier (default "deepseek-chat").
	LLMModel string `json:"llm_model" yaml:"llm_model" mapstructure:"llm_model"`

	// LLMTemperature is the sampling temperature for summaries (default 0.7).
	LLMTemperature float64 `json:"llm_temperature" yaml:"llm_temperature" mapstructure:"llm_temperature"`

	// LLMMaxTokens caps the summary completion length (default 2000).
	LLMMaxTokens int `json:"llm_max_tokens" yaml:"llm_max_tokens" mapstructure:"llm_max_tokens"`

	// ArchiveDir is where dated README copies go (default "archive").
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir" mapstructure:"archive_dir"`

	// DataDir holds papers.json, the weekly/ buckets, and the search
	// index (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// ArxivAPIBase is the arXiv query API endpoint.
	ArxivAPIBase string `json:"arxiv_api_base" yaml:"arxiv_api_base" mapstructure:"arxiv_api_base"`

	// ArxivMaxResults is the per-category result cap (default 100).
	ArxivMaxResults int `json:"arxiv_max_results" yaml:"arxiv_max_results" mapstructure:"arxiv_max_results"`

	// PapersCoolBaseURL is the venue page base URL.
	PapersCoolBaseURL string `json:"paperscool_base_url" yaml:"paperscool_base_url" mapstructure:"paperscool_base_url"`

	// UserAgent is sent with every outbound HTTP request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RequestTimeoutSeconds bounds each HTTP request (default 30).
	RequestTimeoutSeconds int `json:"request_timeout_seconds" yaml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
}

// Defaults for config fields left unset. Kept in one place so the loader
// and tests agree on them.
const (
	DefaultPapersPerDay             = 20
	DefaultDailyRecommendationCount = 1
	DefaultWeeklySummaryDay         = "Friday"
	DefaultKeywordMatch             = "any"
	DefaultLLMModel                 = "deepseek-chat"
	DefaultLLMTemperature           = 0.7
	DefaultLLMMaxTokens             = 2000
	DefaultArchiveDir               = "archive"
	DefaultDataDir                  = "data"
	DefaultArxivAPIBase             = "https://export.arxiv.org/api/query"
	DefaultArxivMaxResults          = 100
	DefaultPapersCoolBaseURL        = "https://papers.cool/venue"
	DefaultUserAgent                = "paperpostman/0.1 (+https://github.com/MJy1023/PaperPostman)"
	DefaultRequestTimeoutSeconds    = 30
)

// ApplyDefaults fills zero-valued fields with the package defaults.
// Explicit zeroes in the file are indistinguishable from unset and are
// overwritten; that matches how the tool has always behaved.
func (c *Config) ApplyDefaults() {
	if c.KeywordMatch == "" {
		c.KeywordMatch = DefaultKeywordMatch
	}
	if c.PapersPerDay == 0 {
		c.PapersPerDay = DefaultPapersPerDay
	}
	if c.DailyRecommendationCount == 0 {
		c.DailyRecommendationCount = DefaultDailyRecommendationCount
	}
	if c.WeeklySummaryDay == "" {
		c.WeeklySummaryDay = DefaultWeeklySummaryDay
	}
	if c.LLMModel == "" {
		c.LLMModel = DefaultLLMModel
	}
	if c.LLMTemperature == 0 {
		c.LLMTemperature = DefaultLLMTemperature
	}
	if c.LLMMaxTokens == 0 {
		c.LLMMaxTokens = DefaultLLMMaxTokens
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = DefaultArchiveDir
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.ArxivAPIBase == "" {
		c.ArxivAPIBase = DefaultArxivAPIBase
	}
	if c.ArxivMaxResults == 0 {
		c.ArxivMaxResults = DefaultArxivMaxResults
	}
	if c.PapersCoolBaseURL == "" {
		c.PapersCoolBaseURL = DefaultPapersCoolBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
}

// LLMConfigured reports whether both the endpoint and the key are set,
// i.e. whether summary generation can run. A key that still looks like
// an unresolved "${NAME}" reference means the environment variable was
// never set, so it does not count.
func (c Config) LLMConfigured() bool {
	if c.LLMAPIBase == "" || c.LLMAPIKey == "" {
		return false
	}
	if strings.HasPrefix(c.LLMAPIKey, "${") && strings.HasSuffix(c.LLMAPIKey, "}") {
		return false
	}
	return true
}
