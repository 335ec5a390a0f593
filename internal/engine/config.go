package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	twitter "github.com/anatolykoptev/go-twitter"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	GithubToken          string
	HuggingFaceToken     string
	FetchTimeout         time.Duration
	MaxContentChars      int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	DatabaseURL          string // Postgres profile sink; empty = disabled
	UsersDBPath          string // local SQLite registration store
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient  // nil = page-content fetches disabled
	TwitterClient        *twitter.Client // nil = social activity lookups disabled
	LLMClient            *llm.Client     // nil = LLM enrichment disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (profile, sources, store).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
