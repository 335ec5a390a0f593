package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	GithubFetches      atomic.Int64
	HuggingFaceFetches atomic.Int64
	TwitterLookups     atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	AlignCalls         atomic.Int64
	RecommendCalls     atomic.Int64
	InteractionCycles  atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	ProfileSaves       atomic.Int64
	Registrations      atomic.Int64
}

// Incrementors for sub-packages.
func IncrGithubFetches()      { metrics.GithubFetches.Add(1) }
func IncrHuggingFaceFetches() { metrics.HuggingFaceFetches.Add(1) }
func IncrTwitterLookups()     { metrics.TwitterLookups.Add(1) }
func IncrFetchRequests()      { metrics.FetchRequests.Add(1) }
func IncrFetchErrors()        { metrics.FetchErrors.Add(1) }
func IncrAlignCalls()         { metrics.AlignCalls.Add(1) }
func IncrRecommendCalls()     { metrics.RecommendCalls.Add(1) }
func IncrInteractionCycles()  { metrics.InteractionCycles.Add(1) }
func IncrLLMCalls()           { metrics.LLMCalls.Add(1) }
func IncrLLMErrors()          { metrics.LLMErrors.Add(1) }
func IncrProfileSaves()       { metrics.ProfileSaves.Add(1) }
func IncrRegistrations()      { metrics.Registrations.Add(1) }

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"github_fetches":      metrics.GithubFetches.Load(),
		"huggingface_fetches": metrics.HuggingFaceFetches.Load(),
		"twitter_lookups":     metrics.TwitterLookups.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"align_calls":         metrics.AlignCalls.Load(),
		"recommend_calls":     metrics.RecommendCalls.Load(),
		"interaction_cycles":  metrics.InteractionCycles.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"profile_saves":       metrics.ProfileSaves.Load(),
		"registrations":       metrics.Registrations.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"github_fetches", "huggingface_fetches", "twitter_lookups",
		"fetch_requests", "fetch_errors",
		"align_calls", "recommend_calls", "interaction_cycles",
		"llm_calls", "llm_errors",
		"profile_saves", "registrations",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
