package careerserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine/profile"
	"github.com/lakshsetu/go_career/internal/engine/sources"
	"github.com/lakshsetu/go_career/internal/store"
)

// RunCycleInput configures a bounded run of the scheduled interaction loop.
// Answers map question text to a reply; Decisions map a recommendation or
// task title to approve/defer/reject. Anything unmatched falls back to
// DefaultDecision (empty = defer).
type RunCycleInput struct {
	Profile             profile.UserProfile `json:"profile"`
	GithubUsername      string              `json:"github_username,omitempty"`
	HuggingFaceUsername string              `json:"huggingface_username,omitempty"`
	LinkedInPublicID    string              `json:"linkedin_public_id,omitempty"`
	IntervalDays        int                 `json:"interval_days,omitempty"`
	Steps               int                 `json:"steps,omitempty"`
	Answers             map[string]string   `json:"answers,omitempty"`
	Decisions           map[string]string   `json:"decisions,omitempty"`
	DefaultDecision     string              `json:"default_decision,omitempty"`
	Persist             bool                `json:"persist,omitempty"`
}

// RunCycleOutput reports the final profile state after the run.
type RunCycleOutput struct {
	Profile         profile.UserProfile      `json:"profile"`
	Recommendations []profile.Recommendation `json:"recommendations"`
	LastProcessedAt string                   `json:"last_processed_at"`
	NextProcessAt   string                   `json:"next_process_at"`
	StepsRun        int                      `json:"steps_run"`
}

func registerRunCycle(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_cycle",
		Description: "Run the scheduled profile cycle: re-ingest sources when due, align, recommend, and apply the supplied answers and approval decisions. Steps bounds the loop (default 1). Set persist=true to save the resulting profile after each cycle.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input RunCycleInput) (*mcp.CallToolResult, RunCycleOutput, error) {
		if err := input.Profile.Validate(); err != nil {
			return nil, RunCycleOutput{}, err
		}
		steps := input.Steps
		if steps <= 0 {
			steps = 1
		}
		if steps > 50 {
			return nil, RunCycleOutput{}, errors.New("steps must be at most 50")
		}

		sched := profile.NewScheduler(input.Profile, input.IntervalDays)
		if input.GithubUsername != "" || input.HuggingFaceUsername != "" || input.LinkedInPublicID != "" {
			sched.Ingest = ingestFromSources(input.GithubUsername, input.HuggingFaceUsername, input.LinkedInPublicID)
		}
		sched.Callbacks = scriptedCallbacks(ctx, input)

		if err := sched.RunSteps(ctx, steps); err != nil {
			return nil, RunCycleOutput{}, err
		}

		return nil, RunCycleOutput{
			Profile:         sched.Profile,
			Recommendations: sched.LastRecommendations,
			LastProcessedAt: sched.LastProcessedAt().UTC().Format(time.RFC3339),
			NextProcessAt:   sched.NextProcessAt().UTC().Format(time.RFC3339),
			StepsRun:        steps,
		}, nil
	})
}

// ingestFromSources builds an IngestFunc that re-fetches the configured
// public profiles. Per-source failures downgrade to "no update".
func ingestFromSources(ghUser, hfUser, liID string) profile.IngestFunc {
	return func(ctx context.Context, p profile.UserProfile) (profile.UserProfile, *sources.GitHubExtract, *sources.LinkedInExtract, []sources.HFModelExtract, error) {
		var gh *sources.GitHubExtract
		var li *sources.LinkedInExtract
		var hf []sources.HFModelExtract
		if ghUser != "" {
			got, err := sources.FetchGitHubUser(ctx, ghUser)
			if err != nil {
				slog.Warn("run_cycle: github ingest failed", slog.Any("error", err))
			} else {
				gh = got
			}
		}
		if hfUser != "" {
			got, err := sources.FetchHFUserModels(ctx, hfUser, 0)
			if err != nil {
				slog.Warn("run_cycle: huggingface ingest failed", slog.Any("error", err))
			} else {
				hf = got
			}
		}
		if liID != "" {
			got, _, err := sources.FetchLinkedInPublicProfile(ctx, liID)
			if err != nil {
				slog.Warn("run_cycle: linkedin ingest failed", slog.Any("error", err))
			} else {
				li = got
			}
		}
		return p, gh, li, hf, nil
	}
}

// scriptedCallbacks answers questions and decides approvals from the
// request payload instead of a live operator.
func scriptedCallbacks(ctx context.Context, input RunCycleInput) profile.Callbacks {
	cb := profile.Callbacks{
		Ask: func(prompt string) string {
			return input.Answers[prompt]
		},
		Confirm: func(prompt string) string {
			for title, decision := range input.Decisions {
				if strings.Contains(prompt, title) {
					return decision
				}
			}
			return input.DefaultDecision
		},
		LogEvent: func(evt profile.Event) {
			slog.Debug("cycle event", slog.String("type", evt.Type), slog.String("message", evt.Message))
		},
	}
	if input.Persist {
		cb.SaveProfile = func(p profile.UserProfile) error {
			if db := store.GetProfileDB(); db != nil {
				return db.UpsertProfile(ctx, p)
			}
			return store.UpdateRegisteredProfile(ctx, p)
		}
	}
	return cb
}
