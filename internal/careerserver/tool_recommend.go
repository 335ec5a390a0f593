package careerserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/profile"
	"github.com/lakshsetu/go_career/internal/engine/sources"
	"github.com/lakshsetu/go_career/internal/store"
)

// CareerRecommendInput is a profile plus the source extracts the rules
// inspect. Extracts are optional; rules that need a missing source are
// skipped.
type CareerRecommendInput struct {
	Profile  profile.UserProfile      `json:"profile"`
	GitHub   *sources.GitHubExtract   `json:"github,omitempty"`
	LinkedIn *sources.LinkedInExtract `json:"linkedin,omitempty"`
	Persist  bool                     `json:"persist,omitempty"`
	Narrate  bool                     `json:"narrate,omitempty"`
}

// CareerRecommendOutput is the updated profile and the full
// recommendation records, in rule-evaluation order.
type CareerRecommendOutput struct {
	Profile         profile.UserProfile      `json:"profile"`
	Recommendations []profile.Recommendation `json:"recommendations"`
	Narrative       string                   `json:"narrative,omitempty"`
}

func registerCareerRecommend(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "career_recommend",
		Description: "Evaluate career recommendation rules (skill gaps, repo polish, LinkedIn activity, network size, idle certifications) against a merged profile. Returns full recommendation records and the profile with recommendation titles appended. Set persist=true to save the result, narrate=true for an LLM summary.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CareerRecommendInput) (*mcp.CallToolResult, CareerRecommendOutput, error) {
		if err := input.Profile.Validate(); err != nil {
			return nil, CareerRecommendOutput{}, err
		}

		updated, recs := profile.Recommend(input.Profile, input.GitHub, input.LinkedIn)
		out := CareerRecommendOutput{Profile: updated, Recommendations: recs}

		if input.Narrate && len(recs) > 0 {
			narrative, err := narrateRecommendations(ctx, updated, recs)
			if err != nil && !errors.Is(err, engine.ErrLLMDisabled) {
				slog.Warn("career_recommend: narrative failed", slog.Any("error", err))
			}
			out.Narrative = narrative
		}

		if input.Persist {
			if db := store.GetProfileDB(); db != nil {
				if err := db.UpsertProfile(ctx, updated); err != nil {
					return nil, out, fmt.Errorf("persist profile: %w", err)
				}
			} else if err := store.UpdateRegisteredProfile(ctx, updated); err != nil {
				return nil, out, fmt.Errorf("persist profile: %w", err)
			}
		}

		return nil, out, nil
	})
}

// narrateRecommendations asks the LLM for a short motivational summary of
// the generated recommendations.
func narrateRecommendations(ctx context.Context, p profile.UserProfile, recs []profile.Recommendation) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "User %s has these career recommendations:\n", p.Name)
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s (priority %d): %s\n", r.Title, r.Priority, r.Reason)
	}
	b.WriteString("\nWrite a short, encouraging 2-3 sentence summary of what they should focus on first. Plain text only.")
	return engine.CallLLM(ctx, b.String())
}
