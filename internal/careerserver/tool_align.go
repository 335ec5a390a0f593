package careerserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine/profile"
	"github.com/lakshsetu/go_career/internal/engine/sources"
)

// ProfileAlignInput carries the base profile and the source payloads to merge.
// LinkedIn and GitHub accept raw scraper maps; GitHub alternatively accepts
// an already-validated extract from profile_fetch.
type ProfileAlignInput struct {
	Profile     profile.UserProfile      `json:"profile"`
	LinkedIn    *sources.LinkedInExtract `json:"linkedin,omitempty"`
	LinkedInRaw map[string]any           `json:"linkedin_raw,omitempty"`
	GitHub      *sources.GitHubExtract   `json:"github,omitempty"`
	GitHubRaw   map[string]any           `json:"github_raw,omitempty"`
	HFModels    []sources.HFModelExtract `json:"hf_models,omitempty"`
}

// ProfileAlignOutput is the merged profile plus any entries dropped
// during lenient parsing.
type ProfileAlignOutput struct {
	Profile  profile.UserProfile `json:"profile"`
	Warnings []string            `json:"warnings,omitempty"`
}

func registerProfileAlign(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_align",
		Description: "Merge LinkedIn, GitHub, and HuggingFace extracts into a canonical user profile. Idempotent: re-aligning the same inputs changes nothing. Existing profile values are never overwritten; skills, projects, and certifications are deduplicated case-insensitively.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ProfileAlignInput) (*mcp.CallToolResult, ProfileAlignOutput, error) {
		if err := input.Profile.Validate(); err != nil {
			return nil, ProfileAlignOutput{}, err
		}
		if input.LinkedIn == nil && input.LinkedInRaw == nil && input.GitHub == nil && input.GitHubRaw == nil && len(input.HFModels) == 0 {
			return nil, ProfileAlignOutput{}, errors.New("at least one source (linkedin, linkedin_raw, github, github_raw, hf_models) is required")
		}

		var warnings []string

		li := input.LinkedIn
		if li == nil && input.LinkedInRaw != nil {
			parsed, errs := sources.ParseLinkedInProfile(input.LinkedInRaw)
			for _, e := range errs {
				warnings = append(warnings, e.Error())
			}
			li = parsed
		}

		gh := input.GitHub
		if gh == nil && input.GitHubRaw != nil {
			parsed, errs := sources.ParseGitHubAnalysis(input.GitHubRaw)
			for _, e := range errs {
				warnings = append(warnings, e.Error())
			}
			gh = parsed
		}

		merged := profile.Align(input.Profile, gh, li, input.HFModels)

		if len(warnings) > 0 {
			slog.Warn("profile_align: dropped malformed entries",
				slog.Int("count", len(warnings)),
				slog.String("email", merged.Email))
		}
		return nil, ProfileAlignOutput{Profile: merged, Warnings: warnings}, nil
	})
}
