package careerserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/sources"
	"github.com/lakshsetu/go_career/internal/toolutil"
)

// ProfileFetchInput selects which external profiles to ingest.
type ProfileFetchInput struct {
	GithubUsername      string `json:"github_username,omitempty"`
	HuggingFaceUsername string `json:"huggingface_username,omitempty"`
	LinkedInPublicID    string `json:"linkedin_public_id,omitempty"`
	XHandle             string `json:"x_handle,omitempty"`
	ModelLimit          int    `json:"model_limit,omitempty"`
}

// ProfileFetchOutput bundles the fetched extracts.
type ProfileFetchOutput struct {
	GitHub   *sources.GitHubExtract   `json:"github,omitempty"`
	LinkedIn *sources.LinkedInExtract `json:"linkedin,omitempty"`
	HFModels []sources.HFModelExtract `json:"hf_models,omitempty"`
	Social   *sources.SocialActivity  `json:"social,omitempty"`
	Errors   []string                 `json:"errors,omitempty"`
}

func registerProfileFetch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_fetch",
		Description: "Fetch a user's public profiles from GitHub (repos, languages, engagement), LinkedIn (public page), HuggingFace (models, tasks, tags), and optionally X (recent activity). Returns validated source extracts ready for profile_align.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ProfileFetchInput) (*mcp.CallToolResult, ProfileFetchOutput, error) {
		if input.GithubUsername == "" && input.HuggingFaceUsername == "" && input.LinkedInPublicID == "" && input.XHandle == "" {
			return nil, ProfileFetchOutput{}, errors.New("at least one of github_username, huggingface_username, linkedin_public_id, x_handle is required")
		}

		cacheKey := engine.CacheKey("profile_fetch", input.GithubUsername, input.HuggingFaceUsername, input.LinkedInPublicID, input.XHandle, fmt.Sprint(input.ModelLimit))
		if out, ok := toolutil.CacheLoadJSON[ProfileFetchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		var out ProfileFetchOutput
		var mu sync.Mutex
		var wg sync.WaitGroup

		record := func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				out.Errors = append(out.Errors, err.Error())
				mu.Unlock()
			}
		}

		if input.GithubUsername != "" {
			wg.Add(1)
			go record(func() error {
				gh, err := sources.FetchGitHubUser(ctx, input.GithubUsername)
				if err != nil {
					slog.Warn("profile_fetch: github error", slog.Any("error", err))
					return err
				}
				mu.Lock()
				out.GitHub = gh
				mu.Unlock()
				return nil
			})
		}
		if input.HuggingFaceUsername != "" {
			wg.Add(1)
			go record(func() error {
				models, err := sources.FetchHFUserModels(ctx, input.HuggingFaceUsername, input.ModelLimit)
				if err != nil {
					slog.Warn("profile_fetch: huggingface error", slog.Any("error", err))
					return err
				}
				mu.Lock()
				out.HFModels = models
				mu.Unlock()
				return nil
			})
		}
		if input.LinkedInPublicID != "" {
			wg.Add(1)
			go record(func() error {
				li, _, err := sources.FetchLinkedInPublicProfile(ctx, input.LinkedInPublicID)
				if err != nil {
					slog.Warn("profile_fetch: linkedin error", slog.Any("error", err))
					return err
				}
				mu.Lock()
				out.LinkedIn = li
				mu.Unlock()
				return nil
			})
		}
		if input.XHandle != "" {
			wg.Add(1)
			go record(func() error {
				// Optional source — absence of a client is reported, not fatal.
				social, err := sources.FetchSocialActivity(ctx, input.XHandle, 10)
				if err != nil {
					slog.Warn("profile_fetch: twitter error", slog.Any("error", err))
					return err
				}
				mu.Lock()
				out.Social = social
				mu.Unlock()
				return nil
			})
		}
		wg.Wait()

		if out.GitHub == nil && out.LinkedIn == nil && len(out.HFModels) == 0 && out.Social == nil {
			return nil, out, fmt.Errorf("profile_fetch: all sources failed: %v", out.Errors)
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
