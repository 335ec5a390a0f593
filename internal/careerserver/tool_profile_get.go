package careerserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine/profile"
	"github.com/lakshsetu/go_career/internal/store"
)

// ProfileGetInput identifies a stored profile by email.
type ProfileGetInput struct {
	Email string `json:"email"`
}

// ProfileGetOutput is the stored profile document.
type ProfileGetOutput struct {
	Profile profile.UserProfile `json:"profile"`
	Source  string              `json:"source"`
}

func registerProfileGet(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_get",
		Description: "Load a stored user profile by email. Checks the Postgres document store first, then the local registration database.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ProfileGetInput) (*mcp.CallToolResult, ProfileGetOutput, error) {
		if input.Email == "" {
			return nil, ProfileGetOutput{}, errors.New("email is required")
		}

		if db := store.GetProfileDB(); db != nil {
			p, err := db.GetProfileByEmail(ctx, input.Email)
			if err == nil {
				return nil, ProfileGetOutput{Profile: p, Source: "postgres"}, nil
			}
			if !errors.Is(err, store.ErrProfileNotFound) {
				return nil, ProfileGetOutput{}, err
			}
		}

		p, err := store.GetRegisteredProfile(ctx, input.Email)
		if err != nil {
			return nil, ProfileGetOutput{}, err
		}
		return nil, ProfileGetOutput{Profile: p, Source: "sqlite"}, nil
	})
}
