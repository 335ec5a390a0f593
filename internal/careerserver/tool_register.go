package careerserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine/profile"
	"github.com/lakshsetu/go_career/internal/store"
)

// UserRegisterInput is a complete profile document for a new user.
type UserRegisterInput struct {
	Profile profile.UserProfile `json:"profile"`
}

// UserRegisterOutput confirms the created registration row.
type UserRegisterOutput struct {
	User    *store.RegisteredUser `json:"user"`
	Message string                `json:"message"`
}

func registerUserRegister(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "user_register",
		Description: "Register a new user with their profile document. Stores locally in SQLite and mirrors to Postgres when configured. Duplicate emails are rejected.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input UserRegisterInput) (*mcp.CallToolResult, UserRegisterOutput, error) {
		user, err := store.RegisterUser(ctx, input.Profile)
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, UserRegisterOutput{}, errors.New("user with this email already exists")
		}
		if err != nil {
			return nil, UserRegisterOutput{}, err
		}

		// Postgres mirror is best-effort: registration stands even if the
		// document store is down.
		if db := store.GetProfileDB(); db != nil {
			if err := db.UpsertProfile(ctx, input.Profile); err != nil {
				slog.Warn("user_register: postgres mirror failed",
					slog.String("email", input.Profile.Email),
					slog.Any("error", err))
			}
		}

		return nil, UserRegisterOutput{
			User:    user,
			Message: "User registered successfully",
		}, nil
	})
}
