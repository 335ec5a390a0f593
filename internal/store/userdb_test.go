package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lakshsetu/go_career/internal/engine/profile"
)

// resetUserDB resets the singleton so each test gets a fresh DB.
func resetUserDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	// Override HOME so openUserDB uses the temp dir.
	t.Setenv("HOME", dir)
	userDB = nil
	userDBErr = nil
	userDBOnce = sync.Once{}
}

func testProfile(id int64, email string) profile.UserProfile {
	return profile.UserProfile{
		ID:    id,
		Email: email,
		Name:  "Dev Example",
		Skills: []profile.Skill{
			{Name: "go", Strength: profile.StrengthHigh},
		},
	}
}

func TestRegisterUser_Basic(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	user, err := RegisterUser(ctx, testProfile(1, "dev@example.com"))
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	if user.ID <= 0 {
		t.Errorf("expected positive ID, got %d", user.ID)
	}
	if user.Email != "dev@example.com" {
		t.Errorf("email = %q", user.Email)
	}
	if user.CreatedAt == "" {
		t.Error("expected non-empty created_at")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	if _, err := RegisterUser(ctx, testProfile(1, "dev@example.com")); err != nil {
		t.Fatalf("first RegisterUser error: %v", err)
	}
	_, err := RegisterUser(ctx, testProfile(2, "dev@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterUser_InvalidProfile(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	p := testProfile(1, "dev@example.com")
	p.Name = ""
	if _, err := RegisterUser(ctx, p); err == nil {
		t.Error("expected validation error for blank name")
	}
}

func TestGetRegisteredProfile_RoundTrip(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	in := testProfile(7, "dev@example.com")
	if _, err := RegisterUser(ctx, in); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	out, err := GetRegisteredProfile(ctx, "dev@example.com")
	if err != nil {
		t.Fatalf("GetRegisteredProfile error: %v", err)
	}
	if out.ID != 7 || out.Name != "Dev Example" {
		t.Errorf("profile = %+v", out)
	}
	if len(out.Skills) != 1 || out.Skills[0].Name != "go" {
		t.Errorf("skills lost in round trip: %+v", out.Skills)
	}
}

func TestGetRegisteredProfile_NotFound(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	_, err := GetRegisteredProfile(ctx, "missing@example.com")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateRegisteredProfile(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	p := testProfile(1, "dev@example.com")
	if _, err := RegisterUser(ctx, p); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	p.Location = "Berlin"
	p.Projects = []profile.Project{{Name: "cache-kit"}}
	if err := UpdateRegisteredProfile(ctx, p); err != nil {
		t.Fatalf("UpdateRegisteredProfile error: %v", err)
	}

	out, err := GetRegisteredProfile(ctx, "dev@example.com")
	if err != nil {
		t.Fatalf("GetRegisteredProfile error: %v", err)
	}
	if out.Location != "Berlin" || len(out.Projects) != 1 {
		t.Errorf("update not persisted: %+v", out)
	}
}

func TestUpdateRegisteredProfile_NotFound(t *testing.T) {
	resetUserDB(t)
	ctx := context.Background()

	err := UpdateRegisteredProfile(ctx, testProfile(1, "ghost@example.com"))
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
}
