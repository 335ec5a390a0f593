package sources

import (
	"errors"
	"testing"
)

func TestParseLinkedInProfile_NestedEducation(t *testing.T) {
	raw := map[string]any{
		"username":    "dev",
		"connections": float64(350),
		"skills":      []any{"Go", "SQL"},
		"education": []any{
			map[string]any{
				"Colleges": []any{
					map[string]any{
						"name":           "Tech University",
						"degree":         "BSc",
						"field_of_study": "Computer Science",
						"start_year":     float64(2018),
						"end_year":       float64(2022),
					},
				},
				"Schools": []any{
					map[string]any{
						"name":           "Central High",
						"class_name":     "12th",
						"subjects_taken": "Math, Physics",
					},
				},
			},
		},
	}

	out, dropped := ParseLinkedInProfile(raw)
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped entries: %v", dropped)
	}
	if out.Username != "dev" || out.Connections != 350 {
		t.Errorf("scalars not parsed: %+v", out)
	}
	if len(out.Skills) != 2 {
		t.Errorf("skills = %v, want 2 entries", out.Skills)
	}
	if len(out.Education) != 2 {
		t.Fatalf("education = %d entries, want 2", len(out.Education))
	}
	if out.Education[0].Kind != "College" || out.Education[0].Degree != "BSc" {
		t.Errorf("college entry wrong: %+v", out.Education[0])
	}
	if out.Education[1].Kind != "School" || out.Education[1].ClassName != "12th" {
		t.Errorf("school entry wrong: %+v", out.Education[1])
	}
}

func TestParseLinkedInProfile_FlatEducation(t *testing.T) {
	raw := map[string]any{
		"username": "dev",
		"education": []any{
			map[string]any{"name": "Tech University", "degree": "MSc"},
		},
	}
	out, dropped := ParseLinkedInProfile(raw)
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped entries: %v", dropped)
	}
	if len(out.Education) != 1 || out.Education[0].Kind != "College" {
		t.Fatalf("flat education not parsed: %+v", out.Education)
	}
}

func TestParseLinkedInProfile_MalformedEntriesDroppedNotFatal(t *testing.T) {
	raw := map[string]any{
		"username": "dev",
		"education": []any{
			"just a string",
			map[string]any{"Colleges": []any{
				map[string]any{"degree": "BSc"}, // missing name
				map[string]any{"name": "Good College"},
			}},
		},
		"posts": []any{
			42,
			map[string]any{"content": "hello", "likes": float64(3)},
		},
	}

	out, dropped := ParseLinkedInProfile(raw)
	if len(dropped) != 3 {
		t.Fatalf("dropped = %d errors, want 3: %v", len(dropped), dropped)
	}
	for _, err := range dropped {
		var me *MalformedEntryError
		if !errors.As(err, &me) {
			t.Errorf("dropped error not a MalformedEntryError: %v", err)
		}
	}
	if len(out.Education) != 1 || out.Education[0].Name != "Good College" {
		t.Errorf("well-formed sibling lost: %+v", out.Education)
	}
	if len(out.Posts) != 1 || out.Posts[0].Engagement.Likes != 3 {
		t.Errorf("well-formed post lost: %+v", out.Posts)
	}
}

func TestParseLinkedInProfile_AlternateKeys(t *testing.T) {
	raw := map[string]any{
		"username":        "dev",
		"Certifications":  []any{"AWS Certified Developer"},
		"Honorsawards":    []any{"Dean's List"},
		"postimpression":  float64(1200),
		"no_of_posts":     float64(8),
		"Followers_count": float64(940),
	}
	out, _ := ParseLinkedInProfile(raw)
	if len(out.Certifications) != 1 {
		t.Errorf("Certifications alt key not read: %v", out.Certifications)
	}
	if len(out.HonorsAndAwards) != 1 {
		t.Errorf("Honorsawards alt key not read: %v", out.HonorsAndAwards)
	}
	if out.PostImpressions != 1200 || out.PostCount != 8 || out.FollowersCount != 940 {
		t.Errorf("counter alt keys not read: %+v", out)
	}
}

func TestParseLinkedInProfile_NilInput(t *testing.T) {
	out, dropped := ParseLinkedInProfile(nil)
	if out == nil {
		t.Fatal("nil input must still yield an extract")
	}
	if len(dropped) != 0 {
		t.Errorf("unexpected dropped entries: %v", dropped)
	}
}

func TestParseGitHubAnalysis(t *testing.T) {
	raw := map[string]any{
		"profile": map[string]any{
			"login":    "dev",
			"company":  "Acme",
			"location": "Berlin",
		},
		"repos": []any{
			map[string]any{
				"name":             "cache-kit",
				"primary_language": "Go",
				"stars":            float64(12),
				"forks":            float64(3),
			},
			map[string]any{"description": "no name"},
		},
		"followers": []any{"a", "b", "c"},
	}

	out, dropped := ParseGitHubAnalysis(raw)
	if len(dropped) != 1 {
		t.Fatalf("dropped = %d, want 1 (nameless repo): %v", len(dropped), dropped)
	}
	if out.Username != "dev" {
		t.Errorf("username = %q", out.Username)
	}
	if len(out.Company) != 1 || out.Company[0] != "Acme" {
		t.Errorf("scalar company should become a one-element list: %v", out.Company)
	}
	if out.RepoCount != 1 || out.StarsTotal != 12 || out.ForksTotal != 3 {
		t.Errorf("repo aggregates wrong: %+v", out)
	}
	if out.FollowersCount != 3 {
		t.Errorf("followers fallback to list length, got %d", out.FollowersCount)
	}
}

func TestParseGitHubAnalysis_NilSafe(t *testing.T) {
	out, dropped := ParseGitHubAnalysis(nil)
	if out == nil || len(dropped) != 0 {
		t.Fatalf("nil input must yield an empty extract, got %+v / %v", out, dropped)
	}
	out, _ = ParseGitHubAnalysis(map[string]any{"repos": []any{}})
	if out.RepoCount != 0 {
		t.Errorf("empty repos should count 0, got %d", out.RepoCount)
	}
}
