package profile

import (
	"strings"
	"testing"

	"github.com/lakshsetu/go_career/internal/engine/sources"
)

func TestPersonalizedQuestions_EmptyProfile(t *testing.T) {
	p := UserProfile{ID: 1, Email: "dev@example.com", Name: "Dev"}
	questions := PersonalizedQuestions(&p)

	// 5 missing-field questions + 2 enrichment questions.
	if len(questions) != 7 {
		t.Fatalf("expected 7 questions, got %d: %v", len(questions), questions)
	}
	if questions[0] != questionLocation {
		t.Errorf("first question should ask for location, got %q", questions[0])
	}
}

func TestPersonalizedQuestions_FilledProfile(t *testing.T) {
	p := UserProfile{
		ID: 1, Email: "dev@example.com", Name: "Dev",
		Location:       "Berlin",
		Skills:         []Skill{{Name: "go"}},
		Projects:       []Project{{Name: "svc"}},
		Certifications: []Certification{{Title: "OCP"}},
		Blogs:          []Blog{{Title: "post"}},
	}
	questions := PersonalizedQuestions(&p)
	if len(questions) != 2 {
		t.Fatalf("expected only the 2 enrichment questions, got %d: %v", len(questions), questions)
	}
}

func TestProposeValidationTasks(t *testing.T) {
	p := UserProfile{
		ID: 1, Email: "dev@example.com", Name: "Dev",
		Skills: []Skill{{Name: "go"}, {Name: "rust"}, {Name: "python"}, {Name: "sql"}},
	}
	tasks := ProposeValidationTasks(&p)
	if len(tasks) != 3 {
		t.Fatalf("expected tasks capped at 3, got %d", len(tasks))
	}
	if tasks[0].RelatedSkill != "go" {
		t.Errorf("first task should target first skill, got %q", tasks[0].RelatedSkill)
	}
}

func TestProposeValidationTasks_NoSkills(t *testing.T) {
	p := UserProfile{ID: 1, Email: "dev@example.com", Name: "Dev"}
	tasks := ProposeValidationTasks(&p)
	if len(tasks) != 1 {
		t.Fatalf("expected one fallback task, got %d", len(tasks))
	}
	if tasks[0].Title != "Create a portfolio README" {
		t.Errorf("unexpected fallback task: %q", tasks[0].Title)
	}
}

func TestRunInteraction_NilCallbacksDeferEverything(t *testing.T) {
	p := UserProfile{ID: 1, Email: "dev@example.com", Name: "Dev"}
	li := &sources.LinkedInExtract{Username: "dev", Connections: 10}

	result := RunInteraction(p, nil, li, nil, Callbacks{})

	if len(result.Decisions) == 0 {
		t.Fatal("expected decisions for generated recommendations")
	}
	for _, d := range result.Decisions {
		if d.Decision != Deferred {
			t.Errorf("nil Confirm must defer, got %v for %q", d.Decision, d.Title)
		}
	}
	if len(result.ApprovedTasks) != 0 {
		t.Error("no task should be approved without a Confirm callback")
	}
}

func TestRunInteraction_LocationAnswerApplied(t *testing.T) {
	p := UserProfile{ID: 1, Email: "dev@example.com", Name: "Dev"}

	cb := Callbacks{
		Ask: func(prompt string) string {
			if prompt == questionLocation {
				return "Lisbon, Portugal"
			}
			return ""
		},
	}
	result := RunInteraction(p, nil, nil, nil, cb)
	if result.Profile.Location != "Lisbon, Portugal" {
		t.Errorf("location answer not applied, got %q", result.Profile.Location)
	}
}

func TestRunInteraction_ApprovedTaskBecomesPlannedProject(t *testing.T) {
	p := UserProfile{
		ID: 1, Email: "dev@example.com", Name: "Dev",
		Skills: []Skill{{Name: "go", Strength: StrengthHigh}},
	}

	var saved *UserProfile
	cb := Callbacks{
		Confirm: func(prompt string) string {
			if strings.HasPrefix(prompt, "Task:") {
				return "approve"
			}
			return "reject"
		},
		SaveProfile: func(p UserProfile) error {
			saved = &p
			return nil
		},
	}

	result := RunInteraction(p, nil, nil, nil, cb)

	if len(result.ApprovedTasks) == 0 {
		t.Fatal("expected approved tasks")
	}
	found := false
	for _, proj := range result.Profile.Projects {
		if strings.HasPrefix(proj.Name, "Planned: ") {
			found = true
		}
	}
	if !found {
		t.Error("approved task should appear as a Planned: project")
	}
	if saved == nil {
		t.Fatal("SaveProfile callback not invoked")
	}
	if len(saved.Projects) != len(result.Profile.Projects) {
		t.Error("saved profile should match the returned profile")
	}
}

func TestRunInteraction_FeedbackBuckets(t *testing.T) {
	p := UserProfile{ID: 1, Email: "dev@example.com", Name: "Dev"}
	li := &sources.LinkedInExtract{Username: "dev", Connections: 10, PostCount: 0}

	var fb *Feedback
	cb := Callbacks{
		Confirm: func(prompt string) string {
			if strings.Contains(prompt, "Post on LinkedIn") {
				return "yes"
			}
			if strings.Contains(prompt, "Grow your professional network") {
				return "no"
			}
			return ""
		},
		TuneTrendModel: func(f Feedback) { fb = &f },
	}

	RunInteraction(p, nil, li, nil, cb)

	if fb == nil {
		t.Fatal("TuneTrendModel not invoked")
	}
	if len(fb.Approved) != 1 || fb.Approved[0] != "Post on LinkedIn" {
		t.Errorf("unexpected approved bucket: %v", fb.Approved)
	}
	if len(fb.Rejected) != 1 || fb.Rejected[0] != "Grow your professional network" {
		t.Errorf("unexpected rejected bucket: %v", fb.Rejected)
	}
}

func TestRunInteraction_EventsLogged(t *testing.T) {
	p := UserProfile{ID: 1, Email: "dev@example.com", Name: "Dev"}

	var external []Event
	cb := Callbacks{LogEvent: func(e Event) { external = append(external, e) }}

	result := RunInteraction(p, nil, nil, nil, cb)

	if len(result.Events) == 0 {
		t.Fatal("expected events in the result")
	}
	if len(external) != len(result.Events) {
		t.Errorf("external sink got %d events, result carries %d", len(external), len(result.Events))
	}
}
