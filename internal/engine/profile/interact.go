package profile

import (
	"fmt"
	"strings"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/sources"
)

// Event is one entry in the interaction log.
type Event struct {
	Type    string         `json:"event_type"`
	Message string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
}

// ValidationTask is a proposed micro-project for validating a claimed skill.
type ValidationTask struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	RelatedSkill    string `json:"related_skill,omitempty"`
	ExpectedOutcome string `json:"expected_outcome,omitempty"`
	Difficulty      string `json:"difficulty"`
}

// DecisionRecord pairs a recommendation title with the decision taken on it.
type DecisionRecord struct {
	Title    string         `json:"title"`
	Decision ApprovalStatus `json:"decision"`
}

// Feedback summarizes cycle decisions for an optional trend-model tuner.
type Feedback struct {
	Approved []string `json:"approved_recs"`
	Deferred []string `json:"deferred_recs"`
	Rejected []string `json:"rejected_recs"`
}

// Callbacks are the external collaborators an interaction cycle talks to.
// All optional: a nil Ask yields empty answers, a nil Confirm defers every
// decision (never silently approves), nil sinks are skipped.
type Callbacks struct {
	Ask            func(prompt string) string
	Confirm        func(prompt string) string
	SaveProfile    func(UserProfile) error
	LogEvent       func(Event)
	TuneTrendModel func(Feedback)
}

func (cb *Callbacks) ask(prompt string) string {
	if cb.Ask == nil {
		return ""
	}
	return cb.Ask(prompt)
}

func (cb *Callbacks) confirm(prompt string) ApprovalStatus {
	if cb.Confirm == nil {
		return Deferred
	}
	return ParseDecision(cb.Confirm(prompt))
}

// InteractionResult is the full outcome of one interaction cycle.
type InteractionResult struct {
	Profile         UserProfile      `json:"updated_profile"`
	Questions       []string         `json:"questions"`
	Answers         map[string]string `json:"answers"`
	Recommendations []Recommendation `json:"recommendations"`
	Decisions       []DecisionRecord `json:"decisions"`
	ApprovedTasks   []ValidationTask `json:"approved_tasks"`
	Events          []Event          `json:"events"`
}

const questionLocation = "What's your current city and country?"

// missingProfileFields lists the profile fields worth asking about.
func missingProfileFields(p *UserProfile) []string {
	var missing []string
	if p.Location == "" {
		missing = append(missing, "location")
	}
	if len(p.Skills) == 0 {
		missing = append(missing, "skills")
	}
	if len(p.Projects) == 0 {
		missing = append(missing, "projects")
	}
	if len(p.Certifications) == 0 {
		missing = append(missing, "certifications")
	}
	if len(p.Blogs) == 0 {
		missing = append(missing, "blogs")
	}
	return missing
}

// PersonalizedQuestions builds the question list for a profile: one per
// missing field, plus two enrichment questions asked every cycle.
func PersonalizedQuestions(p *UserProfile) []string {
	var questions []string
	for _, field := range missingProfileFields(p) {
		switch field {
		case "location":
			questions = append(questions, questionLocation)
		case "skills":
			questions = append(questions, "List your top 5 skills with self-rated strength (Beginner/Intermediate/Advanced).")
		case "projects":
			questions = append(questions, "Share 2-3 recent projects (title, one-line description, tech used, link).")
		case "certifications":
			questions = append(questions, "Do you have any certifications? Provide title, issuer, and date.")
		case "blogs":
			questions = append(questions, "Have you written any blogs or posts? Provide title, link, and brief summary.")
		}
	}
	questions = append(questions,
		"Which roles are you targeting in the next 6 months (e.g., Data Engineer, ML Engineer)?",
		"What industries interest you most (e.g., FinTech, Health, EdTech)?",
	)
	return questions
}

// ProposeValidationTasks suggests a micro-project per top skill (up to 3),
// or a portfolio README task when the profile has no skills yet.
func ProposeValidationTasks(p *UserProfile) []ValidationTask {
	var tasks []ValidationTask
	for i, s := range p.Skills {
		if i >= 3 {
			break
		}
		tasks = append(tasks, ValidationTask{
			Title:           "Build a micro-project in " + s.Name,
			Description:     fmt.Sprintf("Create a weekend-sized project showcasing %s. Include README and a short demo.", s.Name),
			RelatedSkill:    s.Name,
			ExpectedOutcome: "Public repo with README, small demo (GIF/video), and a short write-up.",
			Difficulty:      StrengthMedium,
		})
	}
	if len(tasks) == 0 {
		tasks = append(tasks, ValidationTask{
			Title:           "Create a portfolio README",
			Description:     "Draft a GitHub profile README summarizing your skills, projects, and goals.",
			ExpectedOutcome: "A clear README with links to 2-3 projects and contact info.",
			Difficulty:      StrengthMedium,
		})
	}
	return tasks
}

// RunInteraction drives one question/approval cycle:
//
//  1. ask personalized questions and apply lightweight enrichments
//  2. align extracts, generate recommendations, collect decisions
//  3. propose skill validation tasks; an approved task becomes a
//     "Planned:" project on the profile
//
// The recommendation list is a fixed snapshot for the loop's duration.
// Persistence and logging happen only through the injected callbacks.
func RunInteraction(p UserProfile, gh *sources.GitHubExtract, li *sources.LinkedInExtract, hfModels []sources.HFModelExtract, cb Callbacks) InteractionResult {
	engine.IncrInteractionCycles()

	result := InteractionResult{Answers: map[string]string{}}
	logEvent := func(evt Event) {
		result.Events = append(result.Events, evt)
		if cb.LogEvent != nil {
			cb.LogEvent(evt)
		}
	}

	// 1) Personalized questions.
	result.Questions = PersonalizedQuestions(&p)
	for _, q := range result.Questions {
		ans := cb.ask(q)
		result.Answers[q] = ans
		logEvent(Event{Type: "question", Message: q, Payload: map[string]any{"answer": ans}})
	}
	if ans := strings.TrimSpace(result.Answers[questionLocation]); ans != "" && p.Location == "" {
		p.Location = ans
	}

	// 2) Align and recommend.
	aligned := Align(p, gh, li, hfModels)
	aligned, recs := Recommend(aligned, gh, li)
	result.Recommendations = recs

	for i := range recs {
		rec := &recs[i]
		prompt := fmt.Sprintf("Recommendation: %s\nWhy: %s\nActions: %s\nApprove, Defer, or Reject?",
			rec.Title, rec.Reason, strings.Join(rec.SuggestedActions, ", "))
		decision := cb.confirm(prompt)
		rec.ApprovalStatus = decision
		result.Decisions = append(result.Decisions, DecisionRecord{Title: rec.Title, Decision: decision})
		logEvent(Event{Type: "recommendation_decision", Message: rec.Title, Payload: map[string]any{"decision": string(decision)}})
	}

	// 3) Validation tasks.
	for _, task := range ProposeValidationTasks(&aligned) {
		decision := cb.confirm(fmt.Sprintf("Task: %s\n%s\nApprove?", task.Title, task.Description))
		logEvent(Event{Type: "task_decision", Message: task.Title, Payload: map[string]any{"decision": string(decision)}})
		if decision != Approved {
			continue
		}
		result.ApprovedTasks = append(result.ApprovedTasks, task)
		planned := Project{
			Name:        "Planned: " + task.Title,
			Description: task.Description,
		}
		if task.RelatedSkill != "" {
			planned.Technologies = []string{task.RelatedSkill}
		}
		mergeProject(&aligned, planned)
	}

	if cb.SaveProfile != nil {
		if err := cb.SaveProfile(aligned); err != nil {
			logEvent(Event{Type: "save_error", Message: err.Error()})
		}
	}
	if cb.TuneTrendModel != nil {
		fb := Feedback{}
		for _, d := range result.Decisions {
			switch d.Decision {
			case Approved:
				fb.Approved = append(fb.Approved, d.Title)
			case Rejected:
				fb.Rejected = append(fb.Rejected, d.Title)
			default:
				fb.Deferred = append(fb.Deferred, d.Title)
			}
		}
		cb.TuneTrendModel(fb)
	}

	result.Profile = aligned
	return result
}
