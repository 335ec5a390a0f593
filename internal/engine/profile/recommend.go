package profile

import (
	"fmt"
	"strings"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/sources"
)

// ApprovalStatus is the decision state of a recommendation or task.
// Deferred is the initial state; Approved/Rejected are terminal and set
// exactly once per cycle by an external decision source.
type ApprovalStatus string

const (
	Approved ApprovalStatus = "Approved"
	Deferred ApprovalStatus = "Deferred"
	Rejected ApprovalStatus = "Rejected"
)

// ParseDecision maps a free-form decision token to an ApprovalStatus.
// Unrecognized tokens fall back to Deferred — never silently approve.
func ParseDecision(token string) ApprovalStatus {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "approved", "approve", "yes":
		return Approved
	case "rejected", "reject", "no":
		return Rejected
	}
	return Deferred
}

// Recommendation is a ranked, justified career action. Ephemeral —
// regenerated each cycle; only the title survives into the profile's
// recommendations field.
type Recommendation struct {
	Title            string         `json:"title"`
	Reason           string         `json:"reason,omitempty"`
	Priority         int            `json:"priority"` // 1 = highest .. 5 = lowest; informational, not a sort key
	SuggestedActions []string       `json:"suggested_actions"`
	ApprovalStatus   ApprovalStatus `json:"approval_status"`
}

// TrendingSkills is the fixed reference list the skill-gap rule checks
// against. Matching is case-insensitive.
var TrendingSkills = []string{
	"Go", "Rust", "TypeScript", "Python",
	"Kubernetes", "Docker", "PostgreSQL",
	"Machine Learning", "AWS", "React",
}

// Recommend evaluates the rule set against a merged profile and the
// freshest extracts, returning the updated profile and the recommendation
// list. Deterministic and side-effect free; output order follows rule
// evaluation order, not priority.
//
// The returned profile carries the derived fields recomputed: trending
// skills, skill gap analysis, recommendation titles, and network
// opportunities.
func Recommend(p UserProfile, gh *sources.GitHubExtract, li *sources.LinkedInExtract) (UserProfile, []Recommendation) {
	engine.IncrRecommendCalls()
	out := p.Clone()
	recs := []Recommendation{}

	out.TrendingSkills = append([]string(nil), TrendingSkills...)
	out.SkillGapAnalysis = nil
	out.NetworkOpportunities = nil

	// Rule 1: skill gap (priority 1).
	if len(out.Skills) > 0 {
		missing := missingTrendingSkills(out.Skills)
		if len(missing) > 0 {
			out.SkillGapAnalysis = &SkillGap{
				Trending: append([]string(nil), TrendingSkills...),
				Missing:  missing,
			}
			top := missing
			if len(top) > 3 {
				top = top[:3]
			}
			recs = append(recs, Recommendation{
				Title:    "Close top skill gaps",
				Reason:   "Trending skills missing from your profile: " + strings.Join(top, ", "),
				Priority: 1,
				SuggestedActions: []string{
					"Pick one missing skill and complete an introductory course",
					"Build a small project that exercises it end to end",
					"Add the project and skill to your public profiles",
				},
				ApprovalStatus: Deferred,
			})
		}
	}

	// Rule 2: freshest repository polish (priority 2).
	if repo := freshestRepo(gh); repo != nil {
		recs = append(recs, Recommendation{
			Title:    "Polish your most active repository",
			Reason:   fmt.Sprintf("%q is your most recently updated repository (last push %s)", repo.Name, repo.LastUpdated),
			Priority: 2,
			SuggestedActions: []string{
				fmt.Sprintf("Write or refresh the README for %s", repo.Name),
				"Add a short demo or screenshots",
				"Pin it on your profile",
			},
			ApprovalStatus: Deferred,
		})
	}

	// Rule 3: zero posts (priority 2).
	if li != nil && li.PostCount == 0 {
		recs = append(recs, Recommendation{
			Title:    "Post on LinkedIn",
			Reason:   "Your LinkedIn has no posts; regular posting builds visibility",
			Priority: 2,
			SuggestedActions: []string{
				"Share a short write-up about a recent project",
				"Post once a week for a month",
			},
			ApprovalStatus: Deferred,
		})
	}

	// Rule 4: network growth (priority 3).
	if li != nil && li.Connections < 200 {
		recs = append(recs, Recommendation{
			Title:    "Grow your professional network",
			Reason:   fmt.Sprintf("You have %d connections; 200+ improves reach and search ranking", li.Connections),
			Priority: 3,
			SuggestedActions: []string{
				"Connect with classmates and colleagues",
				"Join two communities in your field and engage weekly",
			},
			ApprovalStatus: Deferred,
		})
		out.NetworkOpportunities = []string{
			"Alumni groups from your education history",
			"Open-source communities around your top skills",
		}
	}

	// Rule 5: certification utilization (priority 2).
	if len(out.Certifications) > 0 && len(out.Projects) == 0 {
		recs = append(recs, Recommendation{
			Title:    "Turn a certification into a project",
			Reason:   "You hold certifications but no projects demonstrate them",
			Priority: 2,
			SuggestedActions: []string{
				"Pick your strongest certification and build a small applied project",
				"Publish it with a write-up linking back to the credential",
			},
			ApprovalStatus: Deferred,
		})
	}

	// Lossy projection: only titles survive into the profile, as a
	// lightweight audit trail of what was suggested this cycle.
	out.Recommendations = make([]string, 0, len(recs))
	for _, r := range recs {
		out.Recommendations = append(out.Recommendations, r.Title)
	}
	return out, recs
}

// missingTrendingSkills returns reference skills absent from the profile,
// compared case-insensitively, in reference-list order.
func missingTrendingSkills(skills []Skill) []string {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[engine.KeyFold(s.Name)] = true
	}
	var missing []string
	for _, t := range TrendingSkills {
		if !have[engine.KeyFold(t)] {
			missing = append(missing, t)
		}
	}
	return missing
}

// freshestRepo picks the repository with the maximum last-updated timestamp.
// Ties break to the first-encountered in input order. RFC 3339 timestamps
// compare correctly as strings.
func freshestRepo(gh *sources.GitHubExtract) *sources.Repository {
	if gh == nil {
		return nil
	}
	var best *sources.Repository
	for i := range gh.Repositories {
		r := &gh.Repositories[i]
		if r.LastUpdated == "" {
			continue
		}
		if best == nil || r.LastUpdated > best.LastUpdated {
			best = r
		}
	}
	return best
}
