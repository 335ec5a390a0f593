package profile

import (
	"fmt"
	"slices"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/sources"
)

// Align folds source extracts into a canonical profile and returns the
// merged copy. Pure: neither the input profile nor any extract is mutated,
// and folding the same extracts twice yields the same result as once.
//
// Merge policies, in order of application (LinkedIn before GitHub, so
// professional-network identity fields win when both would set the same
// empty scalar in one call):
//
//   - scalars fill only when currently empty; a value from a prior cycle
//     is never clobbered by re-ingestion
//   - projects merge by lower-cased name, technologies unioned
//   - skills merge by lower-cased name, strength never downgraded
//   - certifications merge by (title, issuer) case-insensitive, first-seen
//     record kept
//
// A nil extract means "no update from this source" and is never an error.
func Align(p UserProfile, gh *sources.GitHubExtract, li *sources.LinkedInExtract, hfModels []sources.HFModelExtract) UserProfile {
	engine.IncrAlignCalls()
	out := p.Clone()

	if li != nil {
		mergeLinkedIn(&out, li)
	}
	if gh != nil {
		mergeGitHub(&out, gh)
	}
	for i := range hfModels {
		mergeHFModel(&out, &hfModels[i])
	}
	return out
}

// fillIfEmpty sets *dst to v only when *dst is empty.
func fillIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func mergeLinkedIn(p *UserProfile, li *sources.LinkedInExtract) {
	fillIfEmpty(&p.LinkedIn, li.Username)
	fillIfEmpty(&p.Location, li.Location)
	fillIfEmpty(&p.Email, li.Email)

	for _, name := range li.Skills {
		mergeSkill(p, name, StrengthMedium)
	}
	for _, title := range li.Certifications {
		mergeCertification(p, Certification{
			Title:      title,
			Issuer:     sources.SourceLinkedIn,
			IssuedDate: "Unknown",
		})
	}
	for _, award := range li.HonorsAndAwards {
		appendUnique(&p.Achievements, award)
	}
}

func mergeGitHub(p *UserProfile, gh *sources.GitHubExtract) {
	fillIfEmpty(&p.GitHub, gh.Username)
	fillIfEmpty(&p.Location, gh.Location)
	fillIfEmpty(&p.Website, gh.Blog)
	fillIfEmpty(&p.X, gh.Twitter)
	fillIfEmpty(&p.Email, gh.Email)

	for i := range gh.Repositories {
		repo := &gh.Repositories[i]
		if repo.Name == "" {
			continue
		}
		proj := repoProject(repo)
		mergeProject(p, proj)
		if repo.Language != "" {
			skill := mergeSkill(p, repo.Language, StrengthMedium)
			attachSkillProject(skill, proj)
		}
	}
}

func mergeHFModel(p *UserProfile, m *sources.HFModelExtract) {
	fillIfEmpty(&p.HuggingFace, m.Author())

	if m.Task != "" {
		mergeSkill(p, m.Task, StrengthMedium)
	}
	for _, tag := range m.Tags {
		if tag != "" {
			mergeSkill(p, tag, StrengthMedium)
		}
	}
}

// repoProject converts a repository into a project entry.
func repoProject(r *sources.Repository) Project {
	proj := Project{
		Name:        r.Name,
		Description: r.Description,
		Link:        r.URL,
	}
	if r.Language != "" {
		proj.Technologies = []string{r.Language}
	}
	if r.Engagement.Stars > 0 || r.Engagement.Forks > 0 {
		proj.Interactions = fmt.Sprintf("%d stars, %d forks on GitHub", r.Engagement.Stars, r.Engagement.Forks)
	}
	return proj
}

// mergeProject appends incoming when its key is new, otherwise merges it
// field-wise into the existing entry: technologies unioned, link and
// interactions filled only when currently empty.
func mergeProject(p *UserProfile, incoming Project) {
	key := engine.KeyFold(incoming.Name)
	for i := range p.Projects {
		if engine.KeyFold(p.Projects[i].Name) != key {
			continue
		}
		existing := &p.Projects[i]
		fillIfEmpty(&existing.Description, incoming.Description)
		fillIfEmpty(&existing.Link, incoming.Link)
		fillIfEmpty(&existing.Interactions, incoming.Interactions)
		for _, tech := range incoming.Technologies {
			unionTech(&existing.Technologies, tech)
		}
		return
	}
	p.Projects = append(p.Projects, incoming)
}

// unionTech appends tech unless already present case-insensitively.
func unionTech(techs *[]string, tech string) {
	key := engine.KeyFold(tech)
	if key == "" {
		return
	}
	for _, t := range *techs {
		if engine.KeyFold(t) == key {
			return
		}
	}
	*techs = append(*techs, tech)
}

// mergeSkill adds a skill by lower-cased key or reinforces an existing one.
// Strength only moves upward: a re-inferred low-confidence signal never
// demotes a skill the user already holds at High.
func mergeSkill(p *UserProfile, name, strength string) *Skill {
	key := engine.KeyFold(name)
	if key == "" {
		return nil
	}
	for i := range p.Skills {
		if engine.KeyFold(p.Skills[i].Name) == key {
			if strengthRank(strength) > strengthRank(p.Skills[i].Strength) {
				p.Skills[i].Strength = strength
			}
			return &p.Skills[i]
		}
	}
	p.Skills = append(p.Skills, Skill{Name: key, Strength: strength})
	return &p.Skills[len(p.Skills)-1]
}

// attachSkillProject records a project as evidence for a skill, deduplicated
// by project name.
func attachSkillProject(s *Skill, proj Project) {
	if s == nil {
		return
	}
	key := engine.KeyFold(proj.Name)
	for i := range s.Projects {
		if engine.KeyFold(s.Projects[i].Name) == key {
			return
		}
	}
	s.Projects = append(s.Projects, proj)
}

// mergeCertification merges by case-insensitive (title, issuer), keeping the
// first-seen record — it is the richer one when a later string-only title
// collides with a full record already present.
func mergeCertification(p *UserProfile, incoming Certification) {
	if incoming.Title == "" {
		return
	}
	key := engine.KeyFold(incoming.Title) + "|" + engine.KeyFold(incoming.Issuer)
	for i := range p.Certifications {
		existing := engine.KeyFold(p.Certifications[i].Title) + "|" + engine.KeyFold(p.Certifications[i].Issuer)
		if existing == key {
			return
		}
	}
	p.Certifications = append(p.Certifications, incoming)
}

// appendUnique appends s unless already present by exact equality.
func appendUnique(list *[]string, s string) {
	if s == "" || slices.Contains(*list, s) {
		return
	}
	*list = append(*list, s)
}
