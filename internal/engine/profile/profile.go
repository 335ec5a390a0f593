// Package profile holds the canonical cross-source user profile and the
// alignment and recommendation engines that operate on it.
//
// The profile is the long-lived aggregate; source extracts (see the sources
// package) are short-lived snapshots folded into it once per cycle.
package profile

import (
	"slices"
	"strings"
)

// Strength labels used for skills, certifications and content.
const (
	StrengthHigh   = "High"
	StrengthMedium = "Medium"
	StrengthLow    = "Low"
)

// strengthRank orders strength labels so a merge can refuse downgrades.
// Unknown labels rank below Low.
func strengthRank(s string) int {
	switch s {
	case StrengthHigh:
		return 3
	case StrengthMedium:
		return 2
	case StrengthLow:
		return 1
	}
	return 0
}

// Certification is a single credential, keyed by (title, issuer) case-insensitive.
type Certification struct {
	Title        string   `json:"title"`
	Issuer       string   `json:"issuer"`
	IssuedDate   string   `json:"issued_date"`
	CredentialID string   `json:"credential_id,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Strength     string   `json:"certificate_strength,omitempty"`
}

// Project is a single portfolio entry, keyed by lower-cased name.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
	Interactions string   `json:"interactions,omitempty"` // e.g. "12 stars, 3 forks on GitHub"
	SkillsUsed   []string `json:"skills_used,omitempty"`
}

// Blog is a published post or article.
type Blog struct {
	Title         string   `json:"title"`
	Content       string   `json:"content,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Interactions  string   `json:"interactions,omitempty"`
	Strength      string   `json:"strength,omitempty"`
}

// Mention records an influential person or org referencing the user for a skill.
type Mention struct {
	Name     string `json:"mention_name"`
	Context  string `json:"mention_context"`
	Strength string `json:"mention_strength,omitempty"`
}

// Skill is keyed by lower-cased name. Strength is never downgraded by a
// low-confidence signal once set.
type Skill struct {
	Name               string    `json:"skill_name"`
	Strength           string    `json:"skill_strength"`
	Projects           []Project `json:"implemented_projects,omitempty"`
	Blogs              []Blog    `json:"implemented_blogs,omitempty"`
	Achievements       []string  `json:"achievements_of_skills,omitempty"`
	Mentions           []Mention `json:"mentions,omitempty"`
	InfluentialNetwork []string  `json:"influencial_network,omitempty"`
	NetworkStrength    int       `json:"network_strength"`
}

// SkillGap is the derived gap between the profile's skills and the
// trending reference list. Recomputed each cycle, never hand-edited.
type SkillGap struct {
	Trending []string `json:"trending_skills"`
	Missing  []string `json:"missing_skills"`
}

// UserProfile is the canonical aggregate representation of one person,
// merged across sources. Owned by the caller across cycles; the alignment
// engine returns updated copies and never mutates it.
type UserProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	Age         int    `json:"age,omitempty"`
	Location    string `json:"location,omitempty"`
	GitHub      string `json:"github,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	HuggingFace string `json:"huggingface,omitempty"`
	X           string `json:"x,omitempty"`
	Website     string `json:"website,omitempty"`

	Certifications []Certification `json:"certifications,omitempty"`
	Skills         []Skill         `json:"skills,omitempty"`
	Projects       []Project       `json:"projects"`
	Blogs          []Blog          `json:"blogs,omitempty"`
	Achievements   []string        `json:"achievements,omitempty"`

	// Derived fields, recomputed by Recommend each cycle.
	TrendingSkills       []string  `json:"trending_skills,omitempty"`
	SkillGapAnalysis     *SkillGap `json:"skill_gap_analysis,omitempty"`
	Recommendations      []string  `json:"recommendations,omitempty"`
	NetworkOpportunities []string  `json:"network_opportunities,omitempty"`
}

// New constructs a validated profile with the required identity fields.
func New(id int64, email, name string) (UserProfile, error) {
	p := UserProfile{ID: id, Email: email, Name: name, Projects: []Project{}}
	if err := p.Validate(); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

// Validate checks the profile invariants: required identity scalars present,
// no negative counters, strength labels recognized where set.
func (p *UserProfile) Validate() error {
	if p.ID <= 0 {
		return invalid("profile", "id", "must be positive")
	}
	if strings.TrimSpace(p.Email) == "" {
		return invalid("profile", "email", "required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("profile", "name", "required")
	}
	if p.Age < 0 {
		return invalid("profile", "age", "must be non-negative")
	}
	for i := range p.Skills {
		s := &p.Skills[i]
		if strings.TrimSpace(s.Name) == "" {
			return invalid("skill", "skill_name", "required")
		}
		if s.Strength != "" && strengthRank(s.Strength) == 0 {
			return invalid("skill", "skill_strength", "unknown label "+s.Strength)
		}
		if s.NetworkStrength < 0 {
			return invalid("skill", "network_strength", "must be non-negative")
		}
	}
	for i := range p.Projects {
		if strings.TrimSpace(p.Projects[i].Name) == "" {
			return invalid("project", "name", "required")
		}
	}
	for i := range p.Certifications {
		if strings.TrimSpace(p.Certifications[i].Title) == "" {
			return invalid("certification", "title", "required")
		}
	}
	return nil
}

// Clone returns a deep copy. Alignment works on the copy so the caller's
// profile is never mutated.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Certifications = cloneCerts(p.Certifications)
	out.Skills = cloneSkills(p.Skills)
	out.Projects = cloneProjects(p.Projects)
	out.Blogs = cloneBlogs(p.Blogs)
	out.Achievements = slices.Clone(p.Achievements)
	out.TrendingSkills = slices.Clone(p.TrendingSkills)
	out.Recommendations = slices.Clone(p.Recommendations)
	out.NetworkOpportunities = slices.Clone(p.NetworkOpportunities)
	if p.SkillGapAnalysis != nil {
		gap := SkillGap{
			Trending: slices.Clone(p.SkillGapAnalysis.Trending),
			Missing:  slices.Clone(p.SkillGapAnalysis.Missing),
		}
		out.SkillGapAnalysis = &gap
	}
	return out
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, pr := range in {
		pr.Technologies = slices.Clone(pr.Technologies)
		pr.SkillsUsed = slices.Clone(pr.SkillsUsed)
		out[i] = pr
	}
	return out
}

func cloneBlogs(in []Blog) []Blog {
	if in == nil {
		return nil
	}
	out := make([]Blog, len(in))
	for i, b := range in {
		b.Tags = slices.Clone(b.Tags)
		out[i] = b
	}
	return out
}

func cloneCerts(in []Certification) []Certification {
	if in == nil {
		return nil
	}
	out := make([]Certification, len(in))
	for i, c := range in {
		c.Tags = slices.Clone(c.Tags)
		out[i] = c
	}
	return out
}

func cloneSkills(in []Skill) []Skill {
	if in == nil {
		return nil
	}
	out := make([]Skill, len(in))
	for i, s := range in {
		s.Projects = cloneProjects(s.Projects)
		s.Blogs = cloneBlogs(s.Blogs)
		s.Achievements = slices.Clone(s.Achievements)
		s.Mentions = slices.Clone(s.Mentions)
		s.InfluentialNetwork = slices.Clone(s.InfluentialNetwork)
		out[i] = s
	}
	return out
}
