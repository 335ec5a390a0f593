// Package sources defines the validated, source-specific extract types fed
// into profile alignment, plus the lenient parsers and fetchers that
// produce them. Dynamic scraped shapes never leak past this package.
package sources

import (
	"fmt"
	"strings"
	"time"
)

// Canonical source identifiers, used as Meta.Source and as certification
// issuer names for string-only credential titles.
const (
	SourceGitHub      = "GitHub"
	SourceLinkedIn    = "LinkedIn"
	SourceHuggingFace = "HuggingFace"
	SourceTwitter     = "Twitter"
)

// Meta stamps an extract with its origin.
type Meta struct {
	Source    string    `json:"source"`
	SourceURL string    `json:"source_url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Engagement holds generic engagement counters. All non-negative.
type Engagement struct {
	Views       int `json:"views,omitempty"`
	Likes       int `json:"likes,omitempty"`
	Comments    int `json:"comments,omitempty"`
	Shares      int `json:"shares,omitempty"`
	Stars       int `json:"stars,omitempty"`
	Forks       int `json:"forks,omitempty"`
	Impressions int `json:"impressions,omitempty"`
}

func (e *Engagement) validate(entity string) error {
	for _, c := range []struct {
		name string
		v    int
	}{
		{"views", e.Views}, {"likes", e.Likes}, {"comments", e.Comments},
		{"shares", e.Shares}, {"stars", e.Stars}, {"forks", e.Forks},
		{"impressions", e.Impressions},
	} {
		if c.v < 0 {
			return fmt.Errorf("%s: engagement %s must be non-negative, got %d", entity, c.name, c.v)
		}
	}
	return nil
}

// Repository is one repository in a GitHub extract.
type Repository struct {
	Name        string     `json:"repository_name"`
	Description string     `json:"description"`
	Language    string     `json:"primary_language,omitempty"`
	URL         string     `json:"url,omitempty"`
	LastUpdated string     `json:"last_updated,omitempty"` // RFC 3339 as returned by the API
	Engagement  Engagement `json:"engagement"`
}

// GitHubExtract is the code-hosting profile snapshot.
type GitHubExtract struct {
	Meta           Meta         `json:"meta"`
	Username       string       `json:"username"`
	Bio            string       `json:"bio,omitempty"`
	Email          string       `json:"email,omitempty"`
	Company        []string     `json:"company,omitempty"`
	Location       string       `json:"location,omitempty"`
	Blog           string       `json:"blog,omitempty"`
	Twitter        string       `json:"twitter,omitempty"`
	Repositories   []Repository `json:"repositories"`
	RepoCount      int          `json:"no_of_repositories"`
	StarsTotal     int          `json:"stars_count"`
	ForksTotal     int          `json:"forks_count"`
	Contributions  int          `json:"contributions_count"`
	FollowersCount int          `json:"followers_count"`
	FollowingCount int          `json:"following_count"`
}

// Validate checks the extract invariants.
func (g *GitHubExtract) Validate() error {
	if strings.TrimSpace(g.Username) == "" {
		return fmt.Errorf("github extract: username required")
	}
	for _, c := range []struct {
		name string
		v    int
	}{
		{"no_of_repositories", g.RepoCount}, {"stars_count", g.StarsTotal},
		{"forks_count", g.ForksTotal}, {"contributions_count", g.Contributions},
		{"followers_count", g.FollowersCount}, {"following_count", g.FollowingCount},
	} {
		if c.v < 0 {
			return fmt.Errorf("github extract: %s must be non-negative, got %d", c.name, c.v)
		}
	}
	for i := range g.Repositories {
		r := &g.Repositories[i]
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("github extract: repository %d: name required", i)
		}
		if err := r.Engagement.validate("repository " + r.Name); err != nil {
			return fmt.Errorf("github extract: %w", err)
		}
	}
	return nil
}

// Education is one flattened education entry (college or school).
type Education struct {
	Name          string `json:"name"`
	Degree        string `json:"degree,omitempty"`
	FieldOfStudy  string `json:"field_of_study,omitempty"`
	ClassName     string `json:"class_name,omitempty"`
	SubjectsTaken string `json:"subjects_taken,omitempty"`
	StartYear     int    `json:"start_year,omitempty"`
	EndYear       int    `json:"end_year,omitempty"`
	Kind          string `json:"education_type"` // "College" or "School"
}

// Post is one professional-network post.
type Post struct {
	Content    string     `json:"content"`
	PostedAt   string     `json:"posted_at,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Engagement Engagement `json:"engagement"`
}

// LinkedInExtract is the professional-network profile snapshot.
type LinkedInExtract struct {
	Meta                  Meta        `json:"meta"`
	Username              string      `json:"username"`
	Email                 string      `json:"email,omitempty"`
	Headline              string      `json:"headline,omitempty"`
	Location              string      `json:"location,omitempty"`
	Connections           int         `json:"connections"`
	Skills                []string    `json:"skills"`
	Education             []Education `json:"education"`
	Posts                 []Post      `json:"posts"`
	PostImpressions       int         `json:"post_impressions"`
	PostCount             int         `json:"post_count"`
	FollowersCount        int         `json:"followers_count"`
	ProfileViewers        int         `json:"profile_viewers"`
	MeaningfulConnections int         `json:"meaningful_connections"`
	SearchAppearances     int         `json:"search_appearances"`
	ProfileStrength       int         `json:"profile_strength"` // 0..100
	Certifications        []string    `json:"certifications"`
	HonorsAndAwards       []string    `json:"honors_and_awards"`
}

// Validate checks the extract invariants.
func (l *LinkedInExtract) Validate() error {
	if strings.TrimSpace(l.Username) == "" {
		return fmt.Errorf("linkedin extract: username required")
	}
	for _, c := range []struct {
		name string
		v    int
	}{
		{"connections", l.Connections}, {"post_impressions", l.PostImpressions},
		{"post_count", l.PostCount}, {"followers_count", l.FollowersCount},
		{"profile_viewers", l.ProfileViewers},
		{"meaningful_connections", l.MeaningfulConnections},
		{"search_appearances", l.SearchAppearances},
	} {
		if c.v < 0 {
			return fmt.Errorf("linkedin extract: %s must be non-negative, got %d", c.name, c.v)
		}
	}
	if l.ProfileStrength < 0 || l.ProfileStrength > 100 {
		return fmt.Errorf("linkedin extract: profile_strength must be in [0,100], got %d", l.ProfileStrength)
	}
	for i := range l.Posts {
		if err := l.Posts[i].Engagement.validate(fmt.Sprintf("post %d", i)); err != nil {
			return fmt.Errorf("linkedin extract: %w", err)
		}
	}
	return nil
}

// HFModelExtract is one model-hub entry.
type HFModelExtract struct {
	Meta         Meta     `json:"meta"`
	ModelID      string   `json:"model_id"` // "author/name"
	Task         string   `json:"task,omitempty"`
	URL          string   `json:"url,omitempty"`
	Likes        int      `json:"likes"`
	Downloads    int      `json:"downloads"`
	LastModified string   `json:"last_modified,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Validate checks the extract invariants.
func (m *HFModelExtract) Validate() error {
	if strings.TrimSpace(m.ModelID) == "" {
		return fmt.Errorf("hf extract: model_id required")
	}
	if m.Likes < 0 {
		return fmt.Errorf("hf extract %s: likes must be non-negative, got %d", m.ModelID, m.Likes)
	}
	if m.Downloads < 0 {
		return fmt.Errorf("hf extract %s: downloads must be non-negative, got %d", m.ModelID, m.Downloads)
	}
	return nil
}

// Author returns the owner part of the model ID, or "" if not namespaced.
func (m *HFModelExtract) Author() string {
	if parts := strings.SplitN(m.ModelID, "/", 2); len(parts) == 2 {
		return parts[0]
	}
	return ""
}
