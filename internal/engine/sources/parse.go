package sources

import (
	"fmt"
	"log/slog"
	"time"
)

// MalformedEntryError records one list item inside raw scraped input that
// could not be parsed. The parsers collect these and continue; a malformed
// item never aborts the whole extract.
type MalformedEntryError struct {
	Source string
	Entry  string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("%s: malformed %s: %s", e.Source, e.Entry, e.Reason)
}

// Raw scraped payloads come with inconsistent key casing and nesting
// depending on which parser produced them. These helpers read a value
// trying several keys in order.

func rawStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func rawInt(m map[string]any, keys ...string) int {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

func rawList(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if l, ok := v.([]any); ok {
				return l
			}
		}
	}
	return nil
}

func rawStrList(m map[string]any, keys ...string) []string {
	var out []string
	for _, v := range rawList(m, keys...) {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseLinkedInProfile converts a raw scraped LinkedIn payload into a
// validated extract. It accepts both observed education shapes — entries
// nested under "Colleges"/"Schools" grouping keys, and a flat list of
// already-typed entries — plus the alternate key spellings the scrapers
// emit (Certifications, Honorsawards, postimpression, no_of_posts,
// Followers_count). Malformed individual entries are dropped and reported;
// parsing never fails on a single bad item.
func ParseLinkedInProfile(raw map[string]any) (*LinkedInExtract, []error) {
	if raw == nil {
		raw = map[string]any{}
	}
	var dropped []error

	out := &LinkedInExtract{
		Meta:                  Meta{Source: SourceLinkedIn, FetchedAt: time.Now().UTC()},
		Username:              rawStr(raw, "username"),
		Email:                 rawStr(raw, "email"),
		Headline:              rawStr(raw, "headline"),
		Location:              rawStr(raw, "location"),
		Connections:           rawInt(raw, "connections"),
		Skills:                rawStrList(raw, "skills"),
		PostImpressions:       rawInt(raw, "post_impressions", "postimpression"),
		PostCount:             rawInt(raw, "post_count", "no_of_posts"),
		FollowersCount:        rawInt(raw, "followers_count", "Followers_count"),
		ProfileViewers:        rawInt(raw, "profile_viewers"),
		MeaningfulConnections: rawInt(raw, "meaningful_connections"),
		SearchAppearances:     rawInt(raw, "search_appearances"),
		ProfileStrength:       rawInt(raw, "profile_strength"),
		Certifications:        rawStrList(raw, "certifications", "Certifications"),
		HonorsAndAwards:       rawStrList(raw, "honors_and_awards", "Honorsawards"),
	}

	for _, entry := range rawList(raw, "education") {
		m, ok := entry.(map[string]any)
		if !ok {
			dropped = append(dropped, &MalformedEntryError{Source: SourceLinkedIn, Entry: "education", Reason: "not an object"})
			continue
		}
		if nested := parseNestedEducation(m, &dropped); len(nested) > 0 {
			out.Education = append(out.Education, nested...)
			continue
		}
		// Flat shape: the entry itself is one education record.
		edu, err := parseFlatEducation(m)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		out.Education = append(out.Education, edu)
	}

	for _, entry := range rawList(raw, "posts") {
		m, ok := entry.(map[string]any)
		if !ok {
			dropped = append(dropped, &MalformedEntryError{Source: SourceLinkedIn, Entry: "post", Reason: "not an object"})
			continue
		}
		out.Posts = append(out.Posts, Post{
			Content:  rawStr(m, "content"),
			PostedAt: rawStr(m, "posted_at", "timestamp"),
			Tags:     rawStrList(m, "tags"),
			Engagement: Engagement{
				Views:       rawInt(m, "views"),
				Likes:       rawInt(m, "likes"),
				Comments:    rawInt(m, "comments"),
				Shares:      rawInt(m, "shares"),
				Impressions: rawInt(m, "impressions"),
			},
		})
	}

	for _, err := range dropped {
		slog.Warn("linkedin parse: entry dropped", slog.Any("error", err))
	}
	return out, dropped
}

// parseNestedEducation handles the {"Colleges": [...], "Schools": [...]}
// grouping shape. Returns nil if the entry carries neither grouping key.
func parseNestedEducation(m map[string]any, dropped *[]error) []Education {
	var out []Education

	colleges := rawList(m, "Colleges", "colleges")
	schools := rawList(m, "Schools", "schools")
	if colleges == nil && schools == nil {
		return nil
	}

	for _, c := range colleges {
		cm, ok := c.(map[string]any)
		if !ok {
			*dropped = append(*dropped, &MalformedEntryError{Source: SourceLinkedIn, Entry: "college", Reason: "not an object"})
			continue
		}
		name := rawStr(cm, "name")
		if name == "" {
			*dropped = append(*dropped, &MalformedEntryError{Source: SourceLinkedIn, Entry: "college", Reason: "missing name"})
			continue
		}
		out = append(out, Education{
			Name:         name,
			Degree:       rawStr(cm, "degree"),
			FieldOfStudy: rawStr(cm, "field_of_study"),
			StartYear:    rawInt(cm, "start_year"),
			EndYear:      rawInt(cm, "end_year"),
			Kind:         "College",
		})
	}
	for _, s := range schools {
		sm, ok := s.(map[string]any)
		if !ok {
			*dropped = append(*dropped, &MalformedEntryError{Source: SourceLinkedIn, Entry: "school", Reason: "not an object"})
			continue
		}
		name := rawStr(sm, "name")
		if name == "" {
			*dropped = append(*dropped, &MalformedEntryError{Source: SourceLinkedIn, Entry: "school", Reason: "missing name"})
			continue
		}
		out = append(out, Education{
			Name:          name,
			ClassName:     rawStr(sm, "class_name"),
			SubjectsTaken: rawStr(sm, "subjects_taken"),
			StartYear:     rawInt(sm, "start_year"),
			EndYear:       rawInt(sm, "end_year"),
			Kind:          "School",
		})
	}
	return out
}

// parseFlatEducation handles an already-typed flat education record.
func parseFlatEducation(m map[string]any) (Education, error) {
	name := rawStr(m, "name", "school")
	if name == "" {
		return Education{}, &MalformedEntryError{Source: SourceLinkedIn, Entry: "education", Reason: "missing name"}
	}
	kind := rawStr(m, "education_type")
	if kind == "" {
		kind = "College"
	}
	return Education{
		Name:          name,
		Degree:        rawStr(m, "degree"),
		FieldOfStudy:  rawStr(m, "field_of_study"),
		ClassName:     rawStr(m, "class_name"),
		SubjectsTaken: rawStr(m, "subjects_taken"),
		StartYear:     rawInt(m, "start_year"),
		EndYear:       rawInt(m, "end_year"),
		Kind:          kind,
	}, nil
}

// ParseGitHubAnalysis converts a raw GitHub profile-analysis payload
// ({"profile": {...}, "repos": [...], "followers": [...]}) into a validated
// extract. Nil-safe on every sub-map; per-repo counters default to zero; a
// scalar company becomes a one-element list; follower/following counts fall
// back to the length of the respective lists when absent.
func ParseGitHubAnalysis(raw map[string]any) (*GitHubExtract, []error) {
	if raw == nil {
		raw = map[string]any{}
	}
	var dropped []error

	prof, _ := raw["profile"].(map[string]any)
	if prof == nil {
		prof = map[string]any{}
	}

	out := &GitHubExtract{
		Meta:     Meta{Source: SourceGitHub, FetchedAt: time.Now().UTC()},
		Username: rawStr(prof, "login", "username"),
		Bio:      rawStr(prof, "bio"),
		Email:    rawStr(prof, "email"),
		Location: rawStr(prof, "location"),
		Blog:     rawStr(prof, "blog"),
		Twitter:  rawStr(prof, "twitter"),
	}
	if company := rawStr(prof, "company"); company != "" {
		out.Company = []string{company}
	} else {
		out.Company = rawStrList(prof, "company")
	}

	for _, entry := range rawList(raw, "repos", "repositories") {
		m, ok := entry.(map[string]any)
		if !ok {
			dropped = append(dropped, &MalformedEntryError{Source: SourceGitHub, Entry: "repo", Reason: "not an object"})
			continue
		}
		name := rawStr(m, "name", "repository_name")
		if name == "" {
			dropped = append(dropped, &MalformedEntryError{Source: SourceGitHub, Entry: "repo", Reason: "missing name"})
			continue
		}
		stars := rawInt(m, "stars", "stargazers_count")
		forks := rawInt(m, "forks", "forks_count")
		out.Repositories = append(out.Repositories, Repository{
			Name:        name,
			Description: rawStr(m, "description"),
			Language:    rawStr(m, "primary_language", "language"),
			URL:         rawStr(m, "url", "html_url"),
			LastUpdated: rawStr(m, "last_updated", "pushed_at"),
			Engagement:  Engagement{Stars: stars, Forks: forks, Impressions: rawInt(m, "impressions")},
		})
		out.StarsTotal += stars
		out.ForksTotal += forks
	}
	out.RepoCount = len(out.Repositories)

	out.FollowersCount = rawInt(prof, "followers_count", "followers")
	if out.FollowersCount == 0 {
		out.FollowersCount = len(rawList(raw, "followers"))
	}
	out.FollowingCount = rawInt(prof, "following_count", "following")
	if out.FollowingCount == 0 {
		out.FollowingCount = len(rawList(raw, "following"))
	}
	out.Contributions = len(rawList(raw, "contributions"))

	for _, err := range dropped {
		slog.Warn("github parse: entry dropped", slog.Any("error", err))
	}
	return out, dropped
}
