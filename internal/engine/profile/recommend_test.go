package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshsetu/go_career/internal/engine/sources"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		token string
		want  ApprovalStatus
	}{
		{"approved", Approved},
		{"Approve", Approved},
		{"YES", Approved},
		{"  yes  ", Approved},
		{"rejected", Rejected},
		{"reject", Rejected},
		{"no", Rejected},
		{"maybe", Deferred},
		{"", Deferred},
		{"later", Deferred},
	}
	for _, tt := range tests {
		if got := ParseDecision(tt.token); got != tt.want {
			t.Errorf("ParseDecision(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestRecommend_SkillGap(t *testing.T) {
	p := baseProfile(t)
	p.Skills = []Skill{{Name: "go", Strength: StrengthHigh}, {Name: "cobol", Strength: StrengthHigh}}

	out, recs := Recommend(p, nil, nil)

	require.NotEmpty(t, recs)
	assert.Equal(t, "Close top skill gaps", recs[0].Title)
	assert.Equal(t, 1, recs[0].Priority)
	assert.Equal(t, Deferred, recs[0].ApprovalStatus)

	require.NotNil(t, out.SkillGapAnalysis)
	assert.NotContains(t, out.SkillGapAnalysis.Missing, "Go", "held skill matched case-insensitively")
	assert.Contains(t, out.SkillGapAnalysis.Missing, "Rust")
}

func TestRecommend_SkillGapSkippedWithoutSkills(t *testing.T) {
	p := baseProfile(t)
	out, recs := Recommend(p, nil, nil)
	assert.Empty(t, recs)
	assert.Nil(t, out.SkillGapAnalysis)
}

func TestRecommend_FreshestRepo(t *testing.T) {
	p := baseProfile(t)
	gh := &sources.GitHubExtract{
		Username: "dev",
		Repositories: []sources.Repository{
			{Name: "old", LastUpdated: "2024-01-01T00:00:00Z"},
			{Name: "fresh", LastUpdated: "2025-06-01T00:00:00Z"},
			{Name: "undated"},
		},
	}

	_, recs := Recommend(p, gh, nil)
	require.Len(t, recs, 1)
	assert.Equal(t, "Polish your most active repository", recs[0].Title)
	assert.Contains(t, recs[0].Reason, `"fresh"`)
	assert.Equal(t, 2, recs[0].Priority)
}

func TestFreshestRepo_TieBreaksToFirst(t *testing.T) {
	gh := &sources.GitHubExtract{
		Username: "dev",
		Repositories: []sources.Repository{
			{Name: "alpha", LastUpdated: "2025-06-01T00:00:00Z"},
			{Name: "beta", LastUpdated: "2025-06-01T00:00:00Z"},
		},
	}
	repo := freshestRepo(gh)
	require.NotNil(t, repo)
	assert.Equal(t, "alpha", repo.Name)
}

func TestRecommend_ZeroPosts(t *testing.T) {
	p := baseProfile(t)
	li := &sources.LinkedInExtract{Username: "dev", Connections: 500, PostCount: 0}

	_, recs := Recommend(p, nil, li)
	require.Len(t, recs, 1)
	assert.Equal(t, "Post on LinkedIn", recs[0].Title)
}

func TestRecommend_NetworkGrowth(t *testing.T) {
	p := baseProfile(t)
	li := &sources.LinkedInExtract{Username: "dev", Connections: 150, PostCount: 4}

	out, recs := Recommend(p, nil, li)
	require.Len(t, recs, 1)
	assert.Equal(t, "Grow your professional network", recs[0].Title)
	assert.Equal(t, 3, recs[0].Priority)
	assert.NotEmpty(t, out.NetworkOpportunities)
}

func TestRecommend_NetworkRuleSkippedAt200(t *testing.T) {
	p := baseProfile(t)
	li := &sources.LinkedInExtract{Username: "dev", Connections: 200, PostCount: 4}

	out, recs := Recommend(p, nil, li)
	assert.Empty(t, recs)
	assert.Empty(t, out.NetworkOpportunities)
}

func TestRecommend_CertificationsWithoutProjects(t *testing.T) {
	p := baseProfile(t)
	p.Certifications = []Certification{{Title: "AWS Certified Developer", Issuer: "AWS"}}

	_, recs := Recommend(p, nil, nil)
	require.Len(t, recs, 1)
	assert.Equal(t, "Turn a certification into a project", recs[0].Title)

	p.Projects = []Project{{Name: "demo"}}
	_, recs = Recommend(p, nil, nil)
	assert.Empty(t, recs, "rule fires only when no projects exist")
}

func TestRecommend_OutputFollowsRuleOrderNotPriority(t *testing.T) {
	p := baseProfile(t)
	p.Skills = []Skill{{Name: "cobol", Strength: StrengthHigh}}
	p.Certifications = []Certification{{Title: "OCP", Issuer: "Oracle"}}
	gh := &sources.GitHubExtract{
		Username:     "dev",
		Repositories: []sources.Repository{{Name: "repo", LastUpdated: "2025-01-01T00:00:00Z"}},
	}
	li := &sources.LinkedInExtract{Username: "dev", Connections: 10, PostCount: 0}

	out, recs := Recommend(p, gh, li)

	titles := make([]string, len(recs))
	for i, r := range recs {
		titles[i] = r.Title
	}
	want := []string{
		"Close top skill gaps",
		"Polish your most active repository",
		"Post on LinkedIn",
		"Grow your professional network",
		"Turn a certification into a project",
	}
	assert.Equal(t, want, titles)
	assert.Equal(t, want, out.Recommendations, "only titles projected into the profile")
}

func TestRecommend_DerivedFieldsRecomputed(t *testing.T) {
	p := baseProfile(t)
	p.Recommendations = []string{"stale entry"}
	p.NetworkOpportunities = []string{"stale"}
	p.SkillGapAnalysis = &SkillGap{Missing: []string{"stale"}}

	out, _ := Recommend(p, nil, nil)
	assert.Empty(t, out.Recommendations)
	assert.Nil(t, out.NetworkOpportunities)
	assert.Nil(t, out.SkillGapAnalysis)
	assert.Equal(t, TrendingSkills, out.TrendingSkills)
}

func TestRecommend_InputNotMutated(t *testing.T) {
	p := baseProfile(t)
	p.Skills = []Skill{{Name: "cobol", Strength: StrengthHigh}}

	_, _ = Recommend(p, nil, nil)
	assert.Nil(t, p.SkillGapAnalysis)
	assert.Empty(t, p.Recommendations)
}
