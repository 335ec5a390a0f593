package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lakshsetu/go_career/internal/engine"
)

const githubAPI = "https://api.github.com"

// ghUser is the raw GitHub REST /users/:username response.
type ghUser struct {
	Login       string `json:"login"`
	Bio         string `json:"bio"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Blog        string `json:"blog"`
	Twitter     string `json:"twitter_username"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	HTMLURL     string `json:"html_url"`
}

// ghRepo is the raw GitHub REST repository item.
type ghRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
	PushedAt    string `json:"pushed_at"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Fork        bool   `json:"fork"`
	Archived    bool   `json:"archived"`
}

func githubHeaders() map[string]string {
	h := map[string]string{
		"Accept":               "application/vnd.github.v3+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if engine.Cfg.GithubToken != "" {
		h["Authorization"] = "Bearer " + engine.Cfg.GithubToken
	}
	return h
}

// FetchGitHubUser fetches a user's profile and repositories from the GitHub
// REST API and converts them into a validated extract. Forked repositories
// are excluded: they say little about the user's own work.
func FetchGitHubUser(ctx context.Context, username string) (*GitHubExtract, error) {
	if username == "" {
		return nil, fmt.Errorf("github: username is required")
	}
	engine.IncrGithubFetches()

	var user ghUser
	if err := engine.GetJSON(ctx, githubAPI+"/users/"+url.PathEscape(username), githubHeaders(), &user); err != nil {
		return nil, fmt.Errorf("github user %s: %w", username, err)
	}

	var repos []ghRepo
	reposURL := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=pushed", githubAPI, url.PathEscape(username))
	if err := engine.GetJSON(ctx, reposURL, githubHeaders(), &repos); err != nil {
		return nil, fmt.Errorf("github repos %s: %w", username, err)
	}

	out := &GitHubExtract{
		Meta: Meta{
			Source:    SourceGitHub,
			SourceURL: user.HTMLURL,
			FetchedAt: time.Now().UTC(),
		},
		Username:       user.Login,
		Bio:            user.Bio,
		Email:          user.Email,
		Location:       user.Location,
		Blog:           user.Blog,
		Twitter:        user.Twitter,
		FollowersCount: user.Followers,
		FollowingCount: user.Following,
	}
	if user.Company != "" {
		out.Company = []string{user.Company}
	}

	for _, r := range repos {
		if r.Fork || r.Archived {
			continue
		}
		out.Repositories = append(out.Repositories, Repository{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			URL:         r.HTMLURL,
			LastUpdated: r.PushedAt,
			Engagement:  Engagement{Stars: r.Stars, Forks: r.Forks},
		})
		out.StarsTotal += r.Stars
		out.ForksTotal += r.Forks
	}
	out.RepoCount = len(out.Repositories)

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
