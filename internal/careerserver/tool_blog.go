package careerserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakshsetu/go_career/internal/engine"
	"github.com/lakshsetu/go_career/internal/engine/profile"
)

// BlogIngestInput attaches a published post to a profile by URL.
type BlogIngestInput struct {
	Profile   profile.UserProfile `json:"profile"`
	URL       string              `json:"url"`
	Title     string              `json:"title,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
	Raw       bool                `json:"raw,omitempty"`
	Summarize bool                `json:"summarize,omitempty"`
}

// BlogIngestOutput is the profile with the new blog entry attached.
type BlogIngestOutput struct {
	Profile profile.UserProfile `json:"profile"`
	Blog    profile.Blog        `json:"blog"`
}

func registerBlogIngest(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_ingest",
		Description: "Fetch a blog post or article by URL, convert it to text, and attach it to the profile's blogs. Set raw=true for plain-text endpoints (raw.githubusercontent.com), summarize=true for an LLM summary instead of the full text. Duplicate titles are skipped.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BlogIngestInput) (*mcp.CallToolResult, BlogIngestOutput, error) {
		if input.URL == "" {
			return nil, BlogIngestOutput{}, errors.New("url is required")
		}
		if err := input.Profile.Validate(); err != nil {
			return nil, BlogIngestOutput{}, err
		}

		var text string
		var err error
		if input.Raw {
			text, err = engine.FetchRawContent(ctx, input.URL)
		} else {
			text, err = engine.FetchPageText(ctx, input.URL)
		}
		if err != nil {
			return nil, BlogIngestOutput{}, err
		}

		title := input.Title
		if title == "" {
			title = blogTitleFromText(text, input.URL)
		}

		content := text
		if input.Summarize {
			summary, err := engine.CallLLM(ctx,
				"Summarize this article in 3-4 sentences for a career portfolio. Plain text only.\n\n"+text)
			if err != nil {
				if !errors.Is(err, engine.ErrLLMDisabled) {
					slog.Warn("blog_ingest: summary failed", slog.Any("error", err))
				}
			} else {
				content = summary
			}
		}

		p := input.Profile.Clone()
		for _, b := range p.Blogs {
			if engine.KeyFold(b.Title) == engine.KeyFold(title) {
				return nil, BlogIngestOutput{Profile: p, Blog: b}, nil
			}
		}
		blog := profile.Blog{
			Title:   title,
			Content: content,
			Tags:    input.Tags,
		}
		p.Blogs = append(p.Blogs, blog)

		return nil, BlogIngestOutput{Profile: p, Blog: blog}, nil
	})
}

// blogTitleFromText derives a title from the first markdown heading, or
// falls back to the URL.
func blogTitleFromText(text, url string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if t := strings.TrimSpace(strings.TrimLeft(line, "#")); strings.HasPrefix(line, "#") && t != "" {
			return t
		}
	}
	return url
}
