package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lakshsetu/go_career/internal/engine"
)

// SocialActivity summarizes a user's recent public activity on X/Twitter.
// Optional enrichment: alignment never requires it.
type SocialActivity struct {
	Meta      Meta     `json:"meta"`
	Handle    string   `json:"handle"`
	Tweets    int      `json:"tweets"`
	Summaries []string `json:"summaries,omitempty"`
}

// FetchSocialActivity looks up a handle's recent posts via the configured
// Twitter client. Returns an error if the client is not configured.
func FetchSocialActivity(ctx context.Context, handle string, limit int) (*SocialActivity, error) {
	tw := engine.Cfg.TwitterClient
	if tw == nil {
		return nil, errors.New("twitter client not configured")
	}
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return nil, errors.New("twitter: handle is required")
	}
	if limit <= 0 {
		limit = 10
	}
	engine.IncrTwitterLookups()

	tweets, err := tw.SearchTimeline(ctx, "from:"+handle, limit)
	if err != nil {
		return nil, fmt.Errorf("twitter timeline for @%s: %w", handle, err)
	}

	out := &SocialActivity{
		Meta: Meta{
			Source:    SourceTwitter,
			SourceURL: "https://x.com/" + handle,
			FetchedAt: time.Now().UTC(),
		},
		Handle: handle,
		Tweets: len(tweets),
	}
	for _, t := range tweets {
		line := strings.SplitN(strings.TrimSpace(t.Text), "\n", 2)[0]
		out.Summaries = append(out.Summaries, engine.TruncateRunes(line, 120, "..."))
	}
	return out, nil
}
