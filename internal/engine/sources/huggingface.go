package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lakshsetu/go_career/internal/engine"
)

const hfAPIModels = "https://huggingface.co/api/models"

// hfAPIModel is the raw HuggingFace API model response.
type hfAPIModel struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Likes        int       `json:"likes"`
	Downloads    int       `json:"downloads"`
	PipelineTag  string    `json:"pipeline_tag"`
	Tags         []string  `json:"tags"`
	LastModified time.Time `json:"lastModified"`
}

func huggingfaceHeaders() map[string]string {
	h := map[string]string{}
	if engine.Cfg.HuggingFaceToken != "" {
		h["Authorization"] = "Bearer " + engine.Cfg.HuggingFaceToken
	}
	return h
}

// FetchHFUserModels lists a user's models on HuggingFace and converts each
// into a validated extract. Users without models get an empty slice, not an
// error.
func FetchHFUserModels(ctx context.Context, username string, limit int) ([]HFModelExtract, error) {
	if username == "" {
		return nil, fmt.Errorf("huggingface: username is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	engine.IncrHuggingFaceFetches()

	u, _ := url.Parse(hfAPIModels)
	q := u.Query()
	q.Set("author", username)
	q.Set("sort", "downloads")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("full", "false")
	u.RawQuery = q.Encode()

	var raw []hfAPIModel
	if err := engine.GetJSON(ctx, u.String(), huggingfaceHeaders(), &raw); err != nil {
		return nil, fmt.Errorf("huggingface models for %s: %w", username, err)
	}

	now := time.Now().UTC()
	out := make([]HFModelExtract, 0, len(raw))
	for _, m := range raw {
		ext := HFModelExtract{
			Meta: Meta{
				Source:    SourceHuggingFace,
				SourceURL: "https://huggingface.co/" + m.ID,
				FetchedAt: now,
			},
			ModelID:   m.ID,
			Task:      m.PipelineTag,
			URL:       "https://huggingface.co/" + m.ID,
			Likes:     m.Likes,
			Downloads: m.Downloads,
			Tags:      m.Tags,
		}
		if !m.LastModified.IsZero() {
			ext.LastModified = m.LastModified.UTC().Format(time.RFC3339)
		}
		if err := ext.Validate(); err != nil {
			// API glitch on one model should not lose the rest.
			continue
		}
		out = append(out, ext)
	}
	return out, nil
}
