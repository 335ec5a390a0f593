package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/lakshsetu/go_career/internal/engine/sources"
)

// IngestFunc re-fetches source extracts for a profile. Returning nil
// extracts means "no update from that source". The returned profile lets
// an ingester apply out-of-band corrections before alignment.
type IngestFunc func(ctx context.Context, p UserProfile) (UserProfile, *sources.GitHubExtract, *sources.LinkedInExtract, []sources.HFModelExtract, error)

// Scheduler drives the periodic ingest → align → recommend → interact loop
// for one profile. It serializes cycles itself: one profile, one scheduler.
// Concurrent schedulers over different profiles need no coordination.
type Scheduler struct {
	Profile      UserProfile
	IntervalDays int
	Ingest       IngestFunc // nil = keep previous extracts
	Callbacks    Callbacks

	// Now is the clock source; defaults to time.Now. Injectable for tests.
	Now func() time.Time

	github   *sources.GitHubExtract
	linkedin *sources.LinkedInExtract
	hfModels []sources.HFModelExtract

	lastProcessedAt time.Time
	nextProcessAt   time.Time

	// LastRecommendations is the snapshot from the most recent cycle.
	LastRecommendations []Recommendation
}

// NewScheduler builds a scheduler that will process immediately on the
// first step.
func NewScheduler(p UserProfile, intervalDays int) *Scheduler {
	if intervalDays <= 0 {
		intervalDays = 7
	}
	s := &Scheduler{
		Profile:      p,
		IntervalDays: intervalDays,
		Now:          time.Now,
	}
	s.nextProcessAt = s.Now()
	return s
}

// NextProcessAt reports when the next re-ingestion is due.
func (s *Scheduler) NextProcessAt() time.Time { return s.nextProcessAt }

// LastProcessedAt reports when ingestion last ran (zero before first run).
func (s *Scheduler) LastProcessedAt() time.Time { return s.lastProcessedAt }

// Step runs one scheduler step. When re-ingestion is due it refreshes the
// extracts and advances the schedule; every step then runs one interaction
// cycle over the current extracts.
func (s *Scheduler) Step(ctx context.Context) error {
	now := s.Now()

	if !now.Before(s.nextProcessAt) {
		if s.Ingest != nil {
			p, gh, li, hf, err := s.Ingest(ctx, s.Profile)
			if err != nil {
				return err
			}
			s.Profile = p
			s.github, s.linkedin, s.hfModels = gh, li, hf
		}
		s.lastProcessedAt = now
		s.nextProcessAt = now.Add(time.Duration(s.IntervalDays) * 24 * time.Hour)
		slog.Info("profile processing ran",
			slog.String("email", s.Profile.Email),
			slog.Time("next_at", s.nextProcessAt),
		)
	}

	result := RunInteraction(s.Profile, s.github, s.linkedin, s.hfModels, s.Callbacks)
	s.Profile = result.Profile
	s.LastRecommendations = result.Recommendations
	return nil
}

// RunSteps runs at most maxSteps cycles, stopping early on error or context
// cancellation. The step budget bounds the loop; there is no internal
// sleeping — callers own the pacing between steps.
func (s *Scheduler) RunSteps(ctx context.Context, maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}
