package processor

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/metrics"
	"github.com/mauv0809/gleague/internal/pubsub"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/replay"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/settlement"
)

var _ Service = (*Processor)(nil)

// New creates a new Processor.
func New(settler settlement.Settler, converter replay.Converter, ratings rating.RatingStore, seasons season.SeasonStore, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		settler:   settler,
		converter: converter,
		ratings:   ratings,
		seasons:   seasons,
		pubsub:    pubsub,
		notifier:  notifier,
		metrics:   metrics,
	}
}

// IngestMatch settles a raw match. In dry-run mode the settlement is computed
// and discarded, and notifications are only logged.
func (p *Processor) IngestMatch(ctx context.Context, raw *match.RawMatch, dryRun bool) (*match.Match, error) {
	startTime := time.Now()
	var (
		m   *match.Match
		err error
	)
	if dryRun {
		m, err = p.settler.Preview(ctx, raw)
	} else {
		m, err = p.settler.Settle(ctx, raw)
	}
	p.metrics.ObserveSettlementDuration(time.Since(startTime).Seconds())
	if err != nil {
		p.metrics.IncSettlementFailures(failureReason(err))
		log.Error("Failed to settle match", "error", err, "dryRun", dryRun)
		return nil, err
	}
	if dryRun {
		log.Info("[Dry Run] Settlement computed and discarded", "matchID", m.ID)
		if err := p.notifier.SendMatchResult(ctx, m, true); err != nil {
			log.Warn("Dry-run notification failed", "error", err, "matchID", m.ID)
		}
		return m, nil
	}

	p.metrics.IncMatchesSettled()
	if err := p.notifier.SendMatchResult(ctx, m, false); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", m.ID)
	}
	p.publish(ctx, pubsub.EventMatchSettled, newMatchSettledEvent(m))
	return m, nil
}

// IngestReplay converts a replay file and settles the resulting match.
func (p *Processor) IngestReplay(ctx context.Context, r io.Reader, dryRun bool) (*match.Match, error) {
	raw, err := p.converter.Convert(ctx, r)
	if err != nil {
		p.metrics.IncSettlementFailures(failureReason(err))
		log.Error("Failed to convert replay", "error", err)
		return nil, err
	}
	return p.IngestMatch(ctx, raw, dryRun)
}

func (p *Processor) Rate(ctx context.Context, matchID, statsID, raterSteamID int64, value int) (*rating.Rating, error) {
	r, err := p.ratings.Rate(ctx, matchID, statsID, raterSteamID, value)
	if err != nil {
		return nil, err
	}
	p.metrics.IncRatingsSubmitted()
	p.publish(ctx, pubsub.EventRatingSubmitted, pubsub.RatingSubmittedEvent{
		MatchID:        matchID,
		StatsID:        statsID,
		RatedBySteamID: raterSteamID,
		Rating:         value,
	})
	return r, nil
}

// StartSeason closes the current season and opens the next one.
func (p *Processor) StartSeason(ctx context.Context, dryRun bool) (*season.Season, error) {
	if dryRun {
		seasons, err := p.seasons.List(ctx)
		if err != nil {
			return nil, err
		}
		next := &season.Season{Number: 1, IsCurrent: true}
		if len(seasons) > 0 {
			next.Number = seasons[0].Number + 1
		}
		log.Info("[Dry Run] Would start season", "number", next.Number)
		return next, p.notifier.SendSeasonStarted(ctx, next, true)
	}

	s, err := p.seasons.StartNew(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.notifier.SendSeasonStarted(ctx, s, false); err != nil {
		log.Error("Failed to send season notification", "error", err, "season", s.Number)
	}
	p.publish(ctx, pubsub.EventSeasonStarted, pubsub.SeasonStartedEvent{SeasonID: s.ID, Number: s.Number})
	return s, nil
}

// publish never fails the caller. The settlement or rating is already committed.
func (p *Processor) publish(ctx context.Context, topic pubsub.EventType, event any) {
	if err := p.pubsub.SendMessage(ctx, topic, event); err != nil {
		log.Error("Failed to publish event", "error", err, "topic", topic)
		return
	}
	p.metrics.IncEventsPublished(string(topic))
}

func newMatchSettledEvent(m *match.Match) pubsub.MatchSettledEvent {
	event := pubsub.MatchSettledEvent{
		MatchID:      m.ID,
		SeasonNumber: m.SeasonNumber,
		RadiantWin:   m.RadiantWin,
		StartTime:    m.StartTime,
		Players:      make([]pubsub.PlayerDelta, 0, len(m.PlayersStats)),
	}
	for _, ps := range m.PlayersStats {
		event.Players = append(event.Players, pubsub.PlayerDelta{
			SteamID: ps.SteamID,
			Hero:    ps.Hero,
			OldPts:  ps.OldPts,
			PtsDiff: ps.PtsDiff,
		})
	}
	return event
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateMatch):
		return "duplicate"
	case errors.Is(err, apperrors.ErrInvalidMatch):
		return "invalid"
	case errors.Is(err, apperrors.ErrUnknownHero):
		return "unknown_hero"
	case errors.Is(err, apperrors.ErrPlayerResolution):
		return "player_resolution"
	case errors.Is(err, apperrors.ErrNotFound):
		return "no_season"
	default:
		return "other"
	}
}
