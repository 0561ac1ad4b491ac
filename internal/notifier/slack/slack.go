package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/metrics"
	"github.com/mauv0809/gleague/internal/notifier"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// A nil api turns every send into a logged dry run.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(ctx context.Context, m *match.Match, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchResult(m), dryRun)
	return err
}

func (s *Notifier) SendSeasonStarted(ctx context.Context, season *season.Season, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatSeasonStarted(season), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(board []standings.Standing) (any, error) {
	return s.formatLeaderboard(board), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(st *standings.Standing) (any, error) {
	return s.formatPlayerStats(st), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatMatchResult creates the Slack message for a settled match using Block Kit.
func (s *Notifier) formatMatchResult(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s victory!", m.WinnerString()), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Match %d · %s · %s", m.ID, m.GameModeString(), m.DurationString())
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	var radiant, dire []string
	for _, ps := range m.PlayersStats {
		line := fmt.Sprintf("• %s (%s) %d/%d/%d  %+d", ps.Nickname, ps.Hero, ps.Kills, ps.Deaths, ps.Assists, ps.PtsDiff)
		if ps.IsRadiant() {
			radiant = append(radiant, line)
		} else {
			dire = append(dire, line)
		}
	}
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", "*Radiant*\n"+strings.Join(radiant, "\n"), false, false),
		slack.NewTextBlockObject("mrkdwn", "*Dire*\n"+strings.Join(dire, "\n"), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("Season %d", m.SeasonNumber), false, false)))
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatSeasonStarted(season *season.Season) slack.Message {
	text := fmt.Sprintf("Season %d has started. Everyone is back to square one!", season.Number)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "New season", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, false, false), nil, nil),
	)
}

// formatLeaderboard creates a Slack message to display the season standings.
func (s *Notifier) formatLeaderboard(board []standings.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Season Leaderboard", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(board) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches settled this season yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, st := range board {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> *%d pts* | %d-%d | Win %%: %.2f%%",
			rank,
			medal,
			st.Nickname,
			st.Pts,
			st.Wins,
			st.Losses,
			st.WinPercentage,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's standing.
func (s *Notifier) formatPlayerStats(st *standings.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("Stats for %s", st.Nickname)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Points*: %d\n> *Record*: %d-%d (%.2f%%)\n> *Streak*: %s\n> *Longest win streak*: %d\n> *Longest lose streak*: %d",
		st.Pts,
		st.Wins,
		st.Losses,
		st.WinPercentage,
		streakString(st.Streak),
		st.LongestWinStreak,
		st.LongestLoseStreak,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s* this season. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func streakString(streak int) string {
	switch {
	case streak > 0:
		return fmt.Sprintf("%d won", streak)
	case streak < 0:
		return fmt.Sprintf("%d lost", -streak)
	default:
		return "none"
	}
}
