package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/player"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
)

const signatureHeroesCount = 3

// PlayerDeps bundles the stores the player pages read from.
type PlayerDeps struct {
	Players   player.PlayerStore
	Seasons   season.SeasonStore
	Standings standings.StandingsStore
	Matches   match.MatchStore
	Ratings   rating.RatingStore

	// BasePts seeds the points history of the current season.
	BasePts        int
	RecentMatches  int
	HistoryPerPage int
}

// PlayerOverview is the player profile page.
type PlayerOverview struct {
	Player          *player.Player         `json:"player"`
	Season          *season.Season         `json:"season"`
	Standing        *standings.SeasonStats `json:"standing"`
	PtsHistory      [][2]int               `json:"pts_history"`
	AvgRating       *float64               `json:"avg_rating"`
	RatingCount     int                    `json:"rating_count"`
	SignatureHeroes []match.HeroSummary    `json:"signature_heroes"`
	RecentMatches   []match.HistoryEntry   `json:"recent_matches"`
}

// PlayerOverviewHandler serves the player's current season standing, the points
// curve of that season, their average rating and their most played heroes.
func PlayerOverviewHandler(deps PlayerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		steamID, err := pathInt64(r, "steamID")
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		p, err := deps.Players.Get(ctx, steamID)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		current, err := deps.Seasons.EnsureCurrent(ctx)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		overview := PlayerOverview{Player: p, Season: current, PtsHistory: [][2]int{{0, deps.BasePts}}}

		stats, err := deps.Standings.Get(ctx, steamID, current.ID)
		switch {
		case err == nil:
			overview.Standing = stats
		case !errors.Is(err, apperrors.ErrNotFound):
			respondWithError(w, r, err)
			return
		}

		history, err := deps.Matches.PointsHistory(ctx, steamID, current.ID)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		for i, pts := range history {
			overview.PtsHistory = append(overview.PtsHistory, [2]int{i + 1, pts})
		}

		avg, count, err := deps.Ratings.PlayerAverage(ctx, steamID)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if count > 0 {
			overview.AvgRating = &avg
		}
		overview.RatingCount = count

		if overview.SignatureHeroes, err = deps.Matches.SignatureHeroes(ctx, steamID, signatureHeroesCount); err != nil {
			respondWithError(w, r, err)
			return
		}
		recent, err := deps.Matches.PlayerHistory(ctx, steamID, match.HistoryQuery{Page: 1, PerPage: deps.RecentMatches})
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		overview.RecentMatches = recent.Entries

		respondWithJSON(w, http.StatusOK, overview)
	}
}

func ListPlayersHandler(players player.PlayerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := players.List(r.Context())
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if list == nil {
			list = []player.Player{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

type historyResponse struct {
	*match.HistoryPage
	Pages int `json:"pages"`
}

// PlayerHistoryHandler pages through a player's matches, optionally filtered by hero.
func PlayerHistoryHandler(deps PlayerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		steamID, err := pathInt64(r, "steamID")
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if _, err := deps.Players.Get(r.Context(), steamID); err != nil {
			respondWithError(w, r, err)
			return
		}

		page, err := queryInt(r, "page", 1, 1)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		history, err := deps.Matches.PlayerHistory(r.Context(), steamID, match.HistoryQuery{
			Hero:    r.URL.Query().Get("hero"),
			Page:    page,
			PerPage: deps.HistoryPerPage,
		})
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, historyResponse{HistoryPage: history, Pages: history.Pages()})
	}
}
