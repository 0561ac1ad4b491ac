package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/processor"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
)

// DefaultStandingsAmount is the page size of the standings when amount is omitted.
const DefaultStandingsAmount = 50

func ListSeasonsHandler(seasons season.SeasonStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := seasons.List(r.Context())
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if list == nil {
			list = []season.Season{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

type standingsResponse struct {
	Season    *season.Season       `json:"season"`
	Standings []standings.Standing `json:"standings"`
}

// CurrentStandingsHandler serves the leaderboard of the current season. The
// optional season query parameter selects a past season by number.
func CurrentStandingsHandler(seasons season.SeasonStore, store standings.StandingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := queryInt(r, "season", 0, 0)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		var s *season.Season
		if number > 0 {
			s, err = seasons.GetByNumber(r.Context(), number)
		} else {
			s, err = seasons.EnsureCurrent(r.Context())
		}
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		amount, err := queryInt(r, "amount", DefaultStandingsAmount, 0)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if amount == 0 {
			amount = DefaultStandingsAmount
		}
		offset, err := queryInt(r, "offset", 0, 0)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		board, err := store.Leaderboard(r.Context(), s.ID, amount, amount*offset)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if board == nil {
			board = []standings.Standing{}
		}
		respondWithJSON(w, http.StatusOK, standingsResponse{Season: s, Standings: board})
	}
}

// StartSeasonHandler closes the current season and opens the next one.
func StartSeasonHandler(proc processor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := proc.StartSeason(r.Context(), IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		log.Info("Season started via API", "number", s.Number, "dryRun", IsDryRunFromContext(r))
		status := http.StatusCreated
		if IsDryRunFromContext(r) {
			status = http.StatusOK
		}
		respondWithJSON(w, status, s)
	}
}
