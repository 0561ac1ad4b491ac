package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/notifier"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
)

// LeaderboardSize is the number of rows shown by the leaderboard command.
const LeaderboardSize = 10

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func LeaderboardCommandHandler(seasons season.SeasonStore, store standings.StandingsStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := seasons.EnsureCurrent(r.Context())
		if err != nil {
			http.Error(w, "Failed to get current season", http.StatusInternalServerError)
			log.Error("Failed to get current season", "error", err)
			return
		}
		board, err := store.Leaderboard(r.Context(), current.ID, LeaderboardSize, 0)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := notifier.FormatLeaderboardResponse(board)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func PlayerStatsCommandHandler(seasons season.SeasonStore, store standings.StandingsStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		playerName := strings.TrimSpace(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		current, err := seasons.EnsureCurrent(r.Context())
		if err != nil {
			http.Error(w, "Failed to get current season", http.StatusInternalServerError)
			log.Error("Failed to get current season", "error", err)
			return
		}

		log.Info("Received player stats command", "player", playerName, "season", current.Number)
		standing, err := store.FindByNickname(r.Context(), current.ID, playerName)
		var msg any
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			log.Warn("Could not find player stats", "player", playerName)
			msg, err = notifier.FormatPlayerNotFoundResponse(playerName)
		case err != nil:
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats", "error", err)
			return
		default:
			msg, err = notifier.FormatPlayerStatsResponse(standing)
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
