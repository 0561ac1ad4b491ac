package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/processor"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/replay"
)

const (
	// DefaultMatchesAmount is the page size of GET /matches when amount is omitted.
	DefaultMatchesAmount = 10
	maxMatchesAmount     = 100
	maxPayloadBytes      = 1 << 20
	maxReplayBytes       = 256 << 20
)

// IngestMatchHandler settles a JSON match payload, either bare or wrapped in {"result": ...}.
func IngestMatchHandler(proc processor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		raw, err := replay.ParsePayload(body)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		log.Info("Ingesting match", "matchID", raw.MatchID, "dryRun", IsDryRunFromContext(r))
		m, err := proc.IngestMatch(r.Context(), raw, IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		status := http.StatusCreated
		if IsDryRunFromContext(r) {
			status = http.StatusOK
		}
		respondWithJSON(w, status, m)
	}
}

// IngestReplayHandler converts an uploaded .dem file and settles it.
func IngestReplayHandler(proc processor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxReplayBytes)
		file, header, err := r.FormFile("replay")
		if err != nil {
			respondWithError(w, r, fmt.Errorf("missing replay file: %w", apperrors.ErrInvalidMatch))
			return
		}
		defer file.Close()

		log.Info("Ingesting replay", "filename", header.Filename, "size", header.Size, "dryRun", IsDryRunFromContext(r))
		m, err := proc.IngestReplay(r.Context(), file, IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		status := http.StatusCreated
		if IsDryRunFromContext(r) {
			status = http.StatusOK
		}
		respondWithJSON(w, status, m)
	}
}

type matchList struct {
	Matches []match.Match `json:"matches"`
	Total   int           `json:"total"`
}

// ListMatchesHandler pages through matches newest first. offset counts pages of size amount.
func ListMatchesHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		amount, err := queryInt(r, "amount", DefaultMatchesAmount, 0)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if amount == 0 || amount > maxMatchesAmount {
			amount = DefaultMatchesAmount
		}
		offset, err := queryInt(r, "offset", 0, 0)
		if err != nil {
			respondWithError(w, r, err)
			return
		}

		matches, err := store.List(r.Context(), amount, amount*offset)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		total, err := store.Count(r.Context())
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if matches == nil {
			matches = []match.Match{}
		}
		respondWithJSON(w, http.StatusOK, matchList{Matches: matches, Total: total})
	}
}

func GetMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		m, err := store.Get(r.Context(), id)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, m)
	}
}

// RateHandler lets a participant grade another participant's performance.
func RateHandler(proc processor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := ViewerFromContext(r)
		if !ok {
			respondWithError(w, r, fmt.Errorf("steam id required to rate: %w", apperrors.ErrForbidden))
			return
		}
		matchID, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		statsID, err := pathInt64(r, "statsID")
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		value, err := strconv.Atoi(r.URL.Query().Get("rating"))
		if err != nil {
			respondWithError(w, r, fmt.Errorf("rating %q: %w", r.URL.Query().Get("rating"), apperrors.ErrInvalidRating))
			return
		}

		created, err := proc.Rate(r.Context(), matchID, statsID, viewer, value)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, created)
	}
}

// MatchRatingsHandler summarises the ratings of every player in a match.
// allowed_to_rate is only ever true when the caller identified themselves.
func MatchRatingsHandler(matches match.MatchStore, ratings rating.RatingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if _, err := matches.Get(r.Context(), id); err != nil {
			respondWithError(w, r, err)
			return
		}

		var viewer *int64
		if v, ok := ViewerFromContext(r); ok {
			viewer = &v
		}
		summaries, err := ratings.GetRatings(r.Context(), id, viewer)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, summaries)
	}
}
