package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mroldan747/ai50/internal/repository"
)

type Highscores struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewHighscores(logger *slog.Logger, db *pgxpool.Pool) *Highscores {
	return &Highscores{
		logger: logger,
		repo:   repository.New(db),
	}
}

// Fetch lists finished winning sessions ordered by playtime. Results
// narrow by the optional username, width, height and mine_count query
// parameters.
func (h Highscores) Fetch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter repository.HighscoreFilter

	if query.Has("username") {
		username := query.Get("username")
		filter.Username = &username
	}
	for param, dst := range map[string]**int{
		"width":      &filter.Width,
		"height":     &filter.Height,
		"mine_count": &filter.MineCount,
	} {
		if !query.Has(param) {
			continue
		}
		value, err := strconv.Atoi(query.Get(param))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
			return
		}
		*dst = &value
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, highscores)
}
