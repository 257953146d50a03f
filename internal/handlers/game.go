package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mroldan747/ai50/internal/config"
	"github.com/mroldan747/ai50/internal/middleware"
	"github.com/mroldan747/ai50/internal/minesweeper"
	"github.com/mroldan747/ai50/internal/repository"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	game, err := minesweeper.NewGame(dto.Height, dto.Width, dto.MineCount, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	var params repository.CreateGameSessionParams
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		g.logger.Debug("creating player session", "player_id", claims.PlayerId)
		params.PlayerId = &claims.PlayerId
	} else {
		g.logger.Debug("creating anonymous session")
	}

	session, err := g.repo.CreateGameSession(r.Context(), game, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchGame(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	cell, err := ParseCellDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, game, ok := g.fetchGame(w, r)
	if !ok {
		return
	}
	if !game.Board.InBounds(cell) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	if err := game.Reveal(cell); err != nil {
		g.gameError(w, err)
		return
	}

	g.saveAndSend(w, r, session, game, nil)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	cell, err := ParseCellDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, game, ok := g.fetchGame(w, r)
	if !ok {
		return
	}
	if !game.Board.InBounds(cell) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	if err := game.ToggleFlag(cell); err != nil {
		g.gameError(w, err)
		return
	}

	g.saveAndSend(w, r, session, game, nil)
}

// Hint lets the agent play one move: it flags a cell it has proven
// mined, else reveals one it has proven safe, else guesses.
func (g GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchGame(w, r)
	if !ok {
		return
	}

	hint, err := game.Step(g.rnd)
	if err != nil {
		g.gameError(w, err)
		return
	}

	g.saveAndSend(w, r, session, game, hint)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchGame(w, r)
	if !ok {
		return
	}

	game.Forfeit()

	g.saveAndSend(w, r, session, game, nil)
}

func (g GameHandler) fetchGame(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *minesweeper.Game, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch game session", "error", err)
		return nil, nil, false
	}

	game, err := minesweeper.ParseGame(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil, false
	}

	return session, game, true
}

func (g GameHandler) saveAndSend(
	w http.ResponseWriter,
	r *http.Request,
	session *repository.GameSession,
	game *minesweeper.Game,
	hint *minesweeper.Hint,
) {
	updated, err := g.repo.SaveGame(r.Context(), session, game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update game session", "error", err)
		return
	}

	dto := NewGameSessionDTO(updated, game)
	dto.Hint = hint
	sendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) gameError(w http.ResponseWriter, err error) {
	var assertion minesweeper.AssertionError
	switch {
	case errors.Is(err, minesweeper.ErrGameOver):
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(err))
	case errors.As(err, &assertion):
		// The stored knowledge base contradicts the board. Nothing a
		// client can fix; the session is lost.
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("knowledge base contradiction", "error", err)
	default:
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
	}
}
