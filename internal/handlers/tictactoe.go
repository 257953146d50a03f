package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mroldan747/ai50/internal/tictactoe"
)

type TicTacToe struct {
	logger *slog.Logger
	cache  *lru.Cache[tictactoe.Board, *AnalysisDTO]
}

func NewTicTacToe(logger *slog.Logger) (*TicTacToe, error) {
	// a few thousand entries hold every position a client will realistically
	// replay; analysis is pure, so cached results never go stale
	cache, err := lru.New[tictactoe.Board, *AnalysisDTO](4096)
	if err != nil {
		return nil, err
	}
	return &TicTacToe{logger: logger, cache: cache}, nil
}

// AnalyzeDTO carries a position as a 3x3 matrix of marks: 0 empty, 1 X, 2 O.
type AnalyzeDTO struct {
	Board tictactoe.Board `json:"board"`
}

type AnalysisDTO struct {
	Player   string          `json:"player"`
	Terminal bool            `json:"terminal"`
	Winner   string          `json:"winner,omitempty"`
	Value    int             `json:"value"`
	Move     *tictactoe.Move `json:"move,omitempty"`
}

func (t TicTacToe) Analyze(w http.ResponseWriter, r *http.Request) {
	var dto AnalyzeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, t.logger, wrapError(err))
		return
	}
	for _, row := range dto.Board {
		for _, mark := range row {
			if mark != tictactoe.Empty && mark != tictactoe.X && mark != tictactoe.O {
				w.WriteHeader(http.StatusBadRequest)
				sendJSONOrLog(w, t.logger, wrapError(fmt.Errorf("invalid mark %d", mark)))
				return
			}
		}
	}

	if analysis, ok := t.cache.Get(dto.Board); ok {
		sendJSONOrLog(w, t.logger, analysis)
		return
	}

	analysis := analyze(dto.Board)
	t.cache.Add(dto.Board, analysis)
	sendJSONOrLog(w, t.logger, analysis)
}

func analyze(b tictactoe.Board) *AnalysisDTO {
	analysis := &AnalysisDTO{
		Player: tictactoe.Player(b).String(),
		Value:  tictactoe.Value(b),
	}
	if tictactoe.Terminal(b) {
		analysis.Terminal = true
		if winner := tictactoe.Winner(b); winner != tictactoe.Empty {
			analysis.Winner = winner.String()
		}
		return analysis
	}
	if move, ok := tictactoe.Minimax(b); ok {
		analysis.Move = &move
	}
	return analysis
}
