package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/mroldan747/ai50/internal/minesweeper"
	"github.com/mroldan747/ai50/internal/repository"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type CreateGameDTO struct {
	Height    int `schema:"height,required"`
	Width     int `schema:"width,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	var dto CreateGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type CellDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParseCellDTO(src map[string][]string) (minesweeper.Cell, error) {
	var dto CellDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return minesweeper.Cell{}, err
	}
	return minesweeper.Cell(dto), nil
}

type GameSessionDTO struct {
	GameSessionId string            `json:"game_session_id"`
	Grid          minesweeper.Grid  `json:"grid"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	MineCount     int               `json:"mine_count"`
	Dead          bool              `json:"dead"`
	Won           bool              `json:"won"`
	HintsUsed     int               `json:"hints_used"`
	StartedAt     int64             `json:"started_at"`
	EndedAt       *int64            `json:"ended_at,omitempty"`
	Hint          *minesweeper.Hint `json:"hint,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, g *minesweeper.Game,
) *GameSessionDTO {
	var endedAt *int64
	if ended := session.Ended(); ended != nil {
		e := ended.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Grid:          g.View,
		Width:         g.Board.Width,
		Height:        g.Board.Height,
		MineCount:     g.Board.MineCount,
		Dead:          g.Dead,
		Won:           g.Won,
		HintsUsed:     g.HintsUsed,
		StartedAt:     session.StartedAt.Time.UnixMilli(),
		EndedAt:       endedAt,
	}
}
