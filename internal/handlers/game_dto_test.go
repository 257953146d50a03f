package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroldan747/ai50/internal/minesweeper"
	"github.com/mroldan747/ai50/internal/repository"
)

func TestParseCreateGameDTO(t *testing.T) {
	t.Parallel()

	dto, err := ParseCreateGameDTO(url.Values{
		"height":     {"9"},
		"width":      {"9"},
		"mine_count": {"10"},
		"extra":      {"ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, CreateGameDTO{Height: 9, Width: 9, MineCount: 10}, dto)

	_, err = ParseCreateGameDTO(url.Values{
		"height": {"9"},
		"width":  {"9"},
	})
	assert.Error(t, err, "mine_count is required")

	_, err = ParseCreateGameDTO(url.Values{
		"height":     {"nine"},
		"width":      {"9"},
		"mine_count": {"10"},
	})
	assert.Error(t, err)
}

func TestParseCellDTO(t *testing.T) {
	t.Parallel()

	cell, err := ParseCellDTO(url.Values{
		"row": {"3"},
		"col": {"5"},
	})
	require.NoError(t, err)
	assert.Equal(t, minesweeper.Cell{Row: 3, Col: 5}, cell)

	_, err = ParseCellDTO(url.Values{"row": {"3"}})
	assert.Error(t, err, "col is required")
}

func TestNewGameSessionDTO(t *testing.T) {
	t.Parallel()

	g := testGame(t,
		"*-",
		"--",
	)
	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := &repository.GameSession{
		GameSessionId: 42,
		Width:         2,
		Height:        2,
		MineCount:     1,
		StartedAt:     pgtype.Timestamptz{Time: started, Valid: true},
	}

	dto := NewGameSessionDTO(session, g)
	assert.Equal(t, "42", dto.GameSessionId)
	assert.Equal(t, 2, dto.Width)
	assert.Equal(t, 2, dto.Height)
	assert.Equal(t, 1, dto.MineCount)
	assert.Equal(t, started.UnixMilli(), dto.StartedAt)
	assert.Nil(t, dto.EndedAt, "a live game has no end timestamp")
	assert.Len(t, dto.Grid, 4)

	ended := started.Add(21 * time.Second)
	session.EndedAt = pgtype.Timestamptz{Time: ended, Valid: true}
	dto = NewGameSessionDTO(session, g)
	require.NotNil(t, dto.EndedAt)
	assert.Equal(t, ended.UnixMilli(), *dto.EndedAt)
}
