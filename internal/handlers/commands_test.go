package handlers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroldan747/ai50/internal/minesweeper"
)

func testGame(t *testing.T, rows ...string) *minesweeper.Game {
	t.Helper()
	b := &minesweeper.Board{
		Height:  len(rows),
		Width:   len(rows[0]),
		Grid:    make([]bool, len(rows)*len(rows[0])),
		Flagged: make(minesweeper.CellSet),
	}
	for r, row := range rows {
		require.Len(t, row, b.Width)
		for c, ch := range row {
			if ch == '*' {
				b.Grid[r*b.Width+c] = true
				b.MineCount++
			}
		}
	}
	view := make(minesweeper.Grid, len(b.Grid))
	for i := range view {
		view[i] = minesweeper.Unknown
	}
	return &minesweeper.Game{
		Board: b,
		Agent: minesweeper.NewAgent(b.Height, b.Width),
		View:  view,
	}
}

func TestExecuteCommandReveal(t *testing.T) {
	t.Parallel()

	g := testGame(t,
		"*-",
		"--",
	)
	rnd := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, executeCommand(g, rnd, "r 1 1"))

	assert.Equal(t, minesweeper.CellState(1), g.View[3])
	assert.False(t, g.Over())
}

func TestExecuteCommandFlag(t *testing.T) {
	t.Parallel()

	g := testGame(t,
		"*-",
		"-*",
	)
	rnd := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, executeCommand(g, rnd, "f 0 0"))
	assert.Equal(t, minesweeper.Flagged, g.View[0])
	assert.False(t, g.Over())

	require.NoError(t, executeCommand(g, rnd, "f 0 0"))
	assert.Equal(t, minesweeper.Unknown, g.View[0])
}

func TestExecuteCommandHint(t *testing.T) {
	t.Parallel()

	g := testGame(t, "-")
	rnd := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, executeCommand(g, rnd, "h"))

	assert.True(t, g.Won, "the only cell is mineless, one step wins")
	assert.Equal(t, 1, g.HintsUsed)
}

func TestExecuteCommandGet(t *testing.T) {
	t.Parallel()

	g := testGame(t,
		"*-",
		"--",
	)
	rnd := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, executeCommand(g, rnd, "g"))

	for _, s := range g.View {
		assert.Equal(t, minesweeper.Unknown, s)
	}
}

func TestExecuteCommandRejectsGarbage(t *testing.T) {
	t.Parallel()

	g := testGame(t,
		"*-",
		"--",
	)
	rnd := rand.New(rand.NewPCG(1, 2))

	for _, command := range []string{
		"",
		"x",
		"r",
		"r 1",
		"r a b",
		"f one two",
		"f 1 2 3",
		"h 1",
		"r 9 9",
		"f -1 0",
	} {
		assert.Error(t, executeCommand(g, rnd, command), "command %q", command)
	}
}

func TestExecuteCommandAfterGameOver(t *testing.T) {
	t.Parallel()

	g := testGame(t, "*")
	rnd := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, executeCommand(g, rnd, "r 0 0"))
	require.True(t, g.Dead)

	assert.ErrorIs(t, executeCommand(g, rnd, "r 0 0"), minesweeper.ErrGameOver)
	assert.ErrorIs(t, executeCommand(g, rnd, "f 0 0"), minesweeper.ErrGameOver)
	assert.ErrorIs(t, executeCommand(g, rnd, "h"), minesweeper.ErrGameOver)
	assert.NoError(t, executeCommand(g, rnd, "g"))
}
