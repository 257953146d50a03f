package minesweeper

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBoard builds a board from rows of '*' (mine) and '-' (safe), the
// same glyphs [Board.String] prints.
func testBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	b := &Board{
		Height:  len(rows),
		Width:   len(rows[0]),
		Grid:    make([]bool, len(rows)*len(rows[0])),
		Flagged: make(CellSet),
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
	return b
}

func TestNewBoardValidation(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name                     string
		height, width, mineCount int
		wantErr                  bool
	}{
		{"ok", 9, 9, 10, false},
		{"no mines", 2, 2, 0, false},
		{"full board", 2, 2, 4, false},
		{"zero height", 0, 9, 0, true},
		{"zero width", 9, 0, 0, true},
		{"negative mines", 9, 9, -1, true},
		{"too many mines", 2, 2, 5, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBoard(test.height, test.width, test.mineCount, r)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			placed := 0
			for _, mine := range b.Grid {
				if mine {
					placed++
				}
			}
			assert.Equal(t, test.mineCount, placed)
		})
	}
}

func TestNearbyMines(t *testing.T) {
	t.Parallel()

	b := testBoard(t,
		"*-*",
		"---",
		"-**",
	)

	tests := []struct {
		cell Cell
		want int
	}{
		{Cell{0, 1}, 2},
		{Cell{1, 1}, 4},
		{Cell{1, 0}, 2},
		{Cell{2, 0}, 1},
		{Cell{0, 0}, 0}, /* a mine itself: neighbors only */
		{Cell{1, 2}, 3},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, b.NearbyMines(test.cell), "cell %s", test.cell)
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	t.Parallel()

	b := testBoard(t,
		"--",
		"--",
	)

	for _, c := range []Cell{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
		assert.Panics(t, func() { b.IsMine(c) }, "cell %s", c)
		assert.Panics(t, func() { b.NearbyMines(c) }, "cell %s", c)
		assert.Panics(t, func() { b.Flag(c) }, "cell %s", c)
	}
}

func TestBoardWon(t *testing.T) {
	t.Parallel()

	b := testBoard(t,
		"*-",
		"-*",
	)

	assert.False(t, b.Won())

	b.Flag(Cell{0, 0})
	assert.False(t, b.Won(), "one of two mines flagged")

	b.Flag(Cell{0, 1})
	b.Flag(Cell{1, 1})
	assert.False(t, b.Won(), "flag on a safe cell")

	b.Unflag(Cell{0, 1})
	assert.True(t, b.Won())
}

func TestBoardString(t *testing.T) {
	t.Parallel()

	b := testBoard(t,
		"*-",
		"-*",
	)
	assert.Equal(t, "* - \n- * \n", b.String())
}
