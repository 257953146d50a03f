package minesweeper

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Board is the ground truth of a single game: where the mines are and
// which cells the player has flagged. It knows nothing about what the
// player has deduced; that lives in [Agent].
type Board struct {
	Height, Width, MineCount int

	Grid    []bool /* real mine points, row-major */
	Flagged CellSet
}

func NewBoard(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	if height < 1 || width < 1 {
		return nil, fmt.Errorf("board cannot be %dx%d", height, width)
	}
	if mineCount < 0 || mineCount > height*width {
		return nil, fmt.Errorf(
			"cannot place %d mines on a %dx%d board", mineCount, height, width,
		)
	}
	b := &Board{
		Height:    height,
		Width:     width,
		MineCount: mineCount,
		Grid:      make([]bool, height*width),
		Flagged:   make(CellSet),
	}
	for placed := 0; placed < mineCount; {
		i := r.IntN(len(b.Grid))
		if !b.Grid[i] {
			b.Grid[i] = true
			placed++
		}
	}
	return b, nil
}

func (b *Board) InBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < b.Height && 0 <= c.Col && c.Col < b.Width
}

// panics [AssertionError]
func (b *Board) assertInBounds(c Cell) {
	if !b.InBounds(c) {
		panic(AssertionError{fmt.Sprintf(
			"cell %s is outside a %dx%d board", c, b.Height, b.Width,
		)})
	}
}

func (b *Board) index(c Cell) int {
	b.assertInBounds(c)
	return c.Row*b.Width + c.Col
}

func (b *Board) IsMine(c Cell) bool {
	return b.Grid[b.index(c)]
}

// NearbyMines counts the mines in the 8-neighborhood of c, not
// counting c itself. Neighbors beyond the board edge contribute
// nothing.
func (b *Board) NearbyMines(c Cell) (count int) {
	b.assertInBounds(c)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{c.Row + dr, c.Col + dc}
			if b.InBounds(n) && b.Grid[b.index(n)] {
				count++
			}
		}
	}
	return
}

func (b *Board) Flag(c Cell) {
	b.assertInBounds(c)
	b.Flagged.Add(c)
}

func (b *Board) Unflag(c Cell) {
	b.assertInBounds(c)
	b.Flagged.Delete(c)
}

// Won reports whether the flagged set is exactly the mine set.
func (b *Board) Won() bool {
	if len(b.Flagged) != b.MineCount {
		return false
	}
	for c := range b.Flagged {
		if !b.IsMine(c) {
			return false
		}
	}
	return true
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Height {
		for col := range b.Width {
			if b.Grid[row*b.Width+col] {
				fmt.Fprint(&sb, "* ")
			} else {
				fmt.Fprint(&sb, "- ")
			}
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
