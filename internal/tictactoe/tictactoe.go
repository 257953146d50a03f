// Package tictactoe implements a Tic-Tac-Toe position evaluator. All
// functions are pure: boards are small value types and every operation
// returns a new one.
package tictactoe

import (
	"errors"
	"strings"
)

type Mark int8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Board is a 3x3 grid of marks, row-major. The zero value is the
// initial position.
type Board [3][3]Mark

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var ErrCellOccupied = errors.New("cell is occupied")

func Initial() Board {
	return Board{}
}

func (b Board) String() string {
	var sb strings.Builder
	for r := range 3 {
		if r > 0 {
			sb.WriteString("\n")
		}
		for c := range 3 {
			sb.WriteString(b[r][c].String())
		}
	}
	return sb.String()
}

// Player returns whose turn it is. X always moves first, so X is to
// move whenever both sides have played the same number of marks.
func Player(b Board) Mark {
	var xs, os int
	for r := range 3 {
		for c := range 3 {
			switch b[r][c] {
			case X:
				xs++
			case O:
				os++
			}
		}
	}
	if xs == os {
		return X
	}
	return O
}

// Actions lists the empty cells in row-major order.
func Actions(b Board) []Move {
	var moves []Move
	for r := range 3 {
		for c := range 3 {
			if b[r][c] == Empty {
				moves = append(moves, Move{r, c})
			}
		}
	}
	return moves
}

// Result returns the board after the current player marks the given
// cell. The receiver is left untouched. Moves outside the board panic.
func Result(b Board, m Move) (Board, error) {
	if b[m.Row][m.Col] != Empty {
		return b, ErrCellOccupied
	}
	b[m.Row][m.Col] = Player(b)
	return b, nil
}

// Winner returns the mark holding three in a row, or Empty when
// neither side does.
func Winner(b Board) Mark {
	lines := [8][3]Move{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}
	for _, line := range lines {
		first := b[line[0].Row][line[0].Col]
		if first == Empty {
			continue
		}
		if b[line[1].Row][line[1].Col] == first &&
			b[line[2].Row][line[2].Col] == first {
			return first
		}
	}
	return Empty
}

// Terminal reports whether the game is over: somebody won or the
// board is full.
func Terminal(b Board) bool {
	if Winner(b) != Empty {
		return true
	}
	return len(Actions(b)) == 0
}

// Utility scores a terminal board: 1 when X has won, -1 when O has
// won, 0 for a draw.
func Utility(b Board) int {
	switch Winner(b) {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// Value returns the utility of b under optimal play from both sides.
func Value(b Board) int {
	if Terminal(b) {
		return Utility(b)
	}
	return search(b, Player(b) == X)
}

// Minimax returns an optimal move for the player to move, false when
// the game is already over. Ties break toward the first move in
// row-major order, so the choice is deterministic.
func Minimax(b Board) (Move, bool) {
	if Terminal(b) {
		return Move{}, false
	}
	var (
		maximizing = Player(b) == X
		best       Move
		bestScore  = iif(maximizing, -2, 2)
	)
	for _, m := range Actions(b) {
		next, _ := Result(b, m)
		score := search(next, !maximizing)
		if iif(maximizing, score > bestScore, score < bestScore) {
			best, bestScore = m, score
		}
	}
	return best, true
}

/*
 * One search serves both sides: the maximizing flag flips at each ply
 * instead of having separate max-value and min-value routines.
 */
func search(b Board, maximizing bool) int {
	if Terminal(b) {
		return Utility(b)
	}
	best := iif(maximizing, -2, 2)
	for _, m := range Actions(b) {
		next, _ := Result(b, m)
		score := search(next, !maximizing)
		if iif(maximizing, score > best, score < best) {
			best = score
		}
	}
	return best
}
