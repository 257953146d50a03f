package minesweeper

import (
	"bytes"
	"encoding/gob"
	"errors"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

// Move strategies reported by [Game.Hint].
const (
	StrategyFlag  = "flag"  // a cell proven to be a mine
	StrategySafe  = "safe"  // a cell proven to be safe
	StrategyGuess = "guess" // no proof available, picked at random
)

type Hint struct {
	Cell     Cell   `json:"cell"`
	Strategy string `json:"strategy"`
	IsGuess  bool   `json:"is_guess"`
}

// Game ties one [Board] to one [Agent] and the grid the player sees.
// Each game owns its pair; boards and agents are never shared between
// games.
type Game struct {
	Board *Board
	Agent *Agent
	View  Grid

	Dead, Won bool
	HintsUsed int
}

func NewGame(height, width, mineCount int, r *rand.Rand) (g *Game, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var ae AssertionError
			if e, ok := rec.(error); ok && errors.As(e, &ae) {
				g, err = nil, ae
				return
			}
			panic(rec)
		}
	}()

	board, err := NewBoard(height, width, mineCount, r)
	if err != nil {
		return nil, err
	}
	view := make(Grid, height*width)
	for i := range view {
		view[i] = Unknown
	}
	return &Game{
		Board: board,
		Agent: NewAgent(height, width),
		View:  view,
	}, nil
}

func ParseGame(buf []byte) (*Game, error) {
	var g Game
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&g); err != nil {
		return nil, err
	}
	if g.Board == nil || g.Agent == nil || len(g.View) != len(g.Board.Grid) {
		return nil, AssertionError{"truncated game state"}
	}
	/* gob drops empty containers; restore them so the game stays playable */
	if g.Board.Flagged == nil {
		g.Board.Flagged = make(CellSet)
	}
	for _, s := range []*CellSet{&g.Agent.MovesMade, &g.Agent.Safes, &g.Agent.Mines} {
		if *s == nil {
			*s = make(CellSet)
		}
	}
	return &g, nil
}

func (g Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Game) Over() bool {
	return g.Dead || g.Won
}

// Reveal opens a single cell. Opening a mine loses the game; opening a
// safe cell feeds its neighboring mine count to the agent. Revealing
// an already open or flagged cell does nothing.
//
// An [AssertionError] return means the agent's knowledge base was
// driven into contradiction, which only a bugged or tampered-with
// board can do; the game is poisoned and should be discarded.
func (g *Game) Reveal(c Cell) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var ae AssertionError
			if e, ok := rec.(error); ok && errors.As(e, &ae) {
				err = ae
				return
			}
			panic(rec)
		}
	}()

	if g.Over() {
		return ErrGameOver
	}
	i := g.Board.index(c)
	if g.View[i] != Unknown {
		return nil
	}

	if g.Board.IsMine(c) {
		/*
		 * The player has landed on a mine. Bad luck. Expose the mine
		 * that killed them, but not the rest.
		 */
		g.Dead = true
		g.View[i] = ExplodedMine
		Log.Debug("stepped on a mine", slog.String("cell", c.String()))
		return nil
	}

	n := g.Board.NearbyMines(c)
	g.View[i] = CellState(n)
	g.Agent.AddKnowledge(c, n)
	g.checkWon()
	return nil
}

// ToggleFlag flags an unknown cell or clears an existing flag. A game
// is won outright when the flagged cells are exactly the mines.
func (g *Game) ToggleFlag(c Cell) error {
	if g.Over() {
		return ErrGameOver
	}
	i := g.Board.index(c)
	switch g.View[i] {
	case Unknown:
		g.View[i] = Flagged
		g.Board.Flag(c)
	case Flagged:
		g.View[i] = Unknown
		g.Board.Unflag(c)
	}
	if g.Board.Won() {
		g.Won = true
		g.revealAll()
	}
	return nil
}

// Hint asks the agent for its next move without playing it: a flag on
// a proven mine first, then a proven safe reveal, then a guess. It
// returns nil when no move remains, which is a normal end state.
func (g *Game) Hint(r *rand.Rand) (*Hint, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	g.HintsUsed++
	for _, c := range g.Agent.Mines.Slice() {
		if g.View[g.Board.index(c)] == Unknown {
			return &Hint{Cell: c, Strategy: StrategyFlag}, nil
		}
	}
	if c, ok := g.Agent.SafeMove(); ok {
		return &Hint{Cell: c, Strategy: StrategySafe}, nil
	}
	if c, ok := g.Agent.RandomMove(r); ok {
		return &Hint{Cell: c, Strategy: StrategyGuess, IsGuess: true}, nil
	}
	return nil, nil
}

// Step plays one move chosen by the agent and reports which move it
// was. A nil hint with a nil error means the agent has no cell left to
// play.
func (g *Game) Step(r *rand.Rand) (*Hint, error) {
	h, err := g.Hint(r)
	if err != nil || h == nil {
		return h, err
	}
	if h.Strategy == StrategyFlag {
		err = g.ToggleFlag(h.Cell)
	} else {
		err = g.Reveal(h.Cell)
	}
	return h, err
}

// Forfeit ends the game as a loss, unless already won, and exposes the
// whole board.
func (g *Game) Forfeit() {
	if !g.Over() {
		g.Dead = true
	}
	g.revealAll()
}

/*
 * Scan the grid and see if exactly as many cells are still covered as
 * there are mines. If so the game is won: every covered cell must be a
 * mine, so fill in mine markers.
 */
func (g *Game) checkWon() {
	if g.Dead {
		return
	}
	covered := 0
	for _, s := range g.View {
		if s < 0 {
			covered++
		}
	}
	if covered == g.Board.MineCount {
		for i, s := range g.View {
			if s == Unknown {
				g.View[i] = UnflaggedMine
			} else if s == Flagged {
				g.View[i] = CorrectFlag
			}
		}
		g.Won = true
	}
}

func (g *Game) revealAll() {
	for i, s := range g.View {
		c := Cell{i / g.Board.Width, i % g.Board.Width}
		switch s {
		case Flagged:
			if g.Board.IsMine(c) {
				g.View[i] = CorrectFlag
			} else {
				g.View[i] = WrongFlag
			}
		case Unknown:
			if g.Board.IsMine(c) {
				g.View[i] = UnflaggedMine
			} else {
				g.View[i] = CellState(g.Board.NearbyMines(c))
			}
		}
	}
}
