// Package minesweeper implements a Minesweeper board together with a
// propositional-logic agent that plays it. The agent keeps a knowledge
// base of [Sentence] values and draws every conclusion the base
// supports after each revealed cell.
package minesweeper

import (
	"math/rand/v2"

	"github.com/gammazero/deque"
)

type Agent struct {
	Height, Width int

	MovesMade CellSet
	Safes     CellSet
	Mines     CellSet
	Knowledge []*Sentence
}

func NewAgent(height, width int) *Agent {
	return &Agent{
		Height:    height,
		Width:     width,
		MovesMade: make(CellSet),
		Safes:     make(CellSet),
		Mines:     make(CellSet),
	}
}

// MarkMine records that a cell is a mine and removes it from every
// sentence that names it.
func (a *Agent) MarkMine(c Cell) {
	a.Mines.Add(c)
	for _, s := range a.Knowledge {
		s.MarkMine(c)
	}
}

// MarkSafe records that a cell is safe and removes it from every
// sentence that names it.
func (a *Agent) MarkSafe(c Cell) {
	a.Safes.Add(c)
	for _, s := range a.Knowledge {
		s.MarkSafe(c)
	}
}

// SurroundingCells collects the neighbors of c whose state the agent
// has not determined, along with the number of neighbors already known
// to be mines.
func (a *Agent) SurroundingCells(c Cell) (cells CellSet, knownMines int) {
	cells = make(CellSet)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{c.Row + dr, c.Col + dc}
			if n.Row < 0 || n.Row >= a.Height ||
				n.Col < 0 || n.Col >= a.Width {
				continue
			}
			if a.Mines.Has(n) {
				knownMines++
			} else if !a.Safes.Has(n) && !a.MovesMade.Has(n) {
				cells.Add(n)
			}
		}
	}
	return
}

// AddKnowledge records that a revealed safe cell has count mined
// neighbors, then draws every conclusion the knowledge base supports:
// cells proven safe or mined are marked, and any sentence derivable by
// subset resolution is added.
//
// Panics [AssertionError] when the new fact contradicts the base.
func (a *Agent) AddKnowledge(cell Cell, count int) {
	a.MovesMade.Add(cell)
	a.MarkSafe(cell)

	cells, knownMines := a.SurroundingCells(cell)

	/*
	 * Sentences wait here until their consequences are drawn. Marking
	 * a cell re-queues every stored sentence it shrinks, so by the
	 * time the queue drains the base has reached a fixed point.
	 * Suppressing sentences equal to stored ones keeps it finite:
	 * without that, resolving {A, B} = 1 against {A} = 1 and the
	 * derived {B} = 0 against {A, B} = 1 would re-derive each other
	 * forever.
	 */
	var pending deque.Deque[*Sentence]
	pending.PushBack(NewSentence(cells, count-knownMines))

	for pending.Len() > 0 {
		s := pending.PopFront()

		/*
		 * Facts learned while s sat in the queue never reached it:
		 * marks only propagate through stored sentences. Catch up
		 * before doing anything else.
		 */
		for _, c := range s.Cells.Intersect(a.Mines).Slice() {
			s.MarkMine(c)
		}
		for _, c := range s.Cells.Intersect(a.Safes).Slice() {
			s.MarkSafe(c)
		}
		if len(s.Cells) == 0 {
			continue
		}

		/*
		 * A sentence naming all or none of its cells as mines
		 * resolves on the spot and is not worth storing.
		 */
		if mines := s.KnownMines(); len(mines) != 0 {
			for _, c := range mines.Slice() {
				a.markMine(c, &pending)
			}
			continue
		}
		if safes := s.KnownSafes(); len(safes) != 0 {
			for _, c := range safes.Slice() {
				a.markSafe(c, &pending)
			}
			continue
		}

		if a.known(s) {
			continue /* already on it */
		}
		if !a.stored(s) {
			a.Knowledge = append(a.Knowledge, s)
		}

		/*
		 * Resolve s against every stored sentence. When one side's
		 * cells contain the other's, the cells unique to the larger
		 * side form a new sentence counting the difference of the
		 * counts.
		 */
		for _, k := range a.Knowledge {
			if k == s {
				continue
			}
			var d *Sentence
			switch {
			case k.Cells.IsSubset(s.Cells):
				d = NewSentence(s.Cells.Complement(k.Cells), s.Count-k.Count)
			case s.Cells.IsSubset(k.Cells):
				d = NewSentence(k.Cells.Complement(s.Cells), k.Count-s.Count)
			default:
				continue
			}
			if !a.known(d) {
				pending.PushBack(d)
			}
		}
	}

	/* emptied and duplicated sentences carry no information */
	a.cleanup()
}

// markMine is [Agent.MarkMine] plus re-queueing of every sentence the
// mark shrinks, so their own conclusions get drawn in turn.
func (a *Agent) markMine(c Cell, pending *deque.Deque[*Sentence]) {
	if a.Mines.Has(c) {
		return /* already on it */
	}
	for _, s := range a.Knowledge {
		if s.Cells.Has(c) {
			pending.PushBack(s)
		}
	}
	a.MarkMine(c)
}

func (a *Agent) markSafe(c Cell, pending *deque.Deque[*Sentence]) {
	if a.Safes.Has(c) {
		return /* already on it */
	}
	for _, s := range a.Knowledge {
		if s.Cells.Has(c) {
			pending.PushBack(s)
		}
	}
	a.MarkSafe(c)
}

// known reports whether an equal sentence other than s itself is
// stored. A sentence that shrinks into the shape of another stored
// sentence can skip re-resolution: equal sentences derive equal
// conclusions.
func (a *Agent) known(s *Sentence) bool {
	for _, k := range a.Knowledge {
		if k != s && k.Equal(s) {
			return true
		}
	}
	return false
}

func (a *Agent) stored(s *Sentence) bool {
	for _, k := range a.Knowledge {
		if k == s {
			return true
		}
	}
	return false
}

func (a *Agent) cleanup() {
	kept := a.Knowledge[:0]
	for _, s := range a.Knowledge {
		if len(s.Cells) == 0 {
			continue
		}
		dup := false
		for _, k := range kept {
			if k.Equal(s) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, s)
		}
	}
	a.Knowledge = kept
}

// SafeMove returns a cell known to be safe that has not been played,
// preferring the first in row-major order, or false when no such cell
// is known.
func (a *Agent) SafeMove() (Cell, bool) {
	candidates := a.Safes.Complement(a.MovesMade)
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates.Slice()[0], true
}

// RandomMove picks uniformly among the cells that have been neither
// played nor proven to be mines. It returns false when no such cell
// remains, which is a normal end state and not an error.
func (a *Agent) RandomMove(r *rand.Rand) (Cell, bool) {
	var candidates []Cell
	for row := range a.Height {
		for col := range a.Width {
			c := Cell{row, col}
			if !a.MovesMade.Has(c) && !a.Mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[r.IntN(len(candidates))], true
}
