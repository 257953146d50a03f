package minesweeper

import "fmt"

// Sentence is a logical statement about a game: exactly Count of the
// listed cells are mines. Every cell named by a sentence is one whose
// state is not yet known; as soon as a cell is found to be safe or a
// mine it is removed from every sentence that names it.
type Sentence struct {
	Cells CellSet
	Count int
}

// NewSentence panics [AssertionError] when the statement cannot be
// true of any board.
func NewSentence(cells CellSet, count int) *Sentence {
	if count < 0 || count > len(cells) {
		panic(AssertionError{fmt.Sprintf(
			"contradictory sentence: %s = %d", cells, count,
		)})
	}
	return &Sentence{Cells: cells.Clone(), Count: count}
}

func (s *Sentence) Equal(x *Sentence) bool {
	return s.Count == x.Count && s.Cells.Equal(x.Cells)
}

func (s *Sentence) String() string {
	return fmt.Sprintf("%s = %d", s.Cells, s.Count)
}

// KnownMines returns the cells this sentence alone proves to be mines,
// which is all of them when Count covers every cell.
func (s *Sentence) KnownMines() CellSet {
	if len(s.Cells) > 0 && s.Count == len(s.Cells) {
		return s.Cells.Clone()
	}
	return nil
}

// KnownSafes returns the cells this sentence alone proves to be safe,
// which is all of them when Count is zero.
func (s *Sentence) KnownSafes() CellSet {
	if len(s.Cells) > 0 && s.Count == 0 {
		return s.Cells.Clone()
	}
	return nil
}

// MarkMine removes a cell known to be a mine, discounting it from
// Count. Panics [AssertionError] if the sentence claimed the cell was
// safe.
func (s *Sentence) MarkMine(c Cell) {
	if !s.Cells.Has(c) {
		return
	}
	if s.Count == 0 {
		panic(AssertionError{fmt.Sprintf(
			"cell %s marked a mine but %s holds it safe", c, s,
		)})
	}
	s.Cells.Delete(c)
	s.Count--
}

// MarkSafe removes a cell known to be safe. Panics [AssertionError] if
// the sentence claimed the cell was a mine.
func (s *Sentence) MarkSafe(c Cell) {
	if !s.Cells.Has(c) {
		return
	}
	if s.Count == len(s.Cells) {
		panic(AssertionError{fmt.Sprintf(
			"cell %s marked safe but %s holds it mined", c, s,
		)})
	}
	s.Cells.Delete(c)
}
