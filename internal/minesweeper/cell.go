package minesweeper

import (
	"bytes"
	"cmp"
	"encoding/gob"
	"fmt"
	"slices"
	"strings"
)

type void struct{}

// Cell addresses a single board square by zero-based row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

func cellcmp(a, b Cell) int {
	if a.Row != b.Row {
		return cmp.Compare(a.Row, b.Row)
	}
	return cmp.Compare(a.Col, b.Col)
}

type CellSet map[Cell]void

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

func (s CellSet) Add(c Cell)      { s[c] = void{} }
func (s CellSet) Delete(c Cell)   { delete(s, c) }
func (s CellSet) Has(c Cell) bool { _, ok := s[c]; return ok }

func (s CellSet) Clone() CellSet {
	x := make(CellSet, len(s))
	for c := range s {
		x.Add(c)
	}
	return x
}

// Slice returns the cells in row-major order, so that iteration over a
// set is reproducible under a seeded [rand.Rand].
func (s CellSet) Slice() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, cellcmp)
	return cells
}

func (s CellSet) Equal(x CellSet) bool {
	if len(s) != len(x) {
		return false
	}
	for c := range s {
		if !x.Has(c) {
			return false
		}
	}
	return true
}

func (s CellSet) IsSubset(x CellSet) bool {
	for c := range s {
		if !x.Has(c) {
			return false
		}
	}
	return true
}

func (s CellSet) Intersect(x CellSet) CellSet {
	result := make(CellSet)
	for c := range s {
		if x.Has(c) {
			result.Add(c)
		}
	}
	return result
}

// Complement returns the cells of s that are not in x.
func (s CellSet) Complement(x CellSet) CellSet {
	result := make(CellSet)
	for c := range s {
		if !x.Has(c) {
			result.Add(c)
		}
	}
	return result
}

func (s CellSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range s.Slice() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("}")
	return b.String()
}

// gob refuses the empty struct used as the map value, so sets travel
// as sorted slices.

func (s CellSet) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s.Slice()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *CellSet) GobDecode(data []byte) error {
	var cells []Cell
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&cells); err != nil {
		return err
	}
	*s = NewCellSet(cells...)
	return nil
}
