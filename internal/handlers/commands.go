package handlers

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/mroldan747/ai50/internal/minesweeper"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"r": 2,
	"f": 2,
	"h": 0,
}

func parseCell(twoStrings []string) (c minesweeper.Cell, err error) {
	if c.Row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if c.Col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func executeCommand(g *minesweeper.Game, rnd *rand.Rand, command string) error {
	parts := strings.Split(command, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return nil
	case "r":
		cell, err := parseCell(parts[1:])
		if err != nil {
			return err
		}
		if !g.Board.InBounds(cell) {
			return errors.New("invalid cell coordinates")
		}
		return g.Reveal(cell)
	case "f":
		cell, err := parseCell(parts[1:])
		if err != nil {
			return err
		}
		if !g.Board.InBounds(cell) {
			return errors.New("invalid cell coordinates")
		}
		return g.ToggleFlag(cell)
	case "h":
		_, err := g.Step(rnd)
		return err
	}
	return errors.New("invalid command")
}
