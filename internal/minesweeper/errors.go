package minesweeper

import "errors"

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

var ErrGameOver = errors.New("game is over")
