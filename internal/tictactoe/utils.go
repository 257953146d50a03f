package tictactoe

func iif[T any](condition bool, valueIfTrue T, valueIfFalse T) T {
	if condition {
		return valueIfTrue
	}
	return valueIfFalse
}
