// Package ordering keeps sibling collections densely numbered 1..N.
package ordering

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a target index falls outside [0, len(siblings)].
var ErrOutOfRange = errors.New("new order position is out of range")

// Sequenced is an item carrying a 1-based position among its siblings.
type Sequenced interface {
	SetOrder(order int)
}

// Move inserts moved into siblings at the zero-based index and renumbers the
// result 1..N. siblings must be in current order and must not contain moved.
// On error nothing is renumbered.
func Move[T Sequenced](siblings []T, moved T, index int) ([]T, error) {
	if index < 0 || index > len(siblings) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, index, len(siblings))
	}

	out := make([]T, 0, len(siblings)+1)
	out = append(out, siblings[:index]...)
	out = append(out, moved)
	out = append(out, siblings[index:]...)

	Renumber(out)
	return out, nil
}

// Renumber assigns order = position + 1 to every item.
func Renumber[T Sequenced](items []T) {
	for i, item := range items {
		item.SetOrder(i + 1)
	}
}

// Next is the order given to an item appended after the current maximum.
func Next(currentMax int) int {
	return currentMax + 1
}

// Without returns the items for which skip reports false, keeping their order.
func Without[T any](items []T, skip func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !skip(item) {
			out = append(out, item)
		}
	}
	return out
}
