package entity

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

// SubBoard is a single 3x3 tic-tac-toe grid. The zero value is an empty board.
type SubBoard struct {
	cells  [Size][Size]Marking
	winner Marking
}

// Place - puts the marking on an empty cell and records the first winner.
func (that *SubBoard) Place(row, col int, marking Marking) error {
	if !marking.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMarking, marking)
	}

	if !(Location{Row: row, Col: col}).Valid() {
		return newInvalidLocation(row, col)
	}

	if that.cells[row][col] != None {
		return newFilledSpace(row, col)
	}

	that.cells[row][col] = marking

	// the first completed line decides the board for good
	if that.winner == None && that.hasLine(marking) {
		that.winner = marking
	}

	return nil
}

// Winner returns the recorded winner, false while undecided (a drawn board included).
func (that *SubBoard) Winner() (Marking, bool) {
	return that.winner, that.winner != None
}

func (that *SubBoard) Contains(row, col int, marking Marking) bool {
	return marking.IsPlayer() && that.At(row, col) == marking
}

// At returns the marking in the cell, None for empty or out of range cells.
func (that *SubBoard) At(row, col int) Marking {
	if !(Location{Row: row, Col: col}).Valid() {
		return None
	}

	return that.cells[row][col]
}

func (that *SubBoard) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == None {
				return false
			}
		}
	}

	return true
}

// IsDecided reports whether the board is won or has no empty cell left.
func (that *SubBoard) IsDecided() bool {
	return that.winner != None || that.IsFull()
}

func (that *SubBoard) hasLine(marking Marking) bool {
	for _, line := range WinLines {
		if that.Contains(line[0].Row, line[0].Col, marking) &&
			that.Contains(line[1].Row, line[1].Col, marking) &&
			that.Contains(line[2].Row, line[2].Col, marking) {
			return true
		}
	}

	return false
}
