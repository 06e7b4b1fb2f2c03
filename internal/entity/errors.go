package entity

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

// PlacementError is returned when a placement targets an invalid or occupied cell.
// Row and Col are 0-based; presenting them to a user is up to the caller.
type PlacementError struct {
	Kind error
	Row  int
	Col  int
}

func (that *PlacementError) Error() string {
	return fmt.Sprintf("%s at (%d, %d)", that.Kind, that.Row, that.Col)
}

func (that *PlacementError) Unwrap() error {
	return that.Kind
}

func newInvalidLocation(row, col int) *PlacementError {
	return &PlacementError{Kind: apperror.ErrInvalidLocation, Row: row, Col: col}
}

func newFilledSpace(row, col int) *PlacementError {
	return &PlacementError{Kind: apperror.ErrFilledSpace, Row: row, Col: col}
}

// WrongBoardError is returned when a placement ignores the forced sub-board.
// Required is 0-based.
type WrongBoardError struct {
	Required Location
}

func (that *WrongBoardError) Error() string {
	return fmt.Sprintf("%s: board (%d, %d) is required", apperror.ErrWrongBoard, that.Required.Row, that.Required.Col)
}

func (that *WrongBoardError) Unwrap() error {
	return apperror.ErrWrongBoard
}
