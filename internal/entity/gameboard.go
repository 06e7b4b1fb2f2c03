package entity

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

// Outcome is the state of the whole game after a placement.
type Outcome uint8

const (
	OutcomeOngoing Outcome = iota
	OutcomeWon
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWon:
		return "won"
	case OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Result describes what a successful placement led to.
// Next is the cell just played; Forced tells whether the next move must go to sub-board Next.
type Result struct {
	Outcome Outcome
	Winner  Marking
	Next    Location
	Forced  bool
}

// GameBoard is a 3x3 arrangement of sub-boards plus the master grid of their winners.
type GameBoard struct {
	boards [Size][Size]SubBoard
	master SubBoard

	next    Location
	forced  bool
	outcome Outcome
}

func NewGameBoard() *GameBoard {
	return &GameBoard{}
}

// Place - plays marking at cell (cellRow, cellCol) of sub-board (subRow, subCol).
// A failed placement leaves the board untouched.
func (that *GameBoard) Place(subRow, subCol, cellRow, cellCol int, marking Marking) (Result, error) {
	if that.outcome != OutcomeOngoing {
		return Result{}, apperror.ErrGameFinished
	}

	if !marking.IsPlayer() {
		return Result{}, fmt.Errorf("%w: %d", apperror.ErrInvalidMarking, marking)
	}

	target := Location{Row: subRow, Col: subCol}
	if !target.Valid() {
		return Result{}, newInvalidLocation(subRow, subCol)
	}

	if that.forced && target != that.next {
		return Result{}, &WrongBoardError{Required: that.next}
	}

	board := &that.boards[subRow][subCol]
	if err := board.Place(cellRow, cellCol, marking); err != nil {
		return Result{}, err
	}

	that.updateMaster(target)

	if that.master.hasLine(marking) {
		that.outcome = OutcomeWon
		that.forced = false

		return Result{Outcome: OutcomeWon, Winner: marking}, nil
	}

	// no placement can change the master grid any more
	if that.allDecided() {
		that.outcome = OutcomeDraw
		that.forced = false

		return Result{Outcome: OutcomeDraw}, nil
	}

	// a decided board can't be forced, the opponent picks freely
	that.next = Location{Row: cellRow, Col: cellCol}
	that.forced = !that.boards[cellRow][cellCol].IsDecided()

	return Result{Outcome: OutcomeOngoing, Next: that.next, Forced: that.forced}, nil
}

// updateMaster copies a sub-board winner into the master grid once.
func (that *GameBoard) updateMaster(loc Location) {
	if that.master.At(loc.Row, loc.Col) != None {
		return
	}

	winner, ok := that.boards[loc.Row][loc.Col].Winner()
	if !ok {
		return
	}

	that.master.cells[loc.Row][loc.Col] = winner
	if that.master.winner == None && that.master.hasLine(winner) {
		that.master.winner = winner
	}
}

func (that *GameBoard) allDecided() bool {
	for row := range that.boards {
		for col := range that.boards[row] {
			if !that.boards[row][col].IsDecided() {
				return false
			}
		}
	}

	return true
}

// Board returns a copy of the sub-board at (row, col).
func (that *GameBoard) Board(row, col int) SubBoard {
	if !(Location{Row: row, Col: col}).Valid() {
		return SubBoard{}
	}

	return that.boards[row][col]
}

// Master returns a copy of the master grid.
func (that *GameBoard) Master() SubBoard {
	return that.master
}

// NextRequired returns the sub-board the next placement is forced into, if any.
func (that *GameBoard) NextRequired() (Location, bool) {
	return that.next, that.forced
}

func (that *GameBoard) Outcome() Outcome {
	return that.outcome
}

// Winner returns the overall winner once the game is won.
func (that *GameBoard) Winner() (Marking, bool) {
	if that.outcome != OutcomeWon {
		return None, false
	}

	return that.master.Winner()
}

func (that *GameBoard) IsFinished() bool {
	return that.outcome != OutcomeOngoing
}

// Playable lists the sub-boards the next placement may target.
func (that *GameBoard) Playable() []Location {
	if that.IsFinished() {
		return nil
	}

	if that.forced {
		return []Location{that.next}
	}

	playable := make([]Location, 0, Size*Size)
	for row := range that.boards {
		for col := range that.boards[row] {
			if !that.boards[row][col].IsFull() {
				playable = append(playable, Location{Row: row, Col: col})
			}
		}
	}

	return playable
}
