package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
)

// Marking is a player's symbol. The zero value marks an empty cell.
type Marking uint8

const (
	None Marking = iota
	Cross
	Nought
)

// Size is the side length of every grid in the game.
const Size = 3

func (that Marking) String() string {
	switch that {
	case Cross:
		return "X"
	case Nought:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other player's marking. None has no opponent.
func (that Marking) Opponent() Marking {
	switch that {
	case Cross:
		return Nought
	case Nought:
		return Cross
	default:
		return None
	}
}

func (that Marking) IsPlayer() bool {
	return that == Cross || that == Nought
}

// ParseMarking - accepts "X"/"O" in any case.
func ParseMarking(s string) (Marking, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return Cross, nil
	case "O":
		return Nought, nil
	default:
		return None, fmt.Errorf("%w: %q", apperror.ErrInvalidMarking, s)
	}
}

// Location addresses a cell of a sub-board or a sub-board of the game, 0-based.
type Location struct {
	Row int
	Col int
}

func (that Location) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// WinLines lists the 3 rows, 3 columns and 2 diagonals of a 3x3 grid.
var WinLines = [8][3]Location{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}
