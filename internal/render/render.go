package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const (
	subBoardRule  = "-------"
	gameBoardRule = "========================="
	innerRowRule  = "‖-------‖-------‖-------‖"
)

// Renderer draws boards as text. Cell styles depend on the renderer's color profile.
type Renderer struct {
	cross  lipgloss.Style
	nought lipgloss.Style
}

func New(r *lipgloss.Renderer) *Renderer {
	return &Renderer{
		cross:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		nought: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	}
}

// SubBoard - draws a single board, also used for the master grid.
func (that *Renderer) SubBoard(board entity.SubBoard) string {
	var sb strings.Builder

	sb.WriteString(subBoardRule + "\n")
	for row := 0; row < entity.Size; row++ {
		sb.WriteByte('|')
		that.writeRow(&sb, &board, row)
		sb.WriteString("\n" + subBoardRule + "\n")
	}

	return sb.String()
}

// GameBoard - draws all nine boards, separated by double bars.
func (that *Renderer) GameBoard(game entity.GameBoard) string {
	var sb strings.Builder

	sb.WriteString(gameBoardRule + "\n")
	for boardRow := 0; boardRow < entity.Size; boardRow++ {
		for row := 0; row < entity.Size; row++ {
			sb.WriteString("‖")
			for boardCol := 0; boardCol < entity.Size; boardCol++ {
				board := game.Board(boardRow, boardCol)
				sb.WriteByte('|')
				that.writeRow(&sb, &board, row)
				sb.WriteString("‖")
			}
			sb.WriteString("\n" + innerRowRule + "\n")
		}
		sb.WriteString(gameBoardRule + "\n")
	}

	return sb.String()
}

func (that *Renderer) writeRow(sb *strings.Builder, board *entity.SubBoard, row int) {
	for col := 0; col < entity.Size; col++ {
		sb.WriteString(that.cell(board.At(row, col)))
		sb.WriteByte('|')
	}
}

func (that *Renderer) cell(mark entity.Marking) string {
	switch mark {
	case entity.Cross:
		return that.cross.Render(mark.String())
	case entity.Nought:
		return that.nought.Render(mark.String())
	default:
		return mark.String()
	}
}
