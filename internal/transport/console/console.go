package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/render"
)

var (
	ErrBadInput    = errors.New("bad input")
	ErrInputClosed = errors.New("input closed")
)

type matchUseCase interface {
	MakeTurn(board, cell entity.Location) (entity.Result, error)
	NextRequired() (entity.Location, bool)
	Turn() *entity.Player
	Snapshot() entity.GameBoard
}

type Server struct {
	logger   *slog.Logger
	match    matchUseCase
	renderer *render.Renderer
	out      *termenv.Output
	clear    bool
}

// New - creates a console loop writing to w. When clear is set the screen is wiped before each board.
func New(logger *slog.Logger, match matchUseCase, renderer *render.Renderer, w io.Writer, clear bool) *Server {
	return &Server{
		logger:   logger.With("component", "console"),
		match:    match,
		renderer: renderer,
		out:      termenv.NewOutput(w),
		clear:    clear,
	}
}

// Run - plays the match with moves read line by line until it is won or drawn.
func (that *Server) Run(ctx context.Context, in io.Reader) (entity.Result, error) {
	done := make(chan struct{})
	defer close(done)

	lines := that.readLines(in, done)

	// board picked by the player while the next move is a free choice
	var chosen *entity.Location

	that.prompt(chosen)
	for {
		var line string
		select {
		case <-ctx.Done():
			return entity.Result{}, ctx.Err()
		case text, ok := <-lines:
			if !ok {
				return entity.Result{}, ErrInputClosed
			}
			line = text
		}

		pos, err := ParsePosition(line)
		if err != nil {
			that.printf("Error: %s\nInput: %s\n", err, line)
			that.prompt(chosen)
			continue
		}

		board, forced := that.match.NextRequired()
		if !forced && chosen == nil {
			chosen = that.chooseBoard(pos)
			that.prompt(chosen)
			continue
		}

		if !forced {
			board = *chosen
		}

		result, err := that.match.MakeTurn(board, pos)
		if errors.Is(err, apperror.ErrGameFinished) {
			return entity.Result{}, fmt.Errorf("failed to make turn: %w", err)
		}

		if err != nil {
			that.printf("%s\n", describe(err))
			that.prompt(chosen)
			continue
		}

		chosen = nil
		that.draw()

		switch result.Outcome {
		case entity.OutcomeWon:
			that.printf("Winner is %s\n", that.match.Turn())
			return result, nil
		case entity.OutcomeDraw:
			that.printf("The game is a draw\n")
			return result, nil
		default:
			that.prompt(chosen)
		}
	}
}

// chooseBoard accepts a board for a free choice move, nil if it has no empty cell.
func (that *Server) chooseBoard(pos entity.Location) *entity.Location {
	snapshot := that.match.Snapshot()
	if !slices.Contains(snapshot.Playable(), pos) {
		that.printf("Board %d:%d is full, choose another one\n", pos.Row+1, pos.Col+1)
		return nil
	}

	return &pos
}

func (that *Server) prompt(chosen *entity.Location) {
	player := that.match.Turn()

	board, forced := that.match.NextRequired()
	switch {
	case forced:
		that.printf("It is %s's turn in board %d:%d\n", player, board.Row+1, board.Col+1)
	case chosen != nil:
		that.printf("It is %s's turn in board %d:%d\n", player, chosen.Row+1, chosen.Col+1)
	default:
		that.printf("It is %s's turn, any board may be played\n", player)
		that.printf("Choose a board (row col): \n")
		return
	}

	that.printf("Enter your move (row col): \n")
}

func (that *Server) draw() {
	if that.clear {
		that.out.ClearScreen()
	}

	snapshot := that.match.Snapshot()
	that.printf("%s\n%s\n", that.renderer.GameBoard(snapshot), that.renderer.SubBoard(snapshot.Master()))
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Server) readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		if err := scanner.Err(); err != nil {
			that.logger.Error("failed to read input", "error", err)
		}
	}()

	return lines
}

// ParsePosition - parses "row col" with both values in 1..3 into a 0-based location.
func ParsePosition(input string) (entity.Location, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return entity.Location{}, fmt.Errorf("%w: expected two numbers, got %d", ErrBadInput, len(fields))
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Location{}, fmt.Errorf("%w: %q is not a number", ErrBadInput, fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Location{}, fmt.Errorf("%w: %q is not a number", ErrBadInput, fields[1])
	}

	if row < 1 || row > entity.Size || col < 1 || col > entity.Size {
		return entity.Location{}, fmt.Errorf("%w: bad values (%d, %d)", ErrBadInput, row, col)
	}

	return entity.Location{Row: row - 1, Col: col - 1}, nil
}

// describe turns a rejected move into a message with 1-based coordinates.
func describe(err error) string {
	var (
		placementErr  *entity.PlacementError
		wrongBoardErr *entity.WrongBoardError
	)

	switch {
	case errors.As(err, &placementErr) && errors.Is(err, apperror.ErrFilledSpace):
		return fmt.Sprintf("Space is already filled at (%d,%d)", placementErr.Row+1, placementErr.Col+1)
	case errors.As(err, &placementErr):
		return fmt.Sprintf("Location isn't valid at (%d, %d)", placementErr.Row+1, placementErr.Col+1)
	case errors.As(err, &wrongBoardErr):
		return fmt.Sprintf("Move must be played in board %d:%d", wrongBoardErr.Required.Row+1, wrongBoardErr.Required.Col+1)
	case errors.Is(err, apperror.ErrWrongBoard):
		return "Move must be played in the board shown above"
	default:
		return "Error: " + err.Error()
	}
}
