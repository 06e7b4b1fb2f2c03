package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/render"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type mockMatch struct {
	mock.Mock
}

func (that *mockMatch) MakeTurn(board, cell entity.Location) (entity.Result, error) {
	args := that.Called(board, cell)
	return args.Get(0).(entity.Result), args.Error(1)
}

func (that *mockMatch) NextRequired() (entity.Location, bool) {
	args := that.Called()
	return args.Get(0).(entity.Location), args.Bool(1)
}

func (that *mockMatch) Turn() *entity.Player {
	args := that.Called()
	return args.Get(0).(*entity.Player)
}

func (that *mockMatch) Snapshot() entity.GameBoard {
	args := that.Called()
	return args.Get(0).(entity.GameBoard)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func plainRenderer() *render.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	return render.New(r)
}

func newTestMatch(t *testing.T) *usecase.Match {
	t.Helper()

	match, err := usecase.NewMatch(testLogger(), entity.Cross,
		&entity.Player{Name: "Alice", Mark: entity.Cross},
		&entity.Player{Name: "Bob", Mark: entity.Nought},
	)
	require.NoError(t, err)

	return match
}

// fullGame is a game won by cross on the top master row. Free choice moves
// take two lines, the board and then the cell. A few rejected lines are mixed in.
var fullGame = []string{
	"1 2", "2 2",
	"hello", "4 1",
	"1 2",
	"2 2",
	"2 3", "1 3", "1 3", "1 1", "3 3", "1 1", "1 1", "1 3", "2 2", "1 3",
	"2 3", "1 2", "2 1", "2 3", "2 3", "1 1", "2 2", "2 2",
	"1 1", "1 2", "1 3", "3 1",
	"3 3",
}

func TestServer_Run(t *testing.T) {
	t.Run("Plays a full game until a winner", func(t *testing.T) {
		// Given: a console over a new match
		var out bytes.Buffer
		server := New(testLogger(), newTestMatch(t), plainRenderer(), &out, false)

		// When: the scripted game is read
		result, err := server.Run(context.Background(), strings.NewReader(strings.Join(fullGame, "\n")))

		// Then: cross wins
		require.NoError(t, err)
		assert.Equal(t, entity.Result{Outcome: entity.OutcomeWon, Winner: entity.Cross}, result)

		output := out.String()
		assert.Contains(t, output, "It is Alice (X)'s turn, any board may be played")
		assert.Contains(t, output, "It is Bob (O)'s turn in board 2:2")
		assert.Contains(t, output, "Error: bad input: expected two numbers, got 1\nInput: hello")
		assert.Contains(t, output, "Error: bad input: bad values (4, 1)\nInput: 4 1")
		assert.Contains(t, output, "Space is already filled at (2,2)")
		assert.True(t, strings.HasSuffix(output, "Winner is Alice (X)\n"), output)
		assert.NotContains(t, output, "\x1b[2J")
	})

	t.Run("Clears the screen after each move", func(t *testing.T) {
		// Given: a console with screen clearing
		var out bytes.Buffer
		server := New(testLogger(), newTestMatch(t), plainRenderer(), &out, true)

		// When: a single move is played before input ends
		_, err := server.Run(context.Background(), strings.NewReader("2 2\n2 2\n"))

		// Then: the screen was cleared and the board drawn
		require.ErrorIs(t, err, ErrInputClosed)
		assert.Contains(t, out.String(), "\x1b[2J")
		assert.Contains(t, out.String(), "‖| | | |‖| |X| |‖| | | |‖")
	})

	t.Run("Returns when input is closed", func(t *testing.T) {
		var out bytes.Buffer
		server := New(testLogger(), newTestMatch(t), plainRenderer(), &out, false)

		_, err := server.Run(context.Background(), strings.NewReader(""))

		require.ErrorIs(t, err, ErrInputClosed)
	})

	t.Run("Returns when the context is canceled", func(t *testing.T) {
		// Given: input that never delivers a line
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		server := New(testLogger(), newTestMatch(t), plainRenderer(), io.Discard, false)

		// When: running with a canceled context
		_, err := server.Run(ctx, reader)

		// Then: the context error is returned
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestServer_Run_MatchErrors(t *testing.T) {
	player := &entity.Player{Name: "Alice", Mark: entity.Cross}
	board := entity.Location{Row: 1, Col: 1}

	t.Run("Reports unexpected errors and keeps reading", func(t *testing.T) {
		// Given: a match that fails the move
		match := &mockMatch{}
		match.On("Turn").Return(player)
		match.On("NextRequired").Return(board, true)
		match.On("MakeTurn", board, entity.Location{Row: 0, Col: 0}).Return(entity.Result{}, errBoom).Once()

		var out bytes.Buffer
		server := New(testLogger(), match, plainRenderer(), &out, false)

		// When: one move is read
		_, err := server.Run(context.Background(), strings.NewReader("1 1\n"))

		// Then: the error is shown and the loop waits for more input
		require.ErrorIs(t, err, ErrInputClosed)
		assert.Contains(t, out.String(), "Error: boom")
		match.AssertExpectations(t)
	})

	t.Run("Reports invalid locations one-based", func(t *testing.T) {
		match := &mockMatch{}
		match.On("Turn").Return(player)
		match.On("NextRequired").Return(board, true)
		match.On("MakeTurn", board, entity.Location{Row: 2, Col: 0}).
			Return(entity.Result{}, &entity.PlacementError{Kind: apperror.ErrInvalidLocation, Row: 4, Col: 0}).
			Once()

		var out bytes.Buffer
		server := New(testLogger(), match, plainRenderer(), &out, false)

		_, err := server.Run(context.Background(), strings.NewReader("3 1\n"))

		require.ErrorIs(t, err, ErrInputClosed)
		assert.Contains(t, out.String(), "Location isn't valid at (5, 1)")
		match.AssertExpectations(t)
	})

	t.Run("Reports the forced board one-based", func(t *testing.T) {
		match := &mockMatch{}
		match.On("Turn").Return(player)
		match.On("NextRequired").Return(board, true)
		match.On("MakeTurn", board, entity.Location{Row: 0, Col: 1}).
			Return(entity.Result{}, &entity.WrongBoardError{Required: entity.Location{Row: 0, Col: 2}}).
			Once()

		var out bytes.Buffer
		server := New(testLogger(), match, plainRenderer(), &out, false)

		_, err := server.Run(context.Background(), strings.NewReader("1 2\n"))

		require.ErrorIs(t, err, ErrInputClosed)
		assert.Contains(t, out.String(), "Move must be played in board 1:3")
		match.AssertExpectations(t)
	})

	t.Run("Keeps the chosen board after a rejected cell", func(t *testing.T) {
		// Given: a free choice move where the first cell is taken
		chosen := entity.Location{Row: 2, Col: 0}
		match := &mockMatch{}
		match.On("Turn").Return(player)
		match.On("NextRequired").Return(entity.Location{}, false)
		match.On("Snapshot").Return(*entity.NewGameBoard())
		match.On("MakeTurn", chosen, entity.Location{Row: 1, Col: 1}).
			Return(entity.Result{}, &entity.PlacementError{Kind: apperror.ErrFilledSpace, Row: 1, Col: 1}).
			Once()
		match.On("MakeTurn", chosen, entity.Location{Row: 0, Col: 0}).
			Return(entity.Result{Outcome: entity.OutcomeWon, Winner: entity.Cross}, nil).
			Once()

		var out bytes.Buffer
		server := New(testLogger(), match, plainRenderer(), &out, false)

		// When: the board is chosen once and two cells are tried
		result, err := server.Run(context.Background(), strings.NewReader("3 1\n2 2\n1 1\n"))

		// Then: the second cell goes to the same board without choosing again
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWon, result.Outcome)
		assert.Contains(t, out.String(), "Space is already filled at (2,2)")
		assert.Contains(t, out.String(), "It is Alice (X)'s turn in board 3:1")
		match.AssertExpectations(t)
	})

	t.Run("Stops on a finished game", func(t *testing.T) {
		// Given: a match that is already over
		match := &mockMatch{}
		match.On("Turn").Return(player)
		match.On("NextRequired").Return(board, true)
		match.On("MakeTurn", board, board).Return(entity.Result{}, apperror.ErrGameFinished).Once()

		server := New(testLogger(), match, plainRenderer(), io.Discard, false)

		// When: a move is read
		_, err := server.Run(context.Background(), strings.NewReader("2 2\n2 2\n"))

		// Then: the loop stops with the error
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		match.AssertExpectations(t)
	})
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    entity.Location
		wantErr bool
	}{
		{name: "top left", input: "1 1", want: entity.Location{Row: 0, Col: 0}},
		{name: "bottom right with spaces", input: "  3   3 ", want: entity.Location{Row: 2, Col: 2}},
		{name: "middle right", input: "2 3", want: entity.Location{Row: 1, Col: 2}},
		{name: "one value", input: "1", wantErr: true},
		{name: "three values", input: "1 2 3", wantErr: true},
		{name: "not a number", input: "a 1", wantErr: true},
		{name: "zero", input: "0 1", wantErr: true},
		{name: "too large", input: "1 4", wantErr: true},
		{name: "negative", input: "-1 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadInput)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
