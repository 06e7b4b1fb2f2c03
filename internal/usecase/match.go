package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

// Match is a single game session between two players. All mutation goes through its mutex.
type Match struct {
	logger *slog.Logger

	mu      sync.Mutex
	id      string
	board   *entity.GameBoard
	players map[entity.Marking]*entity.Player
	turn    entity.Marking
	moves   int
}

func NewMatch(logger *slog.Logger, first entity.Marking, cross, nought *entity.Player) (*Match, error) {
	if !first.IsPlayer() {
		return nil, fmt.Errorf("%w: first mark %d", apperror.ErrInvalidMarking, first)
	}

	if cross == nil || cross.Mark != entity.Cross {
		return nil, fmt.Errorf("%w: cross seat", apperror.ErrPlayerMismatch)
	}

	if nought == nil || nought.Mark != entity.Nought {
		return nil, fmt.Errorf("%w: nought seat", apperror.ErrPlayerMismatch)
	}

	id := uuid.NewString()

	return &Match{
		logger: logger.With("component", "match", "match_id", id),
		id:     id,
		board:  entity.NewGameBoard(),
		players: map[entity.Marking]*entity.Player{
			entity.Cross:  cross,
			entity.Nought: nought,
		},
		turn: first,
	}, nil
}

// MakeTurn - places the current player's mark and passes the turn on.
func (that *Match) MakeTurn(board, cell entity.Location) (entity.Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "player", that.turn.String(), "board", board, "cell", cell)

	result, err := that.board.Place(board.Row, board.Col, cell.Row, cell.Col, that.turn)
	if err != nil {
		log.Debug("turn rejected", "error", err)

		return entity.Result{}, fmt.Errorf("failed to make turn: %w", err)
	}

	that.moves++

	switch result.Outcome {
	case entity.OutcomeWon:
		log.Info("game won", "moves", that.moves)
	case entity.OutcomeDraw:
		log.Info("game drawn", "moves", that.moves)
	default:
		log.Debug("turn made", "next", result.Next, "forced", result.Forced)
		that.turn = that.turn.Opponent()
	}

	return result, nil
}

func (that *Match) ID() string {
	return that.id
}

// Turn returns the player to move, or the last mover once the game is over.
func (that *Match) Turn() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.players[that.turn]
}

func (that *Match) Player(mark entity.Marking) *entity.Player {
	return that.players[mark]
}

func (that *Match) Moves() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.moves
}

func (that *Match) NextRequired() (entity.Location, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.NextRequired()
}

func (that *Match) IsFinished() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.IsFinished()
}

// Snapshot returns a copy of the board safe to read without the lock.
func (that *Match) Snapshot() entity.GameBoard {
	that.mu.Lock()
	defer that.mu.Unlock()

	return *that.board
}
