package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/config"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/render"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/transport/console"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/usecase"
)

// RunApp - runs a console match reading moves from in and drawing to out.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return run(ctx, logger, conf, in, out)
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	first, err := entity.ParseMarking(conf.FirstMark)
	if err != nil {
		return fmt.Errorf("invalid first mark in config: %w", err)
	}

	match, err := usecase.NewMatch(logger, first,
		&entity.Player{Name: conf.Players.Cross, Mark: entity.Cross},
		&entity.Player{Name: conf.Players.Nought, Mark: entity.Nought},
	)
	if err != nil {
		return fmt.Errorf("could not create match: %w", err)
	}

	lg := lipgloss.NewRenderer(out)
	if conf.Console.Plain {
		lg.SetColorProfile(termenv.Ascii)
	}

	server := console.New(logger, match, render.New(lg), out, !conf.Console.Plain)

	log.Info("Starting match", "match_id", match.ID(), "first", first.String())

	result, err := server.Run(ctx, in)
	switch {
	case errors.Is(err, console.ErrInputClosed), errors.Is(err, context.Canceled):
		log.Info("Match abandoned", "match_id", match.ID(), "moves", match.Moves())
		return nil
	case err != nil:
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Match over", "match_id", match.ID(), "outcome", result.Outcome.String(), "moves", match.Moves())

	return nil
}
