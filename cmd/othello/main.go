package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/othello/book"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/protocol"
	"github.com/domino14/othello/turnplayer"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func loadBook(path string) (*book.Book, error) {
	if path == "" {
		log.Info().Msg("playing-without-book")
		return nil, nil
	}
	tbl, err := book.Get(path)
	if err != nil {
		return nil, err
	}
	return book.New(tbl), nil
}

func run(ctx context.Context, cfg *config.Config) error {
	bk, err := loadBook(cfg.GetString(config.ConfigBookPath))
	if err != nil {
		return err
	}
	settings := turnplayer.SettingsFromConfig(cfg)
	if err := settings.Validate(); err != nil {
		return err
	}
	player := turnplayer.NewAIPlayer(settings, bk)
	defer player.Close()

	conn, err := protocol.Dial(ctx, cfg.Address(), cfg.GetUint(config.ConfigConnectAttempts))
	if err != nil {
		return err
	}
	cl := protocol.NewClient(conn, cfg.GetString(config.ConfigPlayerName), player)
	cl.SetVerbose(cfg.GetBool(config.ConfigVerbose))
	return cl.Run(ctx)
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("player-stopped")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("goodbye")
}
