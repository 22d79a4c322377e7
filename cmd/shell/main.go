package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/othello/book"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/shell"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	var bk *book.Book
	if path := cfg.GetString(config.ConfigBookPath); path != "" {
		tbl, err := book.Get(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-load-book")
		}
		bk = book.New(tbl)
	}

	sc, err := shell.NewShellController(cfg, bk)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	// readline handles ^C itself; Loop reports it on sig when it leaves.
	sig := make(chan os.Signal, 1)
	sc.Loop(sig)
	log.Debug().Str("signal", (<-sig).String()).Msg("shell-exited")
}
