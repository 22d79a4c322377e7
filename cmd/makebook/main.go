// Command makebook builds an opening book from a log of finished games,
// one per line in the form "+f5-d6+c3... +12".
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/othello/book"
)

func main() {
	in := pflag.StringP("in", "i", "-", "game log to read; - for stdin")
	out := pflag.StringP("out", "o", "book.yaml.gz", "book file to write; gzipped if it ends in .gz")
	plies := pflag.Int("plies", book.DefaultPlies, "plies of each game to record")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var r io.Reader = os.Stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		defer f.Close()
		r = f
	}
	tbl, err := book.ParseLog(r, *plies)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-parse-log")
	}
	if err := tbl.SaveFile(*out, *plies); err != nil {
		log.Fatal().Err(err).Msg("could-not-save-book")
	}
	log.Info().Int("positions", tbl.Len()).Str("out", *out).Msg("book-written")
}
