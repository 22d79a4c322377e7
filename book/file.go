package book

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/cache"
)

type entry struct {
	Black uint64 `yaml:"black"`
	White uint64 `yaml:"white"`
	Stats `yaml:",inline"`
}

type bookFile struct {
	Plies   int     `yaml:"plies"`
	Entries []entry `yaml:"entries"`
}

// Read decodes a YAML book.
func Read(r io.Reader) (*Table, error) {
	var f bookFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}
	t := NewTable()
	for _, e := range f.Entries {
		b := board.Board{Black: e.Black, White: e.White}
		if b.Black&b.White != 0 {
			return nil, fmt.Errorf("book entry %x/%x has overlapping discs", e.Black, e.White)
		}
		t.Add(b, e.Stats)
	}
	return t, nil
}

// Write encodes t as YAML, entries sorted so the output is reproducible.
// plies records how many plies of each game the table was built from.
func (t *Table) Write(w io.Writer, plies int) error {
	f := bookFile{Plies: plies, Entries: make([]entry, 0, len(t.entries))}
	for b, s := range t.entries {
		f.Entries = append(f.Entries, entry{Black: b.Black, White: b.White, Stats: s})
	}
	sort.Slice(f.Entries, func(i, j int) bool {
		if f.Entries[i].Black != f.Entries[j].Black {
			return f.Entries[i].Black < f.Entries[j].Black
		}
		return f.Entries[i].White < f.Entries[j].White
	})
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding book: %w", err)
	}
	return enc.Close()
}

func gzipped(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// LoadFile reads a book from path, gunzipping it if the name ends in .gz.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if gzipped(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	t, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("positions", t.Len()).Msg("loaded-book")
	return t, nil
}

// SaveFile writes t to path, gzipping it if the name ends in .gz.
func (t *Table) SaveFile(path string, plies int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if !gzipped(path) {
		return t.Write(f, plies)
	}
	zw := gzip.NewWriter(f)
	if err := t.Write(zw, plies); err != nil {
		return err
	}
	return zw.Close()
}

// Get returns the book table at path, loading it once per process.
func Get(path string) (*Table, error) {
	return cache.Get(path, LoadFile)
}
