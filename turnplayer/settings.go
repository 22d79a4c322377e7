package turnplayer

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/session"
	"github.com/domino14/othello/worker"
)

// Settings decides which search runs at which point of the game. Phases
// count down from session.InitialPhase by two per decision.
type Settings struct {
	// BookThreshold is the phase at or above which the book is tried.
	BookThreshold int
	// LadderThreshold is the phase at or above which iterative deepening
	// over Ladder is used.
	LadderThreshold int
	// FixedDepth is the midgame search depth used before the endgame
	// solver refines the result. At or below this phase only the solver
	// runs.
	FixedDepth int
	Ladder     []int

	Threads       int
	PollInterval  time.Duration
	ReservePerPly time.Duration
	ReserveBase   time.Duration
}

func DefaultSettings() *Settings {
	return &Settings{
		BookThreshold:   41,
		LadderThreshold: 25,
		FixedDepth:      10,
		Ladder:          []int{6, 9, 10},
		Threads:         worker.DefaultSize,
		PollInterval:    session.DefaultPollInterval,
		ReservePerPly:   session.DefaultReservePerPly,
		ReserveBase:     session.DefaultReserveBase,
	}
}

// SettingsFromConfig reads the settings out of cfg.
func SettingsFromConfig(cfg *config.Config) *Settings {
	s := &Settings{
		BookThreshold:   cfg.GetInt(config.ConfigBookThreshold),
		LadderThreshold: cfg.GetInt(config.ConfigLadderThreshold),
		FixedDepth:      cfg.GetInt(config.ConfigFixedDepth),
		Ladder:          cfg.Ladder(),
		Threads:         cfg.GetInt(config.ConfigThreads),
		PollInterval:    cfg.GetDuration(config.ConfigPollInterval),
		ReservePerPly:   cfg.GetDuration(config.ConfigReservePerPly),
		ReserveBase:     cfg.GetDuration(config.ConfigReserveBase),
	}
	log.Debug().Interface("settings", s).Msg("player-settings")
	return s
}

// Validate checks that the thresholds are ordered and the depths usable.
func (s *Settings) Validate() error {
	if s.BookThreshold < s.LadderThreshold || s.LadderThreshold < s.FixedDepth {
		return fmt.Errorf("thresholds out of order: book %d, ladder %d, fixed depth %d",
			s.BookThreshold, s.LadderThreshold, s.FixedDepth)
	}
	if len(s.Ladder) == 0 {
		return errors.New("empty deepening ladder")
	}
	if s.FixedDepth < 1 {
		return errors.New("fixed depth must be positive")
	}
	return nil
}
