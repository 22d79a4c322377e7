package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigFile            = "config"
	ConfigHost            = "host"
	ConfigPort            = "port"
	ConfigPlayerName      = "player-name"
	ConfigVerbose         = "verbose"
	ConfigDebug           = "debug"
	ConfigBookPath        = "book-path"
	ConfigThreads         = "threads"
	ConfigPollInterval    = "poll-interval"
	ConfigBookThreshold   = "book-threshold"
	ConfigLadderThreshold = "ladder-threshold"
	ConfigFixedDepth      = "fixed-depth"
	ConfigLadder          = "ladder"
	ConfigReservePerPly   = "reserve-per-ply"
	ConfigReserveBase     = "reserve-base"
	ConfigConnectAttempts = "connect-attempts"
)

var defaultLadder = []int{6, 9, 10}

// Config is the player configuration. Values come, in increasing order of
// precedence, from the defaults, an optional config file, OTHELLO_*
// environment variables and command-line flags.
type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigHost, "localhost")
	v.SetDefault(ConfigPort, 3000)
	v.SetDefault(ConfigPlayerName, "Anon.")
	v.SetDefault(ConfigVerbose, false)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigBookPath, "")
	v.SetDefault(ConfigThreads, 4)
	v.SetDefault(ConfigPollInterval, 10*time.Millisecond)
	v.SetDefault(ConfigBookThreshold, 41)
	v.SetDefault(ConfigLadderThreshold, 25)
	v.SetDefault(ConfigFixedDepth, 10)
	v.SetDefault(ConfigLadder, defaultLadder)
	v.SetDefault(ConfigReservePerPly, 900*time.Millisecond)
	v.SetDefault(ConfigReserveBase, 5*time.Second)
	v.SetDefault(ConfigConnectAttempts, 5)
}

// DefaultConfig returns the configuration with every value at its default.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.StringP(ConfigFile, "c", "", "optional YAML config file")
	fs.StringP(ConfigHost, "H", "localhost", "game server host")
	fs.IntP(ConfigPort, "p", 3000, "game server port")
	fs.StringP(ConfigPlayerName, "n", "Anon.", "name sent with OPEN")
	fs.BoolP(ConfigVerbose, "v", false, "print the board after every move")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigBookPath, "", "opening book (.yaml or .yaml.gz); empty disables the book")
	fs.Int(ConfigThreads, 4, "search workers")
	fs.Duration(ConfigPollInterval, 10*time.Millisecond, "how often searches check the deadline")
	fs.Int(ConfigBookThreshold, 41, "phase at or above which the book is consulted")
	fs.Int(ConfigLadderThreshold, 25, "phase at or above which iterative deepening is used")
	fs.Int(ConfigFixedDepth, 10, "search depth before the endgame solver; also the phase below which only the solver runs")
	fs.IntSlice(ConfigLadder, defaultLadder, "iterative deepening depths")
	fs.Duration(ConfigReservePerPly, 900*time.Millisecond, "time held back per remaining phase unit")
	fs.Duration(ConfigReserveBase, 5*time.Second, "time always held back")
	fs.Uint(ConfigConnectAttempts, 5, "connection attempts before giving up")
	return fs
}

// Load reads the configuration from args, the environment and the config
// file named by --config.
func (c *Config) Load(args []string) error {
	v := viper.New()
	setDefaults(v)
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix("othello")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(ConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	c.Viper = v
	return c.validate()
}

func (c *Config) validate() error {
	var errs []error
	if p := c.GetInt(ConfigPort); p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", p))
	}
	if c.GetInt(ConfigThreads) < 1 {
		errs = append(errs, errors.New("threads must be at least 1"))
	}
	for _, d := range c.Ladder() {
		if d < 1 {
			errs = append(errs, fmt.Errorf("ladder depth %d must be positive", d))
		}
	}
	if c.GetInt(ConfigFixedDepth) < 1 {
		errs = append(errs, errors.New("fixed-depth must be positive"))
	}
	return errors.Join(errs...)
}

// Address is the host:port of the game server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.GetString(ConfigHost), strconv.Itoa(c.GetInt(ConfigPort)))
}

// Ladder is the list of iterative deepening depths.
func (c *Config) Ladder() []int {
	l := c.GetIntSlice(ConfigLadder)
	if len(l) == 0 {
		return defaultLadder
	}
	return l
}
