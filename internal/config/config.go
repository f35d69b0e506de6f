package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tunetable/internal/app"
	"github.com/atomicstack/tunetable/internal/backend"
	"github.com/atomicstack/tunetable/internal/theme"
	"github.com/atomicstack/tunetable/internal/ui"
	"github.com/atomicstack/tunetable/internal/ui/state"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was read, empty when none was found.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAddress = "TUNETABLE_ADDRESS"
	envConfig  = "TUNETABLE_CONFIG"
	envLogFile = "TUNETABLE_LOG_FILE"
	envTrace   = "TUNETABLE_TRACE"
	envMatcher = "TUNETABLE_MATCHER"

	defaultSeek = 5 * time.Second
)

// fileConfig mirrors config.toml.
type fileConfig struct {
	MPDAddress        string                    `toml:"mpd_address"`
	SeekSeconds       *int                      `toml:"seek_seconds"`
	Screens           []string                  `toml:"screens"`
	Matcher           string                    `toml:"matcher"`
	PreferPrefix      bool                      `toml:"prefer_prefix"`
	ScrollOverlap     *int                      `toml:"scroll_overlap"`
	TickInterval      string                    `toml:"tick_interval"`
	PollInterval      string                    `toml:"poll_interval"`
	QwertyKeybindings bool                      `toml:"qwerty_keybindings"`
	DvorakKeybindings bool                      `toml:"dvorak_keybindings"`
	Keybindings       map[string][]string       `toml:"keybindings"`
	Theme             map[string]theme.Override `toml:"theme"`
}

// NewCommand builds the root command. run receives the loaded configuration
// once flags, environment and the config file are merged.
func NewCommand(environ []string, run func(Config) error) *cobra.Command {
	env := parseEnv(environ)
	var (
		address    string
		configPath string
		logFile    string
		trace      bool
		matcher    string
	)
	cmd := &cobra.Command{
		Use:           "tunetable",
		Short:         "Terminal client for the Music Player Daemon",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, path, err := loadFile(configPath, cmd.Flags().Changed("config") || env[envConfig] != "")
			if err != nil {
				return err
			}
			cfg, err := merge(file, flagValues{
				address: pick(cmd.Flags().Changed("address"), env, envAddress, address, file.MPDAddress),
				matcher: pick(cmd.Flags().Changed("matcher"), env, envMatcher, matcher, file.Matcher),
				logFile: logFile,
				trace:   trace,
			})
			if err != nil {
				return err
			}
			cfg.File = path
			cfg.Flags = map[string]string{
				"address": cfg.App.Address,
				"config":  configPath,
				"logFile": logFile,
				"trace":   strconv.FormatBool(trace),
				"matcher": cfg.App.Matcher,
			}
			cfg.Args = append([]string(nil), os.Args[1:]...)
			return run(cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&address, "address", env[envAddress], "MPD address as [password@]host[:port] or a socket path")
	flags.StringVar(&configPath, "config", envOrDefault(env, envConfig, DefaultPath()), "path to config.toml")
	flags.StringVar(&logFile, "log-file", env[envLogFile], "path to the log file")
	flags.BoolVar(&trace, "trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	flags.StringVar(&matcher, "matcher", env[envMatcher], "search matcher: fuzzy or subsequence")
	return cmd
}

// LoadArgs parses args and environ the way the binary does.
func LoadArgs(args []string, environ []string) (Config, error) {
	var cfg Config
	cmd := NewCommand(environ, func(c Config) error {
		cfg = c
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// DefaultPath is config.toml in the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tunetable", "config.toml")
}

type flagValues struct {
	address string
	matcher string
	logFile string
	trace   bool
}

// pick applies flag > environment > file precedence for one setting.
func pick(changed bool, env map[string]string, key, flagValue, fileValue string) string {
	if changed {
		return flagValue
	}
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fileValue
}

// loadFile reads path. A missing file is only an error when it was asked
// for explicitly.
func loadFile(path string, explicit bool) (fileConfig, string, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return fc, "", nil
	}
	if err != nil {
		return fc, "", fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fc, "", fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return fc, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, path, nil
}

func merge(fc fileConfig, fv flagValues) (Config, error) {
	cfg := Config{
		App: app.Config{
			Address:       fv.address,
			SeekStep:      defaultSeek,
			Screens:       fc.Screens,
			Matcher:       fv.matcher,
			PreferPrefix:  fc.PreferPrefix,
			ScrollOverlap: state.DefaultScrollOverlap,
			TickInterval:  backend.DefaultTickInterval,
			PollInterval:  backend.DefaultPollInterval,
			Keybindings:   fc.Keybindings,
			Theme:         fc.Theme,
		},
		Logging: Logging{FilePath: fv.logFile, Trace: fv.trace},
	}
	if fc.SeekSeconds != nil {
		if *fc.SeekSeconds <= 0 {
			return Config{}, fmt.Errorf("seek_seconds must be > 0 (got %d)", *fc.SeekSeconds)
		}
		cfg.App.SeekStep = time.Duration(*fc.SeekSeconds) * time.Second
	}
	if fc.ScrollOverlap != nil {
		if *fc.ScrollOverlap < 0 {
			return Config{}, fmt.Errorf("scroll_overlap must be >= 0 (got %d)", *fc.ScrollOverlap)
		}
		cfg.App.ScrollOverlap = *fc.ScrollOverlap
	}
	var err error
	if cfg.App.TickInterval, err = parseInterval("tick_interval", fc.TickInterval, backend.DefaultTickInterval); err != nil {
		return Config{}, err
	}
	if cfg.App.PollInterval, err = parseInterval("poll_interval", fc.PollInterval, backend.DefaultPollInterval); err != nil {
		return Config{}, err
	}
	switch {
	case fc.QwertyKeybindings && fc.DvorakKeybindings:
		return Config{}, errors.New("qwerty_keybindings and dvorak_keybindings are mutually exclusive")
	case fc.QwertyKeybindings:
		cfg.App.Layout = ui.LayoutQwerty
	case fc.DvorakKeybindings:
		cfg.App.Layout = ui.LayoutDvorak
	}
	return cfg, nil
}

func parseInterval(key, value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive (got %s)", key, value)
	}
	return d, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate builds everything derived from cfg so errors surface before the
// connection is opened.
func Validate(cfg Config) error {
	_, err := app.Prepare(cfg.App)
	return err
}
