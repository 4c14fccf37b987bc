package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/qnkhuat/termtris/pkg/gui"
)

const (
	EnvPrefix  = "TERMTRIS"
	ConfigName = "termtris"

	DefaultTick          = 300 * time.Millisecond
	DefaultGameOverPause = 1500 * time.Millisecond
	DefaultListen        = ":2222"
	DefaultBinary        = "termtris"
	DefaultHostKey       = "~/.ssh/id_rsa"
	DefaultIdleTimeout   = 5 * time.Minute
)

// EnvFile is loaded into the environment before anything else is read.
// A missing file is not an error.
var EnvFile = ".env"

// Config configures the game binary
type Config struct {
	Tick          time.Duration  `mapstructure:"tick"`
	UI            string         `mapstructure:"ui"`
	Theme         string         `mapstructure:"theme"`
	Themes        []gui.ThemeHex `mapstructure:"themes"`
	Seed          int64          `mapstructure:"seed"`
	Nick          string         `mapstructure:"nick"`
	Log           string         `mapstructure:"log"`
	LogLevel      string         `mapstructure:"log_level"`
	LogJSON       bool           `mapstructure:"log_json"`
	GameOverPause time.Duration  `mapstructure:"game_over_pause"`

	// Palette is the resolved Theme
	Palette gui.Theme `mapstructure:"-"`
}

// ServerConfig configures the ssh host
type ServerConfig struct {
	Listen      string        `mapstructure:"listen"`
	Binary      string        `mapstructure:"binary"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	Metrics     string        `mapstructure:"metrics"`
	Log         string        `mapstructure:"log"`
	LogLevel    string        `mapstructure:"log_level"`
	LogJSON     bool          `mapstructure:"log_json"`
}

// Load reads the game configuration. Defaults are overridden by the config
// file, then the environment, then flags given in args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	fs.Duration("tick", DefaultTick, "time between two gravity steps")
	fs.String("ui", gui.UIScreen, "user interface: screen or tview")
	fs.String("theme", gui.ThemeBasic.Name, "color theme")
	fs.Int64("seed", 0, "random seed, 0 picks one from the clock")
	fs.String("nick", "", "nickname shown next to the score")
	fs.Duration("game-over-pause", DefaultGameOverPause, "how long the final board stays up")
	addLogFlags(fs)

	v := viper.New()
	v.SetDefault("tick", DefaultTick)
	v.SetDefault("ui", gui.UIScreen)
	v.SetDefault("theme", gui.ThemeBasic.Name)
	v.SetDefault("themes", []gui.ThemeHex{})
	v.SetDefault("seed", 0)
	v.SetDefault("nick", "")
	v.SetDefault("game_over_pause", DefaultGameOverPause)
	setLogDefaults(v)

	var cfg Config
	if err := load(v, fs, args, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	if c.GameOverPause < 0 {
		return fmt.Errorf("game over pause must not be negative, got %s", c.GameOverPause)
	}
	if c.UI != gui.UIScreen && c.UI != gui.UITview {
		return fmt.Errorf("unknown ui %q", c.UI)
	}

	t, err := gui.ImportThemes(c.Theme, c.Themes)
	if err != nil {
		return fmt.Errorf("theme %q: %w", c.Theme, err)
	}
	c.Palette = t

	return nil
}

// LoadServer reads the ssh host configuration the same way Load does
func LoadServer(fs *flag.FlagSet, args []string) (*ServerConfig, error) {
	fs.String("listen", DefaultListen, "address the ssh server listens on")
	fs.String("binary", DefaultBinary, "game binary started for every session")
	fs.String("host-key", DefaultHostKey, "ssh host private key")
	fs.Duration("idle-timeout", DefaultIdleTimeout, "close sessions idle for this long")
	fs.String("metrics", "", "address to serve prometheus metrics on, empty disables")
	addLogFlags(fs)

	v := viper.New()
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("binary", DefaultBinary)
	v.SetDefault("host_key", DefaultHostKey)
	v.SetDefault("idle_timeout", DefaultIdleTimeout)
	v.SetDefault("metrics", "")
	setLogDefaults(v)

	var cfg ServerConfig
	if err := load(v, fs, args, &cfg); err != nil {
		return nil, err
	}

	if cfg.Listen == "" {
		return nil, errors.New("listen address is empty")
	}
	if cfg.IdleTimeout < 0 {
		return nil, fmt.Errorf("idle timeout must not be negative, got %s", cfg.IdleTimeout)
	}

	hostKey, err := expandHome(cfg.HostKey)
	if err != nil {
		return nil, err
	}
	cfg.HostKey = hostKey

	return &cfg, nil
}

func addLogFlags(fs *flag.FlagSet) {
	fs.String("config", "", "config file, termtris.yaml in . or ~/.config/termtris by default")
	fs.String("log", "", "log file, empty disables logging")
	fs.String("log-level", "info", "log level")
	fs.Bool("log-json", false, "log as json")
}

func setLogDefaults(v *viper.Viper) {
	v.SetDefault("log", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

func load(v *viper.Viper, fs *flag.FlagSet, args []string, out interface{}) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(EnvFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", EnvFile, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, fs.Lookup("config").Value.String()); err != nil {
		return err
	}

	// Only flags given on the command line override the layers below
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if g, ok := f.Value.(flag.Getter); ok {
			v.Set(key, g.Get())
			return
		}
		v.Set(key, f.Value.String())
	})

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(ConfigName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
