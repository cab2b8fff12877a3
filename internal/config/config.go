// Package config loads player settings from defaults, an optional YAML
// file, CLIPLAYER_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// AppName names the config directory and environment prefix.
const AppName = "cliplayer"

// Config holds all player settings.
type Config struct {
	Volume     float64       `mapstructure:"volume"`
	VolumeStep float64       `mapstructure:"volume_step"`
	SeekStep   time.Duration `mapstructure:"seek_step"`
	Loop       bool          `mapstructure:"loop"`
	Watch      bool          `mapstructure:"watch"`
	VLC        struct {
		Args []string `mapstructure:"args"`
	} `mapstructure:"vlc"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"volume":      "volume",
	"volume-step": "volume_step",
	"seek-step":   "seek_step",
	"loop":        "loop",
	"watch":       "watch",
	"vlc-arg":     "vlc.args",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("volume", 1.0)
	v.SetDefault("volume_step", 0.1)
	v.SetDefault("seek_step", 10*time.Second)
	v.SetDefault("loop", false)
	v.SetDefault("watch", false)
	v.SetDefault("vlc.args", []string{})
}

// Load builds the configuration. An explicit path must exist; otherwise
// config.yaml is looked up under $XDG_CONFIG_HOME/cliplayer (or
// ~/.config/cliplayer) and silently skipped when missing. Flags that were
// set on the command line override every other source.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.File != "" {
		log.Printf("[config] loaded %s", cfg.File)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside [0, 1]", ErrInvalid, c.Volume)
	}
	if c.VolumeStep <= 0 || c.VolumeStep > 1 {
		return fmt.Errorf("%w: volume_step %v outside (0, 1]", ErrInvalid, c.VolumeStep)
	}
	if c.SeekStep <= 0 {
		return fmt.Errorf("%w: seek_step %v must be positive", ErrInvalid, c.SeekStep)
	}
	return nil
}

// configDir follows the XDG base directory convention.
func configDir() string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(userHome, ".config")
	}
	return filepath.Join(home, AppName)
}
