package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/they4kman/termsweep/console"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

var ErrUnknownDirector = errors.New("unknown director")

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSize    int    `mapstructure:"max-size"`
	MaxBackups int    `mapstructure:"max-backups"`
	MaxAge     int    `mapstructure:"max-age"`
}

type Config struct {
	Difficulty string `mapstructure:"difficulty"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Mines      int    `mapstructure:"mines"`

	Director string `mapstructure:"director"`
	Seed     uint64 `mapstructure:"seed"`

	NoColor bool `mapstructure:"no-color"`
	NoClear bool `mapstructure:"no-clear"`
	Pace    bool `mapstructure:"pace"`

	Log LogConfig `mapstructure:"log"`
}

// Config keys and the flags that set them
var flagKeys = map[string]string{
	"difficulty":      "difficulty",
	"width":           "width",
	"height":          "height",
	"mines":           "mines",
	"director":        "director",
	"seed":            "seed",
	"no-color":        "no-color",
	"no-clear":        "no-clear",
	"pace":            "pace",
	"log.file":        "log-file",
	"log.level":       "log-level",
	"log.max-size":    "log-max-size",
	"log.max-backups": "log-max-backups",
	"log.max-age":     "log-max-age",
}

// loadConfig layers flags over TERMSWEEP_* environment variables over the
// YAML file at path, if any
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, path string) (*Config, error) {
	v.SetEnvPrefix("termsweep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (config *Config) validate() error {
	switch config.Director {
	case "", "random", "constraint":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirector, config.Director)
	}

	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return err
	}
	_, err := config.GameDifficulty()
	return err
}

func (config *Config) Fields() logrus.Fields {
	return logrus.Fields{
		"difficulty": config.Difficulty,
		"width":      config.Width,
		"height":     config.Height,
		"mines":      config.Mines,
		"director":   config.Director,
		"seed":       config.Seed,
		"pace":       config.Pace,
		"log_file":   config.Log.File,
		"log_level":  config.Log.Level,
	}
}

// GameDifficulty resolves the configured preset, with any of width, height
// and mines overriding it. Overriding anything makes a custom difficulty
// based on expert when no preset is named. nil means the player chooses.
func (config *Config) GameDifficulty() (*game.Difficulty, error) {
	custom := config.Width != 0 || config.Height != 0 || config.Mines != 0
	if config.Difficulty == "" && !custom {
		return nil, nil
	}

	difficulty := game.Expert
	if config.Difficulty != "" {
		var err error
		difficulty, err = console.ParseDifficulty(config.Difficulty)
		if err != nil {
			return nil, err
		}
	}

	if custom {
		difficulty.Name = ""
		if config.Width != 0 {
			difficulty.Width = config.Width
		}
		if config.Height != 0 {
			difficulty.Height = config.Height
		}
		if config.Mines != 0 {
			difficulty.NumMines = config.Mines
		}
		if err := difficulty.Validate(); err != nil {
			return nil, err
		}
	}
	return &difficulty, nil
}

// sources returns independent random sources for mine placement and the
// director. A zero seed draws both from the process-wide source.
func (config *Config) sources() (*rand.Rand, *rand.Rand) {
	if config.Seed == 0 {
		return nil, nil
	}
	return rand.New(rand.NewPCG(config.Seed, 0)), rand.New(rand.NewPCG(config.Seed, 1))
}

func (config *Config) newDirector(rnd *rand.Rand) game.Director {
	switch config.Director {
	case "random":
		return random.New(rnd)
	case "constraint":
		return constraint.New(rnd)
	default:
		return nil
	}
}
