package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("termsweep", pflag.ContinueOnError)
	addFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(viper.New(), parseFlags(t), "")
	require.NoError(t, err)

	assert.Equal(t, "", config.Difficulty)
	assert.Equal(t, "", config.Director)
	assert.Equal(t, uint64(0), config.Seed)
	assert.True(t, config.Pace)
	assert.False(t, config.NoColor)
	assert.Equal(t, LogConfig{Level: "info", MaxSize: 10, MaxBackups: 3, MaxAge: 28}, config.Log)

	difficulty, err := config.GameDifficulty()
	require.NoError(t, err)
	assert.Nil(t, difficulty, "the player is asked")
}

func TestLoadConfigFlags(t *testing.T) {
	flags := parseFlags(t, "-d", "Expert", "--director", "--seed", "42", "--no-color", "--pace=false")
	config, err := loadConfig(viper.New(), flags, "")
	require.NoError(t, err)

	assert.Equal(t, "expert", config.Difficulty)
	assert.Equal(t, "constraint", config.Director)
	assert.Equal(t, uint64(42), config.Seed)
	assert.True(t, config.NoColor)
	assert.False(t, config.Pace)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("TERMSWEEP_DIRECTOR", "random")
	t.Setenv("TERMSWEEP_LOG_LEVEL", "debug")
	t.Setenv("TERMSWEEP_NO_CLEAR", "true")

	config, err := loadConfig(viper.New(), parseFlags(t), "")
	require.NoError(t, err)

	assert.Equal(t, "random", config.Director)
	assert.Equal(t, "debug", config.Log.Level)
	assert.True(t, config.NoClear)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termsweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
difficulty: intermediate
pace: false
log:
  level: warn
  max-size: 50
`), 0o644))

	config, err := loadConfig(viper.New(), parseFlags(t, "--log-level", "error"), path)
	require.NoError(t, err)

	assert.Equal(t, "intermediate", config.Difficulty)
	assert.False(t, config.Pace)
	assert.Equal(t, "error", config.Log.Level, "flags win over the file")
	assert.Equal(t, 50, config.Log.MaxSize)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(viper.New(), parseFlags(t), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadConfig(viper.New(), parseFlags(t, "--director=genius"), "")
	assert.ErrorIs(t, err, ErrUnknownDirector)

	_, err = loadConfig(viper.New(), parseFlags(t, "--log-level=loud"), "")
	assert.Error(t, err)

	_, err = loadConfig(viper.New(), parseFlags(t, "-w", "2", "-h", "2", "-m", "4"), "")
	assert.ErrorIs(t, err, game.ErrTooManyMines)
}

func TestGameDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    *game.Difficulty
		wantErr error
	}{
		{name: "unset", config: Config{}, want: nil},
		{name: "preset", config: Config{Difficulty: "beginner"}, want: &game.Beginner},
		{
			name:   "custom",
			config: Config{Width: 20, Height: 10, Mines: 30},
			want:   &game.Difficulty{Width: 20, Height: 10, NumMines: 30},
		},
		{
			name:   "custom defaults to expert",
			config: Config{Mines: 50},
			want:   &game.Difficulty{Width: 30, Height: 16, NumMines: 50},
		},
		{
			name:   "preset with override",
			config: Config{Difficulty: "beginner", Mines: 20},
			want:   &game.Difficulty{Width: 9, Height: 9, NumMines: 20},
		},
		{name: "too many mines", config: Config{Width: 2, Height: 2, Mines: 4}, wantErr: game.ErrTooManyMines},
		{name: "negative width", config: Config{Width: -1}, wantErr: game.ErrInvalidDimensions},
		{name: "unknown preset", config: Config{Difficulty: "nightmare"}, wantErr: game.ErrInvalidDifficulty},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			difficulty, err := test.config.GameDifficulty()
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, difficulty)
		})
	}
}

func TestDifficultyValue(t *testing.T) {
	var name string
	value := newDifficultyValue("", &name)
	assert.Equal(t, "difficulty", value.Type())

	require.NoError(t, value.Set("BEGINNER"))
	assert.Equal(t, "beginner", value.String())
	assert.Equal(t, "beginner", name)

	assert.ErrorIs(t, value.Set("hard"), game.ErrInvalidDifficulty)
	assert.Equal(t, "beginner", name, "a rejected value leaves the flag alone")

	flags := pflag.NewFlagSet("termsweep", pflag.ContinueOnError)
	addFlags(flags)
	assert.ErrorContains(t, flags.Parse([]string{"-d", "hard"}), "invalid difficulty")
}

func TestNewDirector(t *testing.T) {
	assert.Nil(t, (&Config{}).newDirector(nil))
	assert.IsType(t, &random.Director{}, (&Config{Director: "random"}).newDirector(nil))
	assert.IsType(t, &constraint.Director{}, (&Config{Director: "constraint"}).newDirector(nil))
}

func TestSources(t *testing.T) {
	gameRand, directorRand := (&Config{}).sources()
	assert.Nil(t, gameRand)
	assert.Nil(t, directorRand)

	config := &Config{Seed: 7}
	gameRand, directorRand = config.sources()
	require.NotNil(t, gameRand)
	require.NotNil(t, directorRand)
	assert.NotSame(t, gameRand, directorRand)

	replay, _ := config.sources()
	for range 10 {
		assert.Equal(t, replay.Uint64(), gameRand.Uint64(), "the same seed replays the same game")
	}
}
