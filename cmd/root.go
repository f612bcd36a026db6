package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/they4kman/termsweep/console"
	"github.com/they4kman/termsweep/game"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "termsweep",
	Short: "Play manual or computer-driven Minesweeper in the terminal",
	Long: `termsweep is a Minesweeper game for the terminal which supports
human- or computer-driven playing.

Run with no arguments to choose a difficulty and play manually
	termsweep

Pick a difficulty up front, or size the board yourself
	termsweep -d expert
	termsweep -w 20 -h 10 -m 30

Use the director flag to make the computer play for you
	termsweep --director
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(viper.New(), cmd.Flags(), configPath)
		if err != nil {
			return err
		}

		log, err := setupLogging(config.Log)
		if err != nil {
			return err
		}
		log.WithFields(config.Fields()).Debug("config")

		difficulty, err := config.GameDifficulty()
		if err != nil {
			return err
		}

		gameRand, directorRand := config.sources()
		gameConfig := game.NewGameConfig()
		gameConfig.Rand = gameRand
		gameConfig.Logger = log
		gameConfig.OnGameEnd = logSnapshot(log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := console.NewSession(console.SessionConfig{
			In:         cmd.InOrStdin(),
			Out:        cmd.OutOrStdout(),
			Difficulty: difficulty,
			Director:   config.newDirector(directorRand),
			Pace:       config.Pace,
			NoColor:    config.NoColor,
			NoClear:    config.NoClear,
			GameConfig: gameConfig,
			Logger:     log,
		})
		return session.Run(ctx)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type difficultyValue string

func newDifficultyValue(val string, p *string) *difficultyValue {
	*p = val
	return (*difficultyValue)(p)
}

func (value *difficultyValue) String() string {
	return string(*value)
}

func (value *difficultyValue) Set(name string) error {
	difficulty, err := console.ParseDifficulty(name)
	if err != nil {
		return err
	}
	*value = difficultyValue(difficulty.Name)
	return nil
}

func (value *difficultyValue) Type() string {
	return "difficulty"
}

func addFlags(flags *pflag.FlagSet) {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	flags.Bool("help", false, "Help for this command")

	flags.VarP(newDifficultyValue("", new(string)), "difficulty", "d", `Difficulty preset; asked for at startup when unset
beginner: 9x9, 10 mines
intermediate: 16x16, 40 mines
expert: 30x16, 99 mines`)

	flags.IntP("width", "w", 0, "Width of a custom game board, in cells")
	flags.IntP("height", "h", 0, "Height of a custom game board, in cells")
	flags.IntP("mines", "m", 0, "Number of mines to place in a custom game board")

	flags.String("director", "", "Make the computer play: random or constraint")
	flags.Lookup("director").NoOptDefVal = "constraint"
	flags.Uint64("seed", 0, "Seed for mine placement and the director; 0 picks one at random")

	flags.Bool("no-color", false, "Draw the board without colours")
	flags.Bool("no-clear", false, "Never clear the screen between moves")
	flags.Bool("pace", true, "Pause between the mines of a lost game and between director moves")

	flags.String("log-file", "", "Write logs to this file, rotating it as it grows")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.Int("log-max-size", 10, "Size of the log file, in megabytes, before it is rotated")
	flags.Int("log-max-backups", 3, "Number of rotated log files to keep")
	flags.Int("log-max-age", 28, "Days to keep rotated log files")
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file path")
	addFlags(rootCmd.Flags())
}
