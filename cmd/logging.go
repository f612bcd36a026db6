package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/they4kman/termsweep/game"
)

// setupLogging builds the program's logger. The terminal belongs to the
// game, so entries only go to the rotated log file, or nowhere without one.
func setupLogging(config LogConfig) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if config.File == "" {
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   config.File,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Level:      level,
		Formatter: &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		},
	})
	if err != nil {
		return nil, err
	}
	log.AddHook(hook)
	return log, nil
}

// logSnapshot records the final board of every finished game
func logSnapshot(log logrus.FieldLogger) func(*game.Game) {
	return func(g *game.Game) {
		snapshot, err := g.Snapshot().Serialize()
		if err != nil {
			log.WithError(err).Warn("unable to serialize snapshot")
			return
		}
		log.WithField("game_id", g.ID().String()).Debug("final board\n" + snapshot)
	}
}
