package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/termsweep/game"
	"golang.org/x/sync/errgroup"
)

const (
	messageHold   = 5 * time.Second
	lossFinalHold = 2500 * time.Millisecond
	directorTick  = 500 * time.Millisecond
)

// Delay between mines during the loss sequence, by difficulty name
var lossMineDelays = map[string]time.Duration{
	game.Beginner.Name:     500 * time.Millisecond,
	game.Intermediate.Name: 250 * time.Millisecond,
	game.Expert.Name:       100 * time.Millisecond,
}

const defaultLossMineDelay = 100 * time.Millisecond

var errQuit = errors.New("quit")

type SessionConfig struct {
	In  io.Reader
	Out io.Writer

	// Difficulty of the first game; the player is asked when nil
	Difficulty *game.Difficulty

	// Plays in place of the player when set. Input is still read for
	// quit, help, restart and new game.
	Director game.Director

	// Sleep between frames and director moves. Disabled in tests.
	Pace bool

	NoColor bool
	NoClear bool

	GameConfig game.GameConfig
	Logger     logrus.FieldLogger
}

// Session runs the interactive game loop over a pair of streams
type Session struct {
	config   SessionConfig
	log      logrus.FieldLogger
	renderer *Renderer

	game  *game.Game
	lines <-chan string
}

// directorView and directorMove carry the id of the board they belong to,
// so that a move made for a board replaced by restart or new game is dropped
type directorView struct {
	gameID uuid.UUID
	view   game.View
}

type directorMove struct {
	gameID uuid.UUID
	action game.Action
	ok     bool
}

func NewSession(config SessionConfig) *Session {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	if config.GameConfig.Logger == nil {
		config.GameConfig.Logger = config.Logger
	}
	return &Session{
		config:   config,
		log:      config.Logger,
		renderer: NewRenderer(config.Out, config.NoColor, config.NoClear),
	}
}

// Game is the game being played, or nil before a difficulty is chosen
func (session *Session) Game() *game.Game {
	return session.game
}

// Run plays until the player quits, input ends or ctx is cancelled
func (session *Session) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	lines := make(chan string)
	session.lines = lines
	// Not part of the group: a read from a terminal cannot be interrupted,
	// so the scanner is left to exit with the process
	go scanLines(gCtx, session.config.In, lines, session.log)

	views := make(chan directorView)
	moves := make(chan directorMove)
	if session.config.Director != nil {
		g.Go(func() error {
			return session.runDirector(gCtx, views, moves)
		})
	}
	g.Go(func() error {
		defer close(views)
		return session.loop(gCtx, views, moves)
	})

	err := g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		session.log.Info("session ended")
		return nil
	}
	return err
}

func scanLines(ctx context.Context, in io.Reader, lines chan<- string, log logrus.FieldLogger) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("unable to read input")
	}
}

// runDirector answers each view with the director's next move
func (session *Session) runDirector(ctx context.Context, views <-chan directorView, moves chan<- directorMove) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case request, ok := <-views:
			if !ok {
				return nil
			}
			if err := session.wait(ctx, directorTick); err != nil {
				return nil
			}

			action, ok := session.config.Director.Act(request.view)
			select {
			case moves <- directorMove{gameID: request.gameID, action: action, ok: ok}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (session *Session) loop(ctx context.Context, views chan<- directorView, moves <-chan directorMove) error {
	session.renderer.Message("Welcome to Minesweeper!")

	difficulty := session.config.Difficulty
	if difficulty == nil {
		chosen, err := session.promptDifficulty(ctx)
		if err != nil {
			return err
		}
		difficulty = &chosen
	}

	var err error
	session.game, err = game.NewGame(*difficulty, session.config.GameConfig)
	if err != nil {
		return err
	}
	session.draw()
	session.showHelp(true)

	director := session.config.Director
	awaitingMove := false
	for {
		if session.game.State().IsOver() {
			if err := session.endGameMenu(ctx); err != nil {
				return err
			}
			continue
		}

		if director == nil {
			session.renderer.Message("Enter a command: ")
			line, err := session.readLine(ctx)
			if err != nil {
				return err
			}
			if err := session.handleLine(ctx, line); err != nil {
				return err
			}
			continue
		}

		if !awaitingMove {
			select {
			case views <- directorView{gameID: session.game.ID(), view: session.game.View()}:
				awaitingMove = true
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case move := <-moves:
			awaitingMove = false
			if move.gameID != session.game.ID() {
				session.log.WithField("action", move.action.String()).Debug("dropped move for a replaced board")
				continue
			}
			if !move.ok {
				session.renderer.Message("The director has no moves left.")
				director = nil
				continue
			}
			session.log.WithField("action", move.action.String()).Debug("director move")
			if err := session.applyAction(ctx, move.action); err != nil {
				return err
			}

		case line, ok := <-session.lines:
			if !ok {
				// Keep watching the director play after input ends
				session.lines = nil
				continue
			}
			command, err := ParseCommand(line)
			if err == nil && command.IsMove() {
				session.renderer.Message("The director is playing. Type 'quit' to stop.")
				continue
			}
			if err := session.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (session *Session) readLine(ctx context.Context) (string, error) {
	if session.lines == nil {
		return "", io.EOF
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-session.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (session *Session) promptDifficulty(ctx context.Context) (game.Difficulty, error) {
	for {
		session.renderer.Message("Please select a difficulty. 'Beginner', 'Intermediate', or 'Expert'.")
		line, err := session.readLine(ctx)
		if err != nil {
			return game.Difficulty{}, err
		}

		difficulty, err := ParseDifficulty(line)
		if err == nil {
			return difficulty, nil
		}
		session.renderer.Message("Invalid difficulty. Please try again.")
	}
}

func (session *Session) showHelp(start bool) {
	if start {
		session.renderer.Message("Type 'help' for a list of commands.")
	}
	session.renderer.Message("Type 'quit' to quit the game.")
	if !start {
		session.renderer.Message("Type 'restart' to restart the game with the same difficulty.")
		session.renderer.Message("Type 'new game' to start a new game with a different difficulty.")
	}
	session.renderer.Message("Enter 'r x y' to reveal a cell.")
	session.renderer.Message("Enter 'f x y' to flag/unflag a cell.")
	session.renderer.Message("Enter 'c x y' to reveal around a fully flagged number.")
}

func (session *Session) handleLine(ctx context.Context, line string) error {
	command, err := ParseCommand(line)
	switch {
	case errors.Is(err, ErrInvalidCoordinates):
		session.renderer.Message("Invalid coordinates. Please try again.")
		return nil
	case err != nil:
		session.renderer.Message("Unknown command. Type 'help' for guidance.")
		return nil
	}

	session.log.WithField("command", line).Debug("handling command")
	switch command.Kind {
	case QuitCommand:
		return errQuit
	case HelpCommand:
		session.showHelp(false)
		return nil
	case RestartCommand:
		return session.restart()
	case NewGameCommand:
		return session.newGame(ctx)
	}

	action, _ := command.Action()
	return session.applyAction(ctx, action)
}

func (session *Session) restart() error {
	if err := session.game.Restart(); err != nil {
		return err
	}
	session.draw()
	session.showHelp(true)
	return nil
}

func (session *Session) newGame(ctx context.Context) error {
	session.renderer.Clear()
	difficulty, err := session.promptDifficulty(ctx)
	if err != nil {
		return err
	}
	if err := session.game.NewDifficulty(difficulty); err != nil {
		return err
	}
	session.draw()
	session.showHelp(true)
	return nil
}

// applyAction plays one move, reporting rejected moves to the player
func (session *Session) applyAction(ctx context.Context, action game.Action) error {
	result, err := session.game.Apply(action)
	switch {
	case errors.Is(err, game.ErrOutOfBounds):
		session.renderer.Message("Out of bounds coordinates. Please try again.")
		return nil
	case errors.Is(err, game.ErrAlreadyRevealed):
		session.renderer.Message("Cell is already revealed.")
		return nil
	case errors.Is(err, game.ErrNotChordable):
		session.renderer.Message("Flag as many neighbours as the number shows before clearing around it.")
		return nil
	case err != nil:
		return err
	}

	switch result.State {
	case game.Lost:
		triggered := *result.Triggered
		session.renderer.Message("You triggered a mine at (%d, %d)! Game over.", triggered.X+1, triggered.Y+1)
		if err := session.wait(ctx, messageHold); err != nil {
			return err
		}
		return session.animateLoss(ctx)
	case game.Won:
		session.renderer.Clear()
		session.renderer.Message("You win! Congratulations!")
		return session.wait(ctx, messageHold)
	default:
		session.draw()
		return nil
	}
}

// animateLoss uncovers the mines one at a time, then shows them all
// triggered
func (session *Session) animateLoss(ctx context.Context) error {
	delay, ok := lossMineDelays[session.game.Difficulty().Name]
	if !ok {
		delay = defaultLossMineDelay
	}

	frames := session.game.LossFrames()
	numMines := len(session.game.MineSequence())
	for _, frame := range frames[:numMines] {
		session.drawView(frame)
		if err := session.wait(ctx, delay); err != nil {
			return err
		}
	}

	session.drawView(frames[numMines])
	return session.wait(ctx, lossFinalHold)
}

// endGameMenu shows the finished board and waits for quit, restart or new
// game
func (session *Session) endGameMenu(ctx context.Context) error {
	session.draw()
	session.renderer.Message("Enter 'quit' to quit.")
	session.renderer.Message("Enter 'restart' to restart the game with the same difficulty.")
	session.renderer.Message("Enter 'new game' to start a new game with a different difficulty.")

	for {
		line, err := session.readLine(ctx)
		if err != nil {
			return err
		}

		command, err := ParseCommand(line)
		if err != nil {
			session.renderer.Message("Invalid input. Please try again.")
			continue
		}
		switch command.Kind {
		case QuitCommand:
			return errQuit
		case RestartCommand:
			return session.restart()
		case NewGameCommand:
			return session.newGame(ctx)
		default:
			session.renderer.Message("Invalid input. Please try again.")
		}
	}
}

func (session *Session) draw() {
	session.drawView(session.game.View())
}

func (session *Session) drawView(view game.View) {
	session.renderer.Draw(view, session.game.MinesRemaining())
}

// wait sleeps for d when pacing is on, returning early if ctx ends
func (session *Session) wait(ctx context.Context, d time.Duration) error {
	if !session.config.Pace {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
