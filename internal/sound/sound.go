// Package sound plays the audible cue after a task is recorded.
package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/didit/internal/model"
)

// ErrNoPlayer means no supported audio player was found on PATH.
var ErrNoPlayer = errors.New("no audio player found")

type candidate struct {
	argv []string
	// wavOnly players cannot decode compressed formats such as mp3.
	wavOnly bool
}

// candidates are tried in order when no player is configured.
var candidates = []candidate{
	{argv: []string{"mpv", "--no-video", "--really-quiet"}},
	{argv: []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{argv: []string{"afplay"}},
	{argv: []string{"mpg123", "-q"}},
	{argv: []string{"paplay"}, wavOnly: true},
	{argv: []string{"aplay", "-q"}, wavOnly: true},
}

// Player plays a sound file with an external command, or rings the terminal
// bell when no file is configured.
type Player struct {
	file     string
	player   string
	gap      time.Duration
	bell     io.Writer
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
	sleep    func(context.Context, time.Duration) error
}

// New returns a Player for cfg. bell receives the BEL byte in bell mode.
func New(cfg model.SoundConfig, bell io.Writer) *Player {
	return &Player{
		file:     cfg.File,
		player:   cfg.Player,
		gap:      cfg.Gap,
		bell:     bell,
		lookPath: exec.LookPath,
		run:      runCommand,
		sleep:    sleepContext,
	}
}

// Play plays the cue times times, pausing for the configured gap between
// plays. Failures are returned as *model.PlaybackError.
func (p *Player) Play(ctx context.Context, times int) error {
	if times <= 0 {
		return nil
	}
	play, err := p.resolve()
	if err != nil {
		return &model.PlaybackError{File: p.file, Err: err}
	}
	for i := 0; i < times; i++ {
		if i > 0 && p.gap > 0 {
			if err := p.sleep(ctx, p.gap); err != nil {
				return &model.PlaybackError{File: p.file, Err: err}
			}
		}
		if err := play(ctx); err != nil {
			return &model.PlaybackError{File: p.file, Err: err}
		}
	}
	return nil
}

func (p *Player) resolve() (func(context.Context) error, error) {
	if p.file == "" {
		return p.ring, nil
	}
	if _, err := os.Stat(p.file); err != nil {
		return nil, err
	}
	argv, err := p.command()
	if err != nil {
		return nil, err
	}
	args := append(append([]string{}, argv[1:]...), p.file)
	return func(ctx context.Context) error {
		return p.run(ctx, argv[0], args...)
	}, nil
}

func (p *Player) command() ([]string, error) {
	if p.player != "" {
		parts := strings.Fields(p.player)
		if len(parts) == 0 {
			return nil, ErrNoPlayer
		}
		if _, err := p.lookPath(parts[0]); err != nil {
			return nil, fmt.Errorf("player %q not found: %w", parts[0], err)
		}
		return parts, nil
	}
	wav := strings.EqualFold(filepath.Ext(p.file), ".wav")
	for _, c := range candidates {
		if c.wavOnly && !wav {
			continue
		}
		if _, err := p.lookPath(c.argv[0]); err == nil {
			return c.argv, nil
		}
	}
	return nil, ErrNoPlayer
}

func (p *Player) ring(context.Context) error {
	if p.bell == nil {
		return nil
	}
	_, err := io.WriteString(p.bell, "\a")
	return err
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
