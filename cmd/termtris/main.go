package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/qnkhuat/termtris/pkg/config"
	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/gui"
	"github.com/qnkhuat/termtris/pkg/logging"
)

func fail(format string, a ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, "failed to start termtris: "+format+"\n", a...)
	os.Exit(1)
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fail("%s", err)
	}

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !tty {
		fail("non-interactive terminals are not supported")
	}

	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if w, h := game.BoardSize(cols, rows); w < 1 || h < 1 {
			fail("%s (%dx%d)", game.ErrScreenTooSmall, cols, rows)
		}
	}

	log, err := logging.New(logging.Options{
		Path:   cfg.Log,
		Level:  cfg.LogLevel,
		Prefix: "game",
		JSON:   cfg.LogJSON,
	})
	if err != nil {
		fail("%s", err)
	}
	defer logging.Close(log)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		fail("%s", err)
	}

	ui, err := gui.Open(screen, gui.Options{
		UI:    cfg.UI,
		Theme: cfg.Palette,
		Nick:  cfg.Nick,
		Tick:  cfg.Tick,
		Quit:  cancel,
		Log:   log,
	})
	if err != nil {
		fail("%s", err)
	}

	g, err := game.Run(ctx, ui, ui, game.Options{Seed: seed, Log: log})
	if err == nil {
		// Leave the final board up for a moment
		select {
		case <-time.After(cfg.GameOverPause):
		case <-ctx.Done():
		}
	}
	ui.Close()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("game failed")
		fail("%s", err)
	}

	fmt.Printf("%s %d\n", color.New(color.Bold).Sprint("Game Over! Your score:"), g.Score)
}
