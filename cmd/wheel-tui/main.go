package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"tg-wheel-bot/gamble"
	"tg-wheel-bot/internal/config"
	"tg-wheel-bot/internal/game"
	"tg-wheel-bot/internal/lib/logger"
	"tg-wheel-bot/internal/lib/logger/sl"
	"tg-wheel-bot/internal/storage"
	"tg-wheel-bot/internal/tui"
)

func main() {
	configPath := flag.String("config", os.Getenv("WHEEL_CONFIG"), "path to YAML config")
	logPath := flag.String("log", "", "write logs to this file")
	useRedis := flag.Bool("redis", false, "keep flags in Redis instead of memory")
	flag.Parse()

	if err := run(*configPath, *logPath, *useRedis); err != nil {
		fmt.Fprintf(os.Stderr, "wheel-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, useRedis bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// экран занят tcell, поэтому логи только в файл
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.New(cfg.Env, cfg.Log.Level, out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wheel, err := gamble.NewWheel(cfg.Outcomes)
	if err != nil {
		return err
	}

	var store storage.Store = storage.NewMemory()
	if useRedis {
		rs, err := storage.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = storage.Scoped(rs, "wheel:tui")
	}

	session := game.NewSession(wheel, store,
		game.WithDuration(cfg.Spin.Duration),
		game.WithTurns(cfg.Spin.MinTurns, cfg.Spin.MaxTurns),
		game.WithLabelFormat(cfg.LabelFormat),
		game.WithPhrases(cfg.Phrases),
		game.WithLogger(log),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	sound, err := tui.NewSound()
	if err != nil {
		// без звука тоже можно играть
		log.Warn("audio initialization failed", sl.Err(err))
	}
	defer sound.Close()

	err = tui.New(screen, session, sound, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
