package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"tg-wheel-bot/gamble"
	"tg-wheel-bot/internal/bot"
	"tg-wheel-bot/internal/config"
	"tg-wheel-bot/internal/lib/logger"
	"tg-wheel-bot/internal/lib/logger/sl"
	"tg-wheel-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	configPath := flag.String("config", os.Getenv("WHEEL_CONFIG"), "path to YAML config")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	log := logger.New(cfg.Env, cfg.Log.Level, os.Stdout)
	log.Info("starting wheel bot", sl.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wheel, err := gamble.NewWheel(cfg.Outcomes)
	if err != nil {
		log.Error("invalid wheel", sl.Err(err))
		os.Exit(1)
	}

	// Подключение к Redis
	store, err := storage.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer store.Close()
	log.Info("redis connected", sl.String("addr", cfg.Redis.Addr))

	if cfg.Telegram.Token == "" {
		log.Error("TELEGRAM_BOT_TOKEN environment variable is required")
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("failed to create bot", sl.Err(err))
		os.Exit(1)
	}
	api.Debug = cfg.Telegram.Debug

	log.Info("bot authorized", sl.String("account", api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout

	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	bot.NewBot(api, cfg, wheel, store, log).Run(ctx, updates)

	log.Info("wheel bot stopped")
}
