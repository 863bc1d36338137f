package bot

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"

	"tg-wheel-bot/gamble"
	"tg-wheel-bot/internal/config"
	"tg-wheel-bot/internal/game"
	"tg-wheel-bot/internal/lib/logger/sl"
	"tg-wheel-bot/internal/models"
	"tg-wheel-bot/internal/render"
	"tg-wheel-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// tickInterval как часто бот проверяет завершившиеся вращения
const tickInterval = 100 * time.Millisecond

// Неактивные игроки забываются; флаги буста остаются в хранилище
const (
	playerIdleTTL      = time.Hour
	playerCleanupEvery = 10 * time.Minute
)

// Sender часть API Telegram, которая нужна боту. *tgbotapi.BotAPI подходит.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram бота с колесом призов
type Bot struct {
	API      Sender
	cfg      *config.Config
	wheel    *gamble.Wheel
	store    storage.Store
	renderer *render.Renderer
	log      *slog.Logger

	now     func() time.Time
	newRand func() gamble.RandomSource

	players *cache.Cache
	// крутящиеся колеса, их обходит Tick; принадлежит горутине Run
	spinning map[int64]*models.Player
}

// Option настройка бота
type Option func(*Bot)

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

// WithRandFactory подменяет источник случайности для новых сессий
func WithRandFactory(f func() gamble.RandomSource) Option {
	return func(b *Bot) { b.newRand = f }
}

// NewBot создает новый экземпляр бота
func NewBot(api Sender, cfg *config.Config, wheel *gamble.Wheel, store storage.Store, log *slog.Logger, opts ...Option) *Bot {
	b := &Bot{
		API:      api,
		cfg:      cfg,
		wheel:    wheel,
		store:    store,
		renderer: render.New(wheel, cfg.Render.Size, cfg.LabelFormat),
		log:      log,
		now:      time.Now,
		newRand: func() gamble.RandomSource {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		players:  cache.New(playerIdleTTL, playerCleanupEvery),
		spinning: make(map[int64]*models.Player),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run обрабатывает обновления и завершает вращения до отмены контекста
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil && update.Message.IsCommand() {
				b.HandleCommand(ctx, update)
			}
		case <-ticker.C:
			b.Tick(ctx)
		}
	}
}

// player возвращает игрока, создавая сессию при первом обращении
func (b *Bot) player(ctx context.Context, msg *tgbotapi.Message) *models.Player {
	key := strconv.FormatInt(msg.From.ID, 10)

	var p *models.Player
	if v, found := b.players.Get(key); found {
		p = v.(*models.Player)
	} else if sp, found := b.spinning[msg.From.ID]; found {
		p = sp
	} else {
		store := storage.Scoped(b.store, storage.UserScope(msg.From.ID))
		session := game.NewSession(b.wheel, store,
			game.WithRand(b.newRand()),
			game.WithDuration(b.cfg.Spin.Duration),
			game.WithTurns(b.cfg.Spin.MinTurns, b.cfg.Spin.MaxTurns),
			game.WithLabelFormat(b.cfg.LabelFormat),
			game.WithPhrases(b.cfg.Phrases),
			game.WithLogger(b.log.With(sl.Int64("user_id", msg.From.ID))),
		)
		p = &models.Player{UserID: msg.From.ID, Session: session}
	}
	b.players.Set(key, p, cache.DefaultExpiration)

	p.ChatID = msg.Chat.ID
	p.UserName = msg.From.UserName

	if !p.Session.Spinning() {
		if err := p.Session.Refresh(ctx, b.now()); err != nil {
			b.log.Error("failed to refresh boost", sl.Err(err), sl.Int64("user_id", p.UserID))
		}
	}
	return p
}

// Tick продвигает все вращения и отправляет результаты завершившихся
func (b *Bot) Tick(ctx context.Context) {
	now := b.now()
	for id, p := range b.spinning {
		if !p.Session.Spinning() {
			delete(b.spinning, id)
			continue
		}

		_, res, err := p.Session.Advance(ctx, now)
		if err != nil {
			b.log.Error("failed to finish spin", sl.Err(err), sl.Int64("user_id", p.UserID))
		}
		if res == nil {
			continue
		}
		delete(b.spinning, id)

		b.log.Info("spin finished",
			sl.Int64("user_id", p.UserID),
			sl.String("label", res.Label),
			slog.Int("value", res.Value),
			slog.Bool("boosted", res.Boosted),
		)
		b.sendResult(p, res)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	m, err := b.API.Send(c)
	if err != nil {
		b.log.Error("failed to send message", sl.Err(err))
		return m, false
	}
	return m, true
}
