package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tg-wheel-bot/internal/game"
	"tg-wheel-bot/internal/lib/logger/sl"
	"tg-wheel-bot/internal/models"
	"tg-wheel-bot/internal/render"
	"tg-wheel-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleCommand обрабатывает команду от пользователя
func (b *Bot) HandleCommand(ctx context.Context, update tgbotapi.Update) {
	userName := utils.FormatUserName(update.Message.From)
	b.log.Info("command", sl.String("user", userName), sl.String("text", update.Message.Text))

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	msg.ReplyToMessageID = update.Message.MessageID

	p := b.player(ctx, update.Message)
	args := strings.TrimSpace(update.Message.CommandArguments())

	switch update.Message.Command() {
	case "start":
		b.handleStart(&msg, p, userName)
	case "help":
		b.handleHelp(&msg)
	case "spin":
		if b.handleSpin(ctx, &msg, p, update.Message.MessageID) {
			return
		}
	case "phrase":
		b.handlePhrase(ctx, &msg, p, args)
	case "boost":
		b.handleBoost(ctx, &msg, p)
	case "wheel":
		if b.handleWheel(&msg, p) {
			return
		}
	default:
		msg.Text = "🤔 Не знаю такой команды, пиши /help"
	}

	b.send(msg)
}

// handleStart обрабатывает команду /start
func (b *Bot) handleStart(msg *tgbotapi.MessageConfig, p *models.Player, userName string) {
	msg.Text = fmt.Sprintf(`🎡 Привет, %s!

Это колесо призов. Крути его командой /spin и смотри, сколько вращений выпадет.

🦭 Каждый день есть кодовое слово. Угадаешь его через /phrase и следующее вращение даст в 10 раз больше.
Попытка одна в день!`, userName)

	if p.Session.Boosted() {
		msg.Text += "\n\n✨ Буст x10 сейчас активен!"
	}
}

// handleHelp обрабатывает команду /help
func (b *Bot) handleHelp(msg *tgbotapi.MessageConfig) {
	msg.Text = `📋 СПИСОК КОМАНД:

🎡 /spin - крутить колесо
🖼 /wheel - показать колесо
🦭 /phrase <слово> - ввести кодовое слово дня
✨ /boost - статус буста
/help - эта справка`
}

// handleSpin обрабатывает команду /spin. Возвращает true, если ответ уже отправлен.
func (b *Bot) handleSpin(ctx context.Context, msg *tgbotapi.MessageConfig, p *models.Player, replyTo int) bool {
	plan, err := p.Session.Spin(ctx, b.now())
	if errors.Is(err, game.ErrSpinning) {
		msg.Text = "⏳ Колесо уже крутится, дождись результата"
		return false
	}
	if err != nil {
		b.log.Error("failed to spin", sl.Err(err), sl.Int64("user_id", p.UserID))
		msg.Text = "❌ Не удалось запустить колесо"
		return false
	}
	p.ReplyChatID = p.ChatID
	p.ReplyTo = replyTo
	b.spinning[p.UserID] = p

	data, err := render.EncodeGIF(b.renderer.Animation(p.Session.Spinner(), plan.Boosted, b.cfg.Render.FPS))
	if err != nil {
		// результат все равно придет по таймеру
		b.log.Error("failed to render spin", sl.Err(err), sl.Int64("user_id", p.UserID))
		msg.Text = "🎡 Крутим!"
		return false
	}

	anim := tgbotapi.NewAnimation(p.ChatID, tgbotapi.FileBytes{Name: "wheel.gif", Bytes: data})
	anim.Caption = "🎡 Крутим!"
	if plan.Boosted {
		anim.Caption += " ✨ x10"
	}
	anim.ReplyToMessageID = replyTo
	b.send(anim)

	return true
}

// handleWheel отправляет картинку колеса в текущем положении
func (b *Bot) handleWheel(msg *tgbotapi.MessageConfig, p *models.Player) bool {
	data, err := render.EncodePNG(b.renderer.Frame(p.Session.Rotation(), p.Session.Boosted()))
	if err != nil {
		b.log.Error("failed to render wheel", sl.Err(err))
		msg.Text = "❌ Не удалось нарисовать колесо"
		return false
	}

	photo := tgbotapi.NewPhoto(p.ChatID, tgbotapi.FileBytes{Name: "wheel.png", Bytes: data})
	photo.ReplyToMessageID = msg.ReplyToMessageID
	b.send(photo)
	return true
}

// handlePhrase обрабатывает команду /phrase
func (b *Bot) handlePhrase(ctx context.Context, msg *tgbotapi.MessageConfig, p *models.Player, args string) {
	now := b.now()

	st, err := p.Session.Gate().Status(ctx, now)
	if err != nil {
		b.log.Error("failed to read phrase status", sl.Err(err))
		msg.Text = "❌ Ошибка, попробуй позже"
		return
	}
	if st.AttemptedToday {
		msg.Text = utils.GetAttemptText(game.AttemptBlocked, st.BoostActive)
		return
	}
	if args == "" {
		msg.Text = "🦭 Введи кодовое слово дня: /phrase <слово>\nПопытка одна!"
		return
	}

	res, err := p.Session.EnterPhrase(ctx, args, now)
	if err != nil {
		b.log.Error("failed to check phrase", sl.Err(err))
		msg.Text = "❌ Ошибка, попробуй позже"
		return
	}
	msg.Text = utils.GetAttemptText(res, p.Session.Boosted())
}

// handleBoost обрабатывает команду /boost
func (b *Bot) handleBoost(ctx context.Context, msg *tgbotapi.MessageConfig, p *models.Player) {
	st, err := p.Session.Gate().Status(ctx, b.now())
	if err != nil {
		b.log.Error("failed to read boost status", sl.Err(err))
		msg.Text = "❌ Ошибка, попробуй позже"
		return
	}

	switch {
	case p.Session.Boosted():
		msg.Text = "✨ Буст x10 активен на следующее вращение"
	case st.AttemptedToday:
		msg.Text = "💤 Буста нет. Новая попытка кодового слова завтра"
	default:
		msg.Text = "🦭 Буста нет. Угадай кодовое слово: /phrase <слово>"
	}
}

// sendResult отправляет итог вращения
func (b *Bot) sendResult(p *models.Player, res *game.Result) {
	msg := tgbotapi.NewMessage(p.ReplyChatID, utils.GetResultText(res))
	msg.ReplyToMessageID = p.ReplyTo
	b.send(msg)
}
