package utils

import (
	"fmt"

	"tg-wheel-bot/internal/game"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// GetPlaysWord возвращает правильное склонение слова "вращение"
func GetPlaysWord(count int) string {
	lastDigit := count % 10
	lastTwoDigits := count % 100

	// Исключения для чисел 11-14
	if lastTwoDigits >= 11 && lastTwoDigits <= 14 {
		return "вращений"
	}

	switch lastDigit {
	case 1:
		return "вращение"
	case 2, 3, 4:
		return "вращения"
	default:
		return "вращений"
	}
}

// FormatUserName имя пользователя для логов и сообщений
func FormatUserName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}

// GetResultText текст сообщения с результатом вращения
func GetResultText(res *game.Result) string {
	var text string
	if res.Value == 0 {
		text = fmt.Sprintf("🎯 Выпало: %s\n😢 В этот раз без приза", res.Label)
	} else {
		text = fmt.Sprintf("🎯 Выпало: %s\n🎁 Ты получаешь %d %s", res.Label, res.Value, GetPlaysWord(res.Value))
	}
	if res.Boosted {
		text += "\n✨ Буст x10 использован"
	}
	return text
}

// GetAttemptText ответ на ввод кодового слова
func GetAttemptText(res game.AttemptResult, boostActive bool) string {
	switch res {
	case game.AttemptCorrect:
		return "✅ Верно! Следующее вращение сегодня даст в 10 раз больше 🎉"
	case game.AttemptBlocked:
		if boostActive {
			return "🎉 Буст на сегодня уже активен!"
		}
		return "🚫 Сегодня ты уже вводил кодовое слово. Попробуй завтра!"
	default:
		return "❌ Неверно... Попробуй завтра!"
	}
}
