package models

import (
	"tg-wheel-bot/internal/game"
)

// Player игрок бота со своим колесом
type Player struct {
	UserID   int64
	ChatID   int64
	UserName string
	Session  *game.Session
	// ReplyChatID и ReplyTo чат и сообщение, куда уходит результат текущего вращения
	ReplyChatID int64
	ReplyTo     int
}
