package model

// PackStatus is the moderation state of a sticker pack within a chat.
type PackStatus string

const (
	PackAllowed PackStatus = "allowed"
	PackBanned  PackStatus = "banned"
)

// Pack is a sticker pack known to a chat. The sticker count is best
// effort: it stays 0 when the lookup against Telegram failed.
type Pack struct {
	ChatID       int64
	SetName      string
	StickerCount int
	Status       PackStatus
}
