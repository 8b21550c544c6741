package model

// Language is a chat interface language code.
type Language string

const (
	LangRU Language = "ru"
	LangUK Language = "uk"
	LangEN Language = "en"
)

// Supported reports whether l is one of the selectable chat languages.
func (l Language) Supported() bool {
	switch l {
	case LangRU, LangUK, LangEN:
		return true
	}
	return false
}

const (
	DefaultPackLimit   = 50
	DefaultReplyChance = 0.05
	DefaultLanguage    = LangEN
)

// ChatSettings stores per-chat configuration. A row is materialized
// with the defaults the first time any setting of a chat is read.
type ChatSettings struct {
	ChatID      int64
	PackLimit   int
	ReplyChance float64
	Language    Language
}

// DefaultChatSettings returns the settings a chat has before any admin
// touched it.
func DefaultChatSettings(chatID int64) *ChatSettings {
	return &ChatSettings{
		ChatID:      chatID,
		PackLimit:   DefaultPackLimit,
		ReplyChance: DefaultReplyChance,
		Language:    DefaultLanguage,
	}
}
