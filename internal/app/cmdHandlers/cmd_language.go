package cmdHandlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/translation"
	"github.com/FogoReed/random-stickers-bot/pkg/telegram"
)

func (c *CmdHandler) handleSetLanguage(ctx context.Context, m *telegram.Message) {
	if !c.requireAdmin(ctx, m) {
		return
	}
	lang := c.lang(ctx, m.Chat.ID)

	// The callback payload carries the chat id so a forwarded keyboard
	// cannot switch another chat's language.
	buttons := [][]telegram.InlineKeyboardButton{{
		{Text: translation.Get(lang, "lang_ru"), CallbackData: fmt.Sprintf("lang:ru:%d", m.Chat.ID)},
		{Text: translation.Get(lang, "lang_uk"), CallbackData: fmt.Sprintf("lang:uk:%d", m.Chat.ID)},
		{Text: translation.Get(lang, "lang_en"), CallbackData: fmt.Sprintf("lang:en:%d", m.Chat.ID)},
	}}
	opts := &telegram.SendOptions{InlineKeyboard: buttons}
	if _, err := c.tg.SendMessage(ctx, m.Chat.ID, translation.Get(lang, "select_language"), opts); err != nil {
		log.Printf("chat_id=%d: send language keyboard: %v", m.Chat.ID, err)
		return
	}
	log.Printf("chat_id=%d: sent language selection buttons", m.Chat.ID)
}

// HandleCallback processes an inline-keyboard press. The only keyboard
// this bot sends is the language selector.
func (c *CmdHandler) HandleCallback(ctx context.Context, q *telegram.CallbackQuery) {
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	lang := c.lang(ctx, chatID)

	answer := func(text string) {
		if err := c.tg.AnswerCallbackQuery(ctx, q.ID, text); err != nil {
			log.Printf("chat_id=%d: answer callback: %v", chatID, err)
		}
	}

	parts := strings.Split(q.Data, ":")
	if len(parts) != 3 || parts[0] != "lang" || parts[2] != strconv.FormatInt(chatID, 10) {
		answer(translation.Get(lang, "invalid_callback"))
		log.Printf("chat_id=%d, user_id=%d: invalid callback for language change", chatID, q.From.ID)
		return
	}
	if q.Message.Chat.Type != "private" && !c.isAdmin(ctx, chatID, q.From.ID) {
		answer(translation.Get(lang, "admin_only"))
		log.Printf("chat_id=%d, user_id=%d: non-admin attempted to change chat language", chatID, q.From.ID)
		return
	}

	newLang := model.Language(parts[1])
	if !newLang.Supported() {
		answer(translation.Get(lang, "unsupported_language"))
		log.Printf("chat_id=%d, user_id=%d: unsupported language %q", chatID, q.From.ID, parts[1])
		return
	}

	if err := c.settings.SetLanguage(ctx, chatID, newLang); err != nil {
		log.Printf("chat_id=%d: set language: %v", chatID, err)
		return
	}

	if err := c.tg.DeleteMessage(ctx, chatID, q.Message.MessageID); err != nil {
		log.Printf("chat_id=%d: delete language keyboard: %v", chatID, err)
	}
	if _, err := c.tg.SendMessage(ctx, chatID, translation.Get(newLang, "language_changed"), nil); err != nil {
		log.Printf("chat_id=%d: confirm language change: %v", chatID, err)
	}
	answer("")
	log.Printf("chat_id=%d, user_id=%d: chat language changed to %s", chatID, q.From.ID, newLang)
}
