package cmdHandlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/FogoReed/random-stickers-bot/internal/translation"
	"github.com/FogoReed/random-stickers-bot/pkg/telegram"
)

func (c *CmdHandler) handleStats(ctx context.Context, m *telegram.Message) {
	limit, err := c.settings.PackLimit(ctx, m.Chat.ID)
	if err != nil {
		log.Printf("chat_id=%d: stats: %v", m.Chat.ID, err)
		return
	}
	count, err := c.packs.CountAllowed(ctx, m.Chat.ID)
	if err != nil {
		log.Printf("chat_id=%d: stats: %v", m.Chat.ID, err)
		return
	}
	total, err := c.packs.SumStickerCounts(ctx, m.Chat.ID)
	if err != nil {
		log.Printf("chat_id=%d: stats: %v", m.Chat.ID, err)
		return
	}
	c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "stats", count, total, limit))
	log.Printf("chat_id=%d: requested statistics (/stats)", m.Chat.ID)
}

func (c *CmdHandler) handleTopUsers(ctx context.Context, m *telegram.Message) {
	lang := c.lang(ctx, m.Chat.ID)
	users, err := c.users.Top(ctx, 10)
	if err != nil {
		log.Printf("chat_id=%d: top users: %v", m.Chat.ID, err)
		return
	}
	if len(users) == 0 {
		c.replyTo(ctx, m, translation.Get(lang, "no_users"))
		return
	}

	var b strings.Builder
	b.WriteString(translation.Get(lang, "top_users"))
	b.WriteString("\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s — 🎯 %d %s, 📷 %d %s\n",
			i+1, u.DisplayName(),
			u.StickerCalls, translation.Get(lang, "stickers_label"),
			u.MediaCalls, translation.Get(lang, "media_label"))
	}
	c.replyTo(ctx, m, b.String())
}

func (c *CmdHandler) handleHelp(ctx context.Context, m *telegram.Message) {
	c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "help"))
	log.Printf("chat_id=%d: requested help (/help)", m.Chat.ID)
}
