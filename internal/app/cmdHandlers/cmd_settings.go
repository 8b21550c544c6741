package cmdHandlers

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/FogoReed/random-stickers-bot/internal/translation"
	"github.com/FogoReed/random-stickers-bot/pkg/telegram"
)

func (c *CmdHandler) handleSetReplyChance(ctx context.Context, m *telegram.Message) {
	if !c.requireAdmin(ctx, m) {
		return
	}
	lang := c.lang(ctx, m.Chat.ID)
	args := strings.Fields(m.Text)
	if len(args) < 2 {
		c.replyTo(ctx, m, translation.Get(lang, "set_reply_chance_usage"))
		return
	}

	percent, err := strconv.ParseFloat(args[1], 64)
	if err != nil || percent < 0 || percent > 100 {
		c.replyTo(ctx, m, translation.Get(lang, "invalid_chance"))
		return
	}

	if err := c.settings.SetReplyChance(ctx, m.Chat.ID, percent/100); err != nil {
		log.Printf("chat_id=%d: set reply chance: %v", m.Chat.ID, err)
		return
	}
	c.replyTo(ctx, m, translation.Get(lang, "reply_chance_set", args[1]))
	log.Printf("chat_id=%d: sticker reply chance set to %s%%", m.Chat.ID, args[1])
}

func (c *CmdHandler) handleGetReplyChance(ctx context.Context, m *telegram.Message) {
	chance, err := c.settings.ReplyChance(ctx, m.Chat.ID)
	if err != nil {
		log.Printf("chat_id=%d: get reply chance: %v", m.Chat.ID, err)
		return
	}
	c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "get_reply_chance", chance*100))
	log.Printf("chat_id=%d: requested reply chance (%.2f%%)", m.Chat.ID, chance*100)
}

func (c *CmdHandler) handleSetPackLimit(ctx context.Context, m *telegram.Message) {
	if !c.requireAdmin(ctx, m) {
		return
	}
	lang := c.lang(ctx, m.Chat.ID)
	args := strings.Fields(m.Text)
	if len(args) < 2 {
		c.replyTo(ctx, m, translation.Get(lang, "set_pack_limit_usage"))
		return
	}

	limit, err := strconv.Atoi(args[1])
	if err != nil || limit <= 0 {
		c.replyTo(ctx, m, translation.Get(lang, "invalid_limit"))
		return
	}

	if err := c.settings.SetPackLimit(ctx, m.Chat.ID, limit); err != nil {
		log.Printf("chat_id=%d: set pack limit: %v", m.Chat.ID, err)
		return
	}
	c.replyTo(ctx, m, translation.Get(lang, "pack_limit_set", limit))
	log.Printf("chat_id=%d: pack limit set to %d", m.Chat.ID, limit)
}

func (c *CmdHandler) handleGetPackLimit(ctx context.Context, m *telegram.Message) {
	limit, err := c.settings.PackLimit(ctx, m.Chat.ID)
	if err != nil {
		log.Printf("chat_id=%d: get pack limit: %v", m.Chat.ID, err)
		return
	}
	c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "get_pack_limit", limit))
	log.Printf("chat_id=%d: requested pack limit (%d)", m.Chat.ID, limit)
}
