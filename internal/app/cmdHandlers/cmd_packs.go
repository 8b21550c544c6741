package cmdHandlers

import (
	"context"
	"log"
	"strings"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/service"
	"github.com/FogoReed/random-stickers-bot/internal/translation"
	"github.com/FogoReed/random-stickers-bot/pkg/telegram"
)

func (c *CmdHandler) handleRandomPack(ctx context.Context, m *telegram.Message) {
	log.Printf("chat_id=%d: requested random sticker (/random_pack)", m.Chat.ID)
	res, err := c.reply.SendRandomSticker(ctx, m.Chat.ID, m.MessageID)
	if err != nil {
		log.Printf("chat_id=%d: random pack: %v", m.Chat.ID, err)
		return
	}
	if res != service.ReplySent {
		c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "no_packs"))
	}
}

func (c *CmdHandler) handleBanPack(ctx context.Context, m *telegram.Message) {
	if !c.requireAdmin(ctx, m) {
		return
	}
	lang := c.lang(ctx, m.Chat.ID)
	args := strings.Fields(m.Text)
	if len(args) < 2 {
		c.replyTo(ctx, m, translation.Get(lang, "ban_pack_usage"))
		return
	}
	setName := args[1]

	found, err := c.packs.Ban(ctx, m.Chat.ID, setName)
	if err != nil {
		log.Printf("chat_id=%d: ban pack %q: %v", m.Chat.ID, setName, err)
		return
	}
	if !found {
		c.replyTo(ctx, m, translation.Get(lang, "pack_not_found", setName))
		log.Printf("chat_id=%d: attempt to ban non-existent pack %q", m.Chat.ID, setName)
		return
	}
	c.replyTo(ctx, m, translation.Get(lang, "pack_banned", setName))
	log.Printf("chat_id=%d: pack %q banned", m.Chat.ID, setName)
}

func (c *CmdHandler) handleUnbanPack(ctx context.Context, m *telegram.Message) {
	if !c.requireAdmin(ctx, m) {
		return
	}
	lang := c.lang(ctx, m.Chat.ID)
	args := strings.Fields(m.Text)
	if len(args) < 2 {
		c.replyTo(ctx, m, translation.Get(lang, "unban_pack_usage"))
		return
	}
	setName := args[1]

	found, err := c.packs.Unban(ctx, m.Chat.ID, setName)
	if err != nil {
		log.Printf("chat_id=%d: unban pack %q: %v", m.Chat.ID, setName, err)
		return
	}
	if !found {
		c.replyTo(ctx, m, translation.Get(lang, "pack_not_found", setName))
		log.Printf("chat_id=%d: attempt to unban non-existent pack %q", m.Chat.ID, setName)
		return
	}
	c.replyTo(ctx, m, translation.Get(lang, "pack_unbanned", setName))
	log.Printf("chat_id=%d: pack %q unbanned", m.Chat.ID, setName)
}

func (c *CmdHandler) handleListPacks(ctx context.Context, m *telegram.Message) {
	lang := c.lang(ctx, m.Chat.ID)
	packs, err := c.packs.List(ctx, m.Chat.ID)
	if err != nil {
		log.Printf("chat_id=%d: list packs: %v", m.Chat.ID, err)
		return
	}
	if len(packs) == 0 {
		c.replyTo(ctx, m, translation.Get(lang, "no_packs"))
		return
	}

	var b strings.Builder
	b.WriteString(translation.Get(lang, "pack_list"))
	b.WriteString("\n")
	for _, p := range packs {
		emoji := "✅"
		if p.Status == model.PackBanned {
			emoji = "🚫"
		}
		b.WriteString(emoji)
		b.WriteString(" ")
		b.WriteString(p.SetName)
		b.WriteString("\n")
	}
	c.replyTo(ctx, m, b.String())
	log.Printf("chat_id=%d: sent pack list (count: %d)", m.Chat.ID, len(packs))
}

func (c *CmdHandler) handleClearPacks(ctx context.Context, m *telegram.Message) {
	if !c.requireAdmin(ctx, m) {
		return
	}
	if err := c.packs.Clear(ctx, m.Chat.ID); err != nil {
		log.Printf("chat_id=%d: clear packs: %v", m.Chat.ID, err)
		return
	}
	c.replyTo(ctx, m, translation.Get(c.lang(ctx, m.Chat.ID), "packs_cleared"))
	log.Printf("chat_id=%d: cleared pack database", m.Chat.ID)
}
